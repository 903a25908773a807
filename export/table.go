// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package export

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/fatih/structs"
	"github.com/stoewer/go-strcase"
)

const timeLayout = "2006-01-02 15:04:05"

// Table is one dataset of an export bundle, ready for the csv and workbook
// writers.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Bundle is the full set of parsed datasets for one export invocation. The
// dataset order is preserved for the workbook sheets.
type Bundle struct {
	order  []string
	tables map[string]*Table
}

// NewBundle creates an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{tables: map[string]*Table{}}
}

// Add appends a table to the bundle.
func (b *Bundle) Add(table *Table) {
	if _, ok := b.tables[table.Name]; !ok {
		b.order = append(b.order, table.Name)
	}
	b.tables[table.Name] = table
}

// Table returns the named dataset.
func (b *Bundle) Table(name string) (*Table, bool) {
	table, ok := b.tables[name]
	return table, ok
}

// Names returns the dataset names in insertion order.
func (b *Bundle) Names() []string {
	return append([]string{}, b.order...)
}

// Len returns the number of datasets.
func (b *Bundle) Len() int {
	return len(b.order)
}

// newTable derives header and rows from a slice of record structs. Column
// names come from the structs tags, falling back to snake cased field
// names.
func newTable(name string, recordSlice interface{}) *Table {
	table := &Table{Name: name}
	value := reflect.ValueOf(recordSlice)
	for i := 0; i < value.Len(); i++ {
		fields := structs.Fields(value.Index(i).Interface())
		if table.Header == nil {
			for _, field := range fields {
				column := field.Tag(structs.DefaultTagName)
				if column == "" {
					column = strcase.SnakeCase(field.Name())
				}
				table.Header = append(table.Header, column)
			}
		}
		row := make([]string, 0, len(fields))
		for _, field := range fields {
			row = append(row, formatValue(field.Value()))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(timeLayout)
	case time.Time:
		return v.Format(timeLayout)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
