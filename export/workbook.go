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

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// maxSheetName is the sheet name length limit of the xlsx format.
const maxSheetName = 31

// Workbook writes one sheet per dataset of the bundle to path. The caller
// treats a failure as non-fatal: the legible csv files are already on disk
// and stay untouched.
func Workbook(fs afero.Fs, bundle *Bundle, path string) error {
	if bundle == nil || bundle.Len() == 0 {
		return nil
	}

	book := excelize.NewFile()
	defer book.Close() // nolint:errcheck

	for i, name := range bundle.Names() {
		table, _ := bundle.Table(name)
		sheet := sheetName(name)
		if i == 0 {
			if err := book.SetSheetName("Sheet1", sheet); err != nil {
				return errors.Wrap(err, "could not rename sheet")
			}
		} else {
			if _, err := book.NewSheet(sheet); err != nil {
				return errors.Wrapf(err, "could not create sheet %s", sheet)
			}
		}
		if err := writeSheet(book, sheet, table); err != nil {
			return err
		}
	}

	file, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	if err := book.Write(file); err != nil {
		file.Close() // nolint:errcheck
		return errors.Wrapf(err, "could not write %s", path)
	}
	return file.Close()
}

func writeSheet(book *excelize.File, sheet string, table *Table) error {
	if err := book.SetSheetRow(sheet, "A1", &table.Header); err != nil {
		return errors.Wrapf(err, "could not write header of %s", sheet)
	}
	for i, row := range table.Rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "could not write row %d of %s", i, sheet)
		}
	}
	return nil
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
