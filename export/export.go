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

// Package export turns the raw artifacts of an acquisition into custody
// copies and human legible tables. Raw artifacts are only ever copied,
// never edited; a failing table or workbook write never invalidates
// artifacts that are already on disk.
package export

import (
	"encoding/csv"
	"log"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/adbextract/records"
)

// RawArtifacts is the fixed set of text dumps preserved for the chain of
// custody.
var RawArtifacts = []string{
	"contacts.txt",
	"calllog.txt",
	"sms.txt",
	"calendar_events.txt",
	"dumpsys_location.txt",
	"dumpsys_wifi.txt",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CopyRaw copies the expected raw artifacts byte identically from
// logicalDir into rawDir. Artifacts that are not present are skipped.
func CopyRaw(fs afero.Fs, logicalDir, rawDir string) error {
	if err := fs.MkdirAll(rawDir, 0755); err != nil {
		return errors.Wrapf(err, "could not create %s", rawDir)
	}
	for _, name := range RawArtifacts {
		src := filepath.Join(logicalDir, name)
		exists, err := afero.Exists(fs, src)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return errors.Wrapf(err, "could not read %s", src)
		}
		if err := afero.WriteFile(fs, filepath.Join(rawDir, name), data, 0644); err != nil {
			return errors.Wrapf(err, "could not copy %s", name)
		}
		log.Printf("raw copy %s", name)
	}
	return nil
}

// Legible parses every present raw artifact in logicalDir, writes one csv
// per dataset plus the per number aggregates into legibleDir and returns
// the bundle for workbook assembly. Empty datasets are neither written nor
// added to the bundle. A failing csv write is logged and does not abort the
// remaining datasets.
func Legible(fs afero.Fs, logicalDir, legibleDir string) (*Bundle, error) {
	if err := fs.MkdirAll(legibleDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", legibleDir)
	}
	bundle := NewBundle()

	if text, ok := readArtifact(fs, logicalDir, "sms.txt"); ok {
		messages := records.ParseMessages(text)
		if len(messages) > 0 {
			table := newTable("sms", messages)
			writeTable(fs, legibleDir, "sms_legible.csv", table)
			writeTable(fs, legibleDir, "sms_resumen_por_numero.csv", messageSummary(messages))
			bundle.Add(table)
		}
	}

	if text, ok := readArtifact(fs, logicalDir, "contacts.txt"); ok {
		contacts := records.ParseContacts(text)
		if len(contacts) > 0 {
			table := newTable("contactos", contacts)
			writeTable(fs, legibleDir, "contactos_legible.csv", table)
			bundle.Add(table)
		}
	}

	if text, ok := readArtifact(fs, logicalDir, "calllog.txt"); ok {
		calls := records.ParseCalls(text)
		if len(calls) > 0 {
			table := newTable("llamadas", calls)
			writeTable(fs, legibleDir, "llamadas_legible.csv", table)
			writeTable(fs, legibleDir, "llamadas_resumen_por_numero.csv", callSummary(calls))
			bundle.Add(table)
		}
	}

	if text, ok := readArtifact(fs, logicalDir, "calendar_events.txt"); ok {
		events := records.ParseCalendar(text)
		if len(events) > 0 {
			table := newTable("calendario", events)
			writeTable(fs, legibleDir, "calendario_legible.csv", table)
			bundle.Add(table)
		}
	}

	return bundle, nil
}

func readArtifact(fs afero.Fs, dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	exists, err := afero.Exists(fs, path)
	if err != nil || !exists {
		return "", false
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		log.Printf("could not read %s: %v", path, err)
		return "", false
	}
	return string(data), true
}

func writeTable(fs afero.Fs, dir, name string, table *Table) {
	if err := writeCSV(fs, filepath.Join(dir, name), table); err != nil {
		log.Printf("could not write %s: %v", name, err)
		return
	}
	log.Printf("csv %s", name)
}

// writeCSV writes a table as UTF-8 csv with a byte order mark for legacy
// spreadsheet tools.
func writeCSV(fs afero.Fs, path string, table *Table) error {
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := file.Write(utf8BOM); err != nil {
		file.Close() // nolint:errcheck
		return err
	}
	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		file.Close() // nolint:errcheck
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			file.Close() // nolint:errcheck
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close() // nolint:errcheck
		return err
	}
	return file.Close()
}

// messageSummary counts messages per number.
func messageSummary(messages []records.Message) *Table {
	counts := map[string]int{}
	for _, message := range messages {
		counts[message.Number]++
	}
	table := &Table{Name: "sms_resumen_por_numero", Header: []string{"numero", "total_mensajes"}}
	for _, number := range sortedKeys(counts) {
		table.Rows = append(table.Rows, []string{number, strconv.Itoa(counts[number])})
	}
	return table
}

// callSummary counts calls and sums their duration per number.
func callSummary(calls []records.Call) *Table {
	counts := map[string]int{}
	durations := map[string]int64{}
	for _, call := range calls {
		counts[call.Number]++
		durations[call.Number] += call.DurationSeconds
	}
	table := &Table{
		Name:   "llamadas_resumen_por_numero",
		Header: []string{"numero", "total_llamadas", "duracion_total_seg"},
	}
	for _, number := range sortedKeys(counts) {
		table.Rows = append(table.Rows, []string{
			number,
			strconv.Itoa(counts[number]),
			strconv.FormatInt(durations[number], 10),
		})
	}
	return table
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
