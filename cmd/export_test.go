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

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand(t *testing.T) {
	base := t.TempDir()
	logicalDir := filepath.Join(base, "casos", "c1", "logical")
	require.NoError(t, os.MkdirAll(logicalDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(logicalDir, "sms.txt"),
		[]byte("Row: 0 address=555, date=1700000000000, type=1, body=hola\n"), 0600))

	answersPath := filepath.Join(base, "answers.json")
	require.NoError(t, os.WriteFile(answersPath, []byte(`{"workbook": false}`), 0600))

	command := Export()
	command.SetArgs([]string{"--base", base, "--case", "c1", "--source", "logical", "--answers", answersPath})
	require.NoError(t, command.Execute())

	exportDir := filepath.Join(base, "casos", "c1", "export")
	assert.FileExists(t, filepath.Join(exportDir, "raw", "sms.txt"))
	assert.FileExists(t, filepath.Join(exportDir, "legible", "sms_legible.csv"))
	assert.NoFileExists(t, filepath.Join(exportDir, "resumen_forense.xlsx"))
	assert.FileExists(t, filepath.Join(base, "casos", "c1", "logs", "custody.db"))
}

func TestExportCommandMissingCase(t *testing.T) {
	base := t.TempDir()
	command := Export()
	command.SetArgs([]string{"--base", base, "--case", "nope"})
	assert.Error(t, command.Execute())
}

func TestExportCommandBadSource(t *testing.T) {
	base := t.TempDir()
	logicalDir := filepath.Join(base, "casos", "c1", "logical")
	require.NoError(t, os.MkdirAll(logicalDir, 0750))

	command := Export()
	command.SetArgs([]string{"--base", base, "--case", "c1", "--source", "usb"})
	assert.Error(t, command.Execute())
}
