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

package adbextract

import (
	"github.com/pkg/errors"

	"github.com/forensicanalysis/adbextract/confirm"
	"github.com/forensicanalysis/adbextract/custody"
	"github.com/forensicanalysis/adbextract/export"
)

const workbookPrompt = "¿Crear archivo Excel resumen (contactos, llamadas, SMS, calendario) " +
	"en export/resumen_forense.xlsx?"

// Export copies the raw artifacts from logicalDir into export/raw and, for
// the legible format, writes the parsed csv tables and the optional summary
// workbook. A workbook failure never touches the already written tables.
func (e *Engine) Export(logicalDir string) (*export.Bundle, error) {
	ws := e.Workspace

	e.progress("[*] Copiando archivos crudos (raw)...")
	if err := export.CopyRaw(ws.Fs(), logicalDir, ws.ExportRawDir()); err != nil {
		return nil, errors.Wrap(err, "could not copy raw artifacts")
	}

	if e.Format == RawOnly {
		return nil, nil
	}

	e.progress("[*] Generando CSV legibles y resúmenes...")
	bundle, err := export.Legible(ws.Fs(), logicalDir, ws.ExportLegibleDir())
	if err != nil {
		return nil, errors.Wrap(err, "could not export legible tables")
	}

	if bundle.Len() > 0 && e.Policy.Ask(confirm.Workbook, workbookPrompt, true) {
		if err := export.Workbook(ws.Fs(), bundle, ws.WorkbookPath()); err != nil {
			e.progress("[!] No se pudo crear el Excel resumen: %s", err)
		} else {
			e.progress("  [OK] Excel resumen: %s", ws.WorkbookPath())
		}
	}

	return bundle, nil
}

// RecordCustody writes every exported raw artifact into the custody
// manifest at logs/custody.db.
func (e *Engine) RecordCustody() error {
	manifest, err := custody.New(e.Workspace.Fs(), e.Workspace.ManifestPath())
	if err != nil {
		return errors.Wrap(err, "could not open custody manifest")
	}
	defer manifest.Close()

	if err := manifest.RecordTree(e.Workspace.ExportRawDir()); err != nil {
		return errors.Wrap(err, "could not record custody")
	}
	return nil
}
