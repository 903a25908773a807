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
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultCase is the case name used when none is given.
const DefaultCase = "caso"

// CaseWorkspace is the on-disk directory layout of a single case below
// <base>/casos/<case>/. Creation is idempotent and the workspace is never
// deleted by this package.
type CaseWorkspace struct {
	fs       afero.Fs
	base     string
	caseName string
	caseDir  string
}

// NewCaseWorkspace returns the workspace for caseName below base. An empty
// caseName resolves to DefaultCase. No directories are created yet, call
// EnsureDirs for that.
func NewCaseWorkspace(fs afero.Fs, base, caseName string) *CaseWorkspace {
	caseName = strings.TrimSpace(caseName)
	if caseName == "" {
		caseName = DefaultCase
	}
	return &CaseWorkspace{
		fs:       fs,
		base:     base,
		caseName: caseName,
		caseDir:  filepath.Join(base, "casos", caseName),
	}
}

// Fs returns the filesystem the workspace lives on.
func (w *CaseWorkspace) Fs() afero.Fs { return w.fs }

// Base returns the base directory the case tree hangs below.
func (w *CaseWorkspace) Base() string { return w.base }

// CaseName returns the resolved case name.
func (w *CaseWorkspace) CaseName() string { return w.caseName }

// CaseDir returns <base>/casos/<case>.
func (w *CaseWorkspace) CaseDir() string { return w.caseDir }

func (w *CaseWorkspace) LogsDir() string    { return filepath.Join(w.caseDir, "logs") }
func (w *CaseWorkspace) LogicalDir() string { return filepath.Join(w.caseDir, "logical") }
func (w *CaseWorkspace) MediaDir() string   { return filepath.Join(w.caseDir, "media") }
func (w *CaseWorkspace) RootDir() string    { return filepath.Join(w.caseDir, "root") }

func (w *CaseWorkspace) RootDatabasesDir() string { return filepath.Join(w.RootDir(), "databases") }
func (w *CaseWorkspace) RootSystemDir() string    { return filepath.Join(w.RootDir(), "system") }
func (w *CaseWorkspace) RootLogicalDir() string   { return filepath.Join(w.RootDir(), "logical") }

func (w *CaseWorkspace) ExportDir() string        { return filepath.Join(w.caseDir, "export") }
func (w *CaseWorkspace) ExportRawDir() string     { return filepath.Join(w.ExportDir(), "raw") }
func (w *CaseWorkspace) ExportLegibleDir() string { return filepath.Join(w.ExportDir(), "legible") }

// WorkbookPath returns the path of the summary workbook.
func (w *CaseWorkspace) WorkbookPath() string {
	return filepath.Join(w.ExportDir(), "resumen_forense.xlsx")
}

// ManifestPath returns the path of the custody manifest database.
func (w *CaseWorkspace) ManifestPath() string {
	return filepath.Join(w.LogsDir(), "custody.db")
}

// EnsureDirs creates the full case directory tree. Existing directories are
// left untouched.
func (w *CaseWorkspace) EnsureDirs() error {
	dirs := []string{
		w.LogsDir(),
		w.LogicalDir(),
		w.MediaDir(),
		w.RootDatabasesDir(),
		w.RootSystemDir(),
		w.RootLogicalDir(),
		w.ExportRawDir(),
		w.ExportLegibleDir(),
	}
	for _, dir := range dirs {
		if err := w.fs.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "could not create %s", dir)
		}
	}
	return nil
}

// WriteArtifact writes text into dir/name, substituting undecodable bytes
// with U+FFFD. The directory must exist.
func (w *CaseWorkspace) WriteArtifact(dir, name, text string) error {
	p := filepath.Join(dir, name)
	err := afero.WriteFile(w.fs, p, []byte(strings.ToValidUTF8(text, "�")), 0600)
	if err != nil {
		return errors.Wrapf(err, "could not write %s", p)
	}
	return nil
}

// WriteLog writes text into the logs directory.
func (w *CaseWorkspace) WriteLog(name, text string) error {
	return w.WriteArtifact(w.LogsDir(), name, text)
}
