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

// Package custody keeps an append-only manifest of acquired artifacts in a
// sqlite database (custody.db). Every entry records the artifact path, size
// and its md5 and sha1 digests, so custody copies can be verified later.
package custody

import (
	"crypto/md5"  // #nosec
	"crypto/sha1" // #nosec
	"fmt"
	"io"
	"path/filepath"
	"time"

	"crawshaw.io/sqlite"
	"github.com/forensicanalysis/fsdoublestar"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Artifact is one row of the manifest.
type Artifact struct {
	ID         string
	Name       string
	Path       string
	Size       int64
	MD5        string
	SHA1       string
	InsertTime string
}

// Manifest is an append-only evidence log. Recording a path twice inserts a
// second row; the manifest is a log, not an index.
type Manifest struct {
	fs     afero.Fs
	cursor *sqlite.Conn
}

// New opens or creates a manifest database. Artifact contents are read from
// fs, the database itself is managed by the sqlite driver.
func New(fs afero.Fs, url string) (*Manifest, error) {
	cursor, err := sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open manifest %s", url)
	}

	manifest := &Manifest{fs: fs, cursor: cursor}
	err = manifest.exec("CREATE TABLE IF NOT EXISTS `artifacts` " +
		"(id TEXT, name TEXT, path TEXT, size INTEGER, md5 TEXT, sha1 TEXT, insert_time TEXT)")
	if err != nil {
		cursor.Close() // nolint:errcheck
		return nil, errors.Wrap(err, "could not create artifacts table")
	}
	return manifest, nil
}

// Close closes the manifest database.
func (m *Manifest) Close() error {
	return m.cursor.Close()
}

func (m *Manifest) exec(query string) error {
	stmt, err := m.cursor.Prepare(query)
	if err != nil {
		return err
	}
	if _, err := stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

// Record hashes a single artifact and appends it to the manifest.
func (m *Manifest) Record(artifactPath string) error {
	file, err := m.fs.Open(artifactPath)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", artifactPath)
	}

	md5Hash := md5.New()   // #nosec
	sha1Hash := sha1.New() // #nosec
	size, err := io.Copy(io.MultiWriter(md5Hash, sha1Hash), file)
	file.Close() // nolint:errcheck
	if err != nil {
		return errors.Wrapf(err, "could not hash %s", artifactPath)
	}

	query := "INSERT INTO `artifacts` (id, name, path, size, md5, sha1, insert_time) " +
		"VALUES ($id, $name, $path, $size, $md5, $sha1, $time)"
	stmt, err := m.cursor.Prepare(query)
	if err != nil {
		return errors.Wrap(err, "could not prepare insert")
	}
	stmt.SetText("$id", "artifact--"+uuid.New().String())
	stmt.SetText("$name", filepath.Base(artifactPath))
	stmt.SetText("$path", artifactPath)
	stmt.SetInt64("$size", size)
	stmt.SetText("$md5", fmt.Sprintf("%x", md5Hash.Sum(nil)))
	stmt.SetText("$sha1", fmt.Sprintf("%x", sha1Hash.Sum(nil)))
	stmt.SetText("$time", time.Now().Format("2006-01-02T15:04:05.000Z"))
	if _, err := stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

// RecordTree records every file below dir. The glob runs on an io/fs view
// anchored at dir, so dir itself may be an absolute path.
func (m *Manifest) RecordTree(dir string) error {
	tree := afero.NewBasePathFs(m.fs, dir)
	matches, err := fsdoublestar.Glob(afero.NewIOFS(tree), "**")
	if err != nil {
		return errors.Wrapf(err, "could not glob %s", dir)
	}

	for _, match := range matches {
		artifactPath := filepath.Join(dir, filepath.FromSlash(match))
		info, err := m.fs.Stat(artifactPath)
		if err != nil {
			return err
		}
		if info.IsDir() {
			continue
		}
		if err := m.Record(artifactPath); err != nil {
			return err
		}
	}
	return nil
}

// Artifacts returns all manifest rows in insertion order.
func (m *Manifest) Artifacts() ([]Artifact, error) {
	stmt, err := m.cursor.Prepare("SELECT id, name, path, size, md5, sha1, insert_time FROM `artifacts` ORDER BY rowid")
	if err != nil {
		return nil, err
	}

	var artifacts []Artifact
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}
		artifacts = append(artifacts, Artifact{
			ID:         stmt.GetText("id"),
			Name:       stmt.GetText("name"),
			Path:       stmt.GetText("path"),
			Size:       stmt.GetInt64("size"),
			MD5:        stmt.GetText("md5"),
			SHA1:       stmt.GetText("sha1"),
			InsertTime: stmt.GetText("insert_time"),
		})
	}
	return artifacts, stmt.Finalize()
}
