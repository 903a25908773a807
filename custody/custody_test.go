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

package custody

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "raw/sms.txt", []byte("Row: 0 address=555\n"), 0644))

	manifest, err := New(fs, ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	require.NoError(t, manifest.Record("raw/sms.txt"))

	artifacts, err := manifest.Artifacts()
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	artifact := artifacts[0]
	assert.True(t, strings.HasPrefix(artifact.ID, "artifact--"))
	assert.Equal(t, "sms.txt", artifact.Name)
	assert.Equal(t, "raw/sms.txt", artifact.Path)
	assert.Equal(t, int64(19), artifact.Size)
	assert.Len(t, artifact.MD5, 32)
	assert.Len(t, artifact.SHA1, 40)
	assert.NotEmpty(t, artifact.InsertTime)
}

func TestRecordAppendOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "raw/sms.txt", []byte("data"), 0644))

	manifest, err := New(fs, ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	require.NoError(t, manifest.Record("raw/sms.txt"))
	require.NoError(t, manifest.Record("raw/sms.txt"))

	artifacts, err := manifest.Artifacts()
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
	assert.NotEqual(t, artifacts[0].ID, artifacts[1].ID)
	assert.Equal(t, artifacts[0].MD5, artifacts[1].MD5)
}

func TestRecordMissingFile(t *testing.T) {
	manifest, err := New(afero.NewMemMapFs(), ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	assert.Error(t, manifest.Record("raw/missing.txt"))
}

func TestRecordTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	rawDir := filepath.Join("casos", "demo", "export", "raw")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "sms.txt"), []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "calllog.txt"), []byte("bb"), 0644))

	manifest, err := New(fs, ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	require.NoError(t, manifest.RecordTree(rawDir))

	artifacts, err := manifest.Artifacts()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	names := []string{artifacts[0].Name, artifacts[1].Name}
	assert.ElementsMatch(t, []string{"sms.txt", "calllog.txt"}, names)
}

func TestRecordTreeNested(t *testing.T) {
	fs := afero.NewMemMapFs()
	rawDir := filepath.Join("casos", "demo", "export", "raw")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "sms.txt"), []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "media", "DCIM", "img.jpg"), []byte("bb"), 0644))

	manifest, err := New(fs, ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	require.NoError(t, manifest.RecordTree(rawDir))

	artifacts, err := manifest.Artifacts()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	paths := []string{artifacts[0].Path, artifacts[1].Path}
	assert.ElementsMatch(t, []string{
		filepath.Join(rawDir, "sms.txt"),
		filepath.Join(rawDir, "media", "DCIM", "img.jpg"),
	}, paths)
}

func TestRecordTreeAbsoluteDir(t *testing.T) {
	fs := afero.NewOsFs()
	rawDir := t.TempDir()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "sms.txt"), []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(rawDir, "calllog.txt"), []byte("bb"), 0644))

	manifest, err := New(fs, ":memory:")
	require.NoError(t, err)
	defer manifest.Close()

	require.NoError(t, manifest.RecordTree(rawDir))

	artifacts, err := manifest.Artifacts()
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	names := []string{artifacts[0].Name, artifacts[1].Name}
	assert.ElementsMatch(t, []string{"sms.txt", "calllog.txt"}, names)
}
