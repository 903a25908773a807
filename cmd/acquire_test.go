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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forensicanalysis/adbextract/confirm"
)

func TestBlanketPolicy(t *testing.T) {
	policy, err := blanketPolicy(false, false)
	require.NoError(t, err)
	assert.Nil(t, policy)

	policy, err = blanketPolicy(true, false)
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.True(t, policy.Ask(confirm.DiskImage, "", false))
	assert.True(t, policy.Ask(confirm.Workbook, "", true))

	policy, err = blanketPolicy(false, true)
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.False(t, policy.Ask(confirm.Backup, "", true))

	_, err = blanketPolicy(true, true)
	assert.Error(t, err)
}

func TestLoadPolicy(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "answers.json", []byte(`{"backup": true, "workbook": false}`), 0600))

	policy, err := loadPolicy(fs, "answers.json")
	require.NoError(t, err)
	assert.True(t, policy.Ask(confirm.Backup, "", false))
	assert.False(t, policy.Ask(confirm.Workbook, "", true))
	// missing decisions fall back to the default
	assert.False(t, policy.Ask(confirm.Media, "", false))

	_, err = loadPolicy(fs, "missing.json")
	assert.Error(t, err)

	policy, err = loadPolicy(fs, "")
	require.NoError(t, err)
	assert.NotNil(t, policy)
}
