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
	"context"
	"encoding/json"
	"fmt"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/spf13/afero"
)

// Mode selects the acquisition protocol.
type Mode int

const (
	// Logical acquires through unprivileged content providers and dumps.
	Logical Mode = iota
	// Privileged additionally copies restricted databases via su.
	Privileged
)

func (m Mode) String() string {
	if m == Privileged {
		return "root"
	}
	return "logical"
}

// ParseMode parses "logical" or "root".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "logical":
		return Logical, nil
	case "root":
		return Privileged, nil
	}
	return Logical, fmt.Errorf("unknown mode %q (want logical or root)", s)
}

// Format selects the export depth.
type Format int

const (
	// RawPlusLegible exports raw copies plus parsed csv tables.
	RawPlusLegible Format = iota
	// RawOnly exports raw copies only.
	RawOnly
)

func (f Format) String() string {
	if f == RawOnly {
		return "raw"
	}
	return "legible"
}

// ParseFormat parses "raw" or "legible".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "raw":
		return RawOnly, nil
	case "legible":
		return RawPlusLegible, nil
	}
	return RawPlusLegible, fmt.Errorf("unknown format %q (want raw or legible)", s)
}

// RunConfig is the immutable configuration of one acquisition run.
type RunConfig struct {
	Case    string
	BaseDir string
	Mode    Mode
	Format  Format
}

const configSchema = `{
	"$schema": "https://json-schema.org/draft/2019-09/schema#",
	"$id": "adbextract:config",
	"type": "object",
	"properties": {
		"case": {"type": "string"},
		"base": {"type": "string"},
		"mode": {"type": "string", "enum": ["logical", "root"]},
		"format": {"type": "string", "enum": ["raw", "legible"]}
	},
	"additionalProperties": false
}`

type fileConfig struct {
	Case   string `json:"case"`
	Base   string `json:"base"`
	Mode   string `json:"mode"`
	Format string `json:"format"`
}

// LoadConfig reads a JSON run configuration from path, validates it against
// the embedded schema and fills unset fields with defaults (case "caso",
// base ".", mode logical, format legible).
func LoadConfig(fs afero.Fs, path string) (RunConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return RunConfig{}, errors.Wrap(err, "could not read config")
	}

	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(configSchema), schema); err != nil {
		return RunConfig{}, errors.Wrap(err, "could not parse config schema")
	}
	keyErrors, err := schema.ValidateBytes(context.Background(), data)
	if err != nil {
		return RunConfig{}, errors.Wrap(err, "could not validate config")
	}
	if len(keyErrors) > 0 {
		return RunConfig{}, fmt.Errorf("invalid config: %s", keyErrors[0].Message)
	}

	fc := fileConfig{}
	if err := json.Unmarshal(data, &fc); err != nil {
		return RunConfig{}, errors.Wrap(err, "could not unmarshal config")
	}
	defaults := fileConfig{Case: DefaultCase, Base: ".", Mode: "logical", Format: "legible"}
	if err := mergo.Merge(&fc, defaults); err != nil {
		return RunConfig{}, errors.Wrap(err, "could not apply config defaults")
	}

	mode, err := ParseMode(fc.Mode)
	if err != nil {
		return RunConfig{}, err
	}
	format, err := ParseFormat(fc.Format)
	if err != nil {
		return RunConfig{}, err
	}

	return RunConfig{Case: fc.Case, BaseDir: fc.Base, Mode: mode, Format: format}, nil
}
