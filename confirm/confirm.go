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

// Package confirm answers yes/no decisions for optional, expensive or
// destructive acquisition steps. Decisions are typed, not matched against
// prompt text.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// Decision names a single confirmation point of the pipeline.
type Decision int

const (
	// Backup gates the full logical device backup.
	Backup Decision = iota
	// Media gates the pull of the large media directories.
	Media
	// FullStorage gates the pull of the entire external storage tree.
	FullStorage
	// DiskImage gates the raw block level image of the data partition.
	DiskImage
	// Workbook gates the combined xlsx workbook during export.
	Workbook
)

var decisionNames = map[Decision]string{
	Backup:      "backup",
	Media:       "media",
	FullStorage: "full_storage",
	DiskImage:   "disk_image",
	Workbook:    "workbook",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// Policy answers a single confirmation. Implementations must not block the
// acquisition run on anything but user input.
type Policy interface {
	Ask(decision Decision, prompt string, defaultYes bool) bool
}

// Interactive prompts on out and reads a line from in. Empty input selects
// the default, unrecognized input re-prompts.
type Interactive struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewInteractive creates an interactive confirmation policy.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{scanner: bufio.NewScanner(in), out: out}
}

// Ask implements Policy.
func (i *Interactive) Ask(_ Decision, prompt string, defaultYes bool) bool {
	hint := "S/n"
	if !defaultYes {
		hint = "s/N"
	}
	for {
		fmt.Fprintf(i.out, "%s [%s]: ", prompt, hint)
		if !i.scanner.Scan() {
			return defaultYes
		}
		switch strings.ToLower(strings.TrimSpace(i.scanner.Text())) {
		case "":
			return defaultYes
		case "s", "si", "sí", "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(i.out, "  Responde 's' o 'n'.")
	}
}

// Answers is a programmatic confirmation policy with a pre-supplied answer
// table. Missing decisions fall back to the prompt default.
type Answers map[Decision]bool

// Ask implements Policy.
func (a Answers) Ask(decision Decision, _ string, defaultYes bool) bool {
	if answer, ok := a[decision]; ok {
		return answer
	}
	return defaultYes
}

// FromJSON builds an answer table from a flat JSON object keyed by decision
// name, e.g. {"backup": false, "disk_image": true}. Unknown keys are
// ignored.
func FromJSON(data []byte) Answers {
	answers := Answers{}
	for decision := Backup; decision <= Workbook; decision++ {
		if value := gjson.GetBytes(data, decision.String()); value.Exists() {
			answers[decision] = value.Bool()
		}
	}
	return answers
}
