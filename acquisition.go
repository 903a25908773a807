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
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/adbextract/adb"
	"github.com/forensicanalysis/adbextract/confirm"
)

// Engine drives an acquisition run against one detected device. All steps
// run strictly sequential; a failing step is recorded and the run continues.
type Engine struct {
	Runner    adb.Runner
	Device    *adb.Device
	Workspace *CaseWorkspace
	Policy    confirm.Policy
	Format    Format

	// Progress additionally receives every status message, e.g. for a
	// frontend; it may be nil. Messages always go to the standard logger.
	Progress func(string)
}

// NewEngine creates an engine from a detected device and a prepared
// workspace.
func NewEngine(runner adb.Runner, device *adb.Device, ws *CaseWorkspace, policy confirm.Policy, format Format) *Engine {
	return &Engine{Runner: runner, Device: device, Workspace: ws, Policy: policy, Format: format}
}

func (e *Engine) progress(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	log.Println(msg)
	if e.Progress != nil {
		e.Progress(msg)
	}
}

// gate couples a step to a confirmation decision.
type gate struct {
	decision   confirm.Decision
	prompt     string
	defaultYes bool
}

// step is one unit of an acquisition protocol.
type step struct {
	name string
	gate *gate
	run  func() error
}

// StepResult records the outcome of one step. A declined gate sets Skipped;
// a failed run sets Err.
type StepResult struct {
	Name    string
	Skipped bool
	Err     error
}

func (e *Engine) runSteps(steps []step) []StepResult {
	results := make([]StepResult, 0, len(steps))
	for _, s := range steps {
		if s.gate != nil && !e.Policy.Ask(s.gate.decision, s.gate.prompt, s.gate.defaultYes) {
			e.progress("[*] %s OMITIDO por elección del usuario.", s.name)
			results = append(results, StepResult{Name: s.name, Skipped: true})
			continue
		}
		e.progress("[*] %s...", s.name)
		err := s.run()
		if err != nil {
			e.progress("  [!] %s: %s", s.name, err)
		}
		results = append(results, StepResult{Name: s.name, Err: err})
	}
	return results
}

// deviceInfo captures getprop and the device clock into the logs directory.
func (e *Engine) deviceInfo() error {
	_, out, _, err := e.Device.Shell("getprop")
	if err != nil {
		return err
	}
	if err := e.Workspace.WriteLog("getprop.txt", out); err != nil {
		return err
	}

	_, out, _, err = e.Device.Shell("date")
	if err != nil {
		return err
	}
	return e.Workspace.WriteLog("device_date.txt", out)
}

// queryProvider dumps one content provider into dir/artifact. stderr goes to
// the error log in every case, so empty dumps stay explainable.
func (e *Engine) queryProvider(uri, dir, artifact, errLog string) error {
	code, out, stderr, err := e.Device.Content(uri)
	if err != nil {
		return err
	}
	if werr := e.Workspace.WriteArtifact(dir, artifact, out); werr != nil {
		return werr
	}
	if werr := e.Workspace.WriteLog(errLog, stderr); werr != nil {
		return werr
	}
	if code != 0 {
		return errors.Errorf("content query %s exited with %d", uri, code)
	}
	return nil
}
