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

// Package adb runs external commands and wraps the Android Debug Bridge
// operations used during acquisition: device listing, shell commands,
// content provider queries, file pulls, backups and superuser commands.
package adb

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

const adbCommand = "adb"

// Runner executes a single external command and captures both output streams
// as text. Undecodable bytes are substituted, never a failure. A started
// process that exits nonzero is not an error; callers inspect the exit code.
// The returned error is non-nil only when the process could not be run at
// all.
type Runner interface {
	Run(name string, arg ...string) (exitCode int, stdout, stderr string, err error)
}

// ExecRunner runs commands with os/exec, one process per call. No retries,
// no timeouts; some acquisition commands legitimately run for a long time.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(name string, arg ...string) (int, string, string, error) {
	command := exec.Command(name, arg...)

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()
	out := strings.ToValidUTF8(stdout.String(), "�")
	errOut := strings.ToValidUTF8(stderr.String(), "�")

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), out, errOut, nil
		}
		return -1, out, errOut, errors.Wrapf(err, "could not run %s", name)
	}
	return 0, out, errOut, nil
}

// NoDeviceError is returned when no attached device is in the ready state.
// It carries the raw device listing for diagnostics.
type NoDeviceError struct {
	Output string
}

func (e *NoDeviceError) Error() string {
	return fmt.Sprintf("no device in state 'device' found, adb devices returned:\n%s", e.Output)
}

// Device is the handle for a single attached device. It is created by Detect
// once per run and reused for every subsequent device operation.
type Device struct {
	runner Runner

	Serial string
}

// New creates a device handle for a known serial.
func New(runner Runner, serial string) *Device {
	return &Device{runner: runner, Serial: serial}
}

// Detect lists attached devices and returns a handle for the first one in
// the ready state.
func Detect(runner Runner) (*Device, error) {
	exitCode, out, errOut, err := runner.Run(adbCommand, "devices")
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		return nil, errors.Errorf("adb devices failed with code %d: %s", exitCode, strings.TrimSpace(errOut))
	}

	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // skip the "List of devices attached" header
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[1] == "device" {
			return New(runner, parts[0]), nil
		}
	}
	return nil, &NoDeviceError{Output: out}
}

// Shell runs a shell command on the device.
func (d *Device) Shell(arg ...string) (int, string, string, error) {
	args := append([]string{"-s", d.Serial, "shell"}, arg...)
	return d.runner.Run(adbCommand, args...)
}

// Content queries a content provider on the device.
func (d *Device) Content(uri string) (int, string, string, error) {
	return d.Shell("content", "query", "--uri", uri)
}

// Pull retrieves a file or directory from the device to a host path.
func (d *Device) Pull(remote, local string) (int, string, string, error) {
	return d.runner.Run(adbCommand, "-s", d.Serial, "pull", remote, local)
}

// Backup creates a full logical backup archive on the host. The device may
// require an on-screen confirmation before the backup starts.
func (d *Device) Backup(local string) (int, string, string, error) {
	return d.runner.Run(adbCommand, "-s", d.Serial, "backup", "-apk", "-shared", "-all", "-f", local)
}

// Su runs a command through the elevation mechanism on the device.
func (d *Device) Su(command string) (int, string, string, error) {
	return d.Shell("su", "-c", command)
}
