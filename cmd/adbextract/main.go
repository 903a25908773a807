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

// Package adbextract implements the adbextract command line tool that
// acquires and exports forensic artifacts from Android devices.
//     acquire   Acquire artifacts from a connected device
//     export    Re-export an acquired case
//
// Usage
//
// Acquire a case interactively
//     adbextract acquire --case caso01 --mode logical
// Acquire without prompts
//     adbextract acquire --case caso01 --mode root --answers answers.json
// Re-export a privileged acquisition
//     adbextract export --case caso01 --source root
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/adbextract/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "adbextract",
		Short: "Acquire and export Android forensic artifacts",
	}
	rootCmd.AddCommand(cmd.Acquire(), cmd.Export())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
