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
	"log"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/adbextract"
)

// Export is the adbextract export commandline subcommand. It re-exports an
// already acquired case without touching a device.
func Export() *cobra.Command {
	var baseDir, caseName, formatName, sourceName, answersPath string
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Re-export an acquired case",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			format, err := adbextract.ParseFormat(formatName)
			if err != nil {
				return err
			}
			policy, err := loadPolicy(fs, answersPath)
			if err != nil {
				return err
			}

			ws := adbextract.NewCaseWorkspace(fs, baseDir, caseName)
			var logicalDir string
			switch sourceName {
			case "logical":
				logicalDir = ws.LogicalDir()
			case "root":
				logicalDir = ws.RootLogicalDir()
			default:
				return errors.Errorf("unknown source %q (want logical or root)", sourceName)
			}
			exists, err := afero.DirExists(fs, logicalDir)
			if err != nil {
				return err
			}
			if !exists {
				return errors.Errorf("%s does not exist, acquire the case first", logicalDir)
			}
			if err := ws.EnsureDirs(); err != nil {
				return err
			}

			engine := adbextract.NewEngine(nil, nil, ws, policy, format)
			if _, err := engine.Export(logicalDir); err != nil {
				return err
			}
			if err := engine.RecordCustody(); err != nil {
				log.Printf("[!] No se pudo registrar la cadena de custodia: %s", err)
			}
			return nil
		},
	}
	exportCommand.Flags().StringVar(&baseDir, "base", ".", "base directory holding casos/")
	exportCommand.Flags().StringVar(&caseName, "case", adbextract.DefaultCase, "case name")
	exportCommand.Flags().StringVar(&formatName, "format", "legible", "export format (raw|legible)")
	exportCommand.Flags().StringVar(&sourceName, "source", "logical", "acquisition to export (logical|root)")
	exportCommand.Flags().StringVar(&answersPath, "answers", "", "json file with confirmation answers")
	return exportCommand
}
