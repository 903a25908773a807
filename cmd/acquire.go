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
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/adbextract"
	"github.com/forensicanalysis/adbextract/adb"
	"github.com/forensicanalysis/adbextract/confirm"
)

// Acquire is the adbextract acquire commandline subcommand
func Acquire() *cobra.Command {
	var baseDir, caseName, modeName, formatName, answersPath, configPath string
	var allYes, allNo bool
	acquireCommand := &cobra.Command{
		Use:   "acquire",
		Short: "Acquire artifacts from a connected Android device",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			conf := adbextract.RunConfig{Case: caseName, BaseDir: baseDir}
			if configPath != "" {
				var err error
				conf, err = adbextract.LoadConfig(fs, configPath)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("case") {
					conf.Case = caseName
				}
				if cmd.Flags().Changed("base") {
					conf.BaseDir = baseDir
				}
			}
			if configPath == "" || cmd.Flags().Changed("mode") {
				mode, err := adbextract.ParseMode(modeName)
				if err != nil {
					return err
				}
				conf.Mode = mode
			}
			if configPath == "" || cmd.Flags().Changed("format") {
				format, err := adbextract.ParseFormat(formatName)
				if err != nil {
					return err
				}
				conf.Format = format
			}

			policy, err := blanketPolicy(allYes, allNo)
			if err != nil {
				return err
			}
			if policy == nil {
				policy, err = loadPolicy(fs, answersPath)
				if err != nil {
					return err
				}
			}
			return acquire(fs, conf, policy)
		},
	}
	acquireCommand.Flags().StringVar(&baseDir, "base", ".", "base directory holding casos/")
	acquireCommand.Flags().StringVar(&caseName, "case", adbextract.DefaultCase, "case name")
	acquireCommand.Flags().StringVar(&modeName, "mode", "logical", "acquisition mode (logical|root)")
	acquireCommand.Flags().StringVar(&formatName, "format", "legible", "export format (raw|legible)")
	acquireCommand.Flags().StringVar(&answersPath, "answers", "", "json file with confirmation answers")
	acquireCommand.Flags().StringVar(&configPath, "config", "", "json run configuration file")
	acquireCommand.Flags().BoolVar(&allYes, "yes", false, "answer every confirmation with yes")
	acquireCommand.Flags().BoolVar(&allNo, "no", false, "answer every confirmation with no")
	return acquireCommand
}

// blanketPolicy answers every confirmation uniformly, or returns nil when
// neither flag is set.
func blanketPolicy(allYes, allNo bool) (confirm.Policy, error) {
	if allYes && allNo {
		return nil, errors.New("--yes and --no are mutually exclusive")
	}
	if !allYes && !allNo {
		return nil, nil
	}
	answers := confirm.Answers{}
	for decision := confirm.Backup; decision <= confirm.Workbook; decision++ {
		answers[decision] = allYes
	}
	return answers, nil
}

func loadPolicy(fs afero.Fs, answersPath string) (confirm.Policy, error) {
	if answersPath == "" {
		return confirm.NewInteractive(os.Stdin, os.Stdout), nil
	}
	data, err := afero.ReadFile(fs, answersPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read answers")
	}
	return confirm.FromJSON(data), nil
}

func acquire(fs afero.Fs, conf adbextract.RunConfig, policy confirm.Policy) error {
	runner := adb.ExecRunner{}

	log.Println("[*] Detectando dispositivo ADB...")
	device, err := adb.Detect(runner)
	if err != nil {
		return err
	}
	log.Printf("[OK] Dispositivo detectado: %s", device.Serial)

	ws := adbextract.NewCaseWorkspace(fs, conf.BaseDir, conf.Case)
	fmt.Printf("\nCarpeta del caso: %s\n", ws.CaseDir())

	engine := adbextract.NewEngine(runner, device, ws, policy, conf.Format)

	var logicalDir string
	var results []adbextract.StepResult
	if conf.Mode == adbextract.Privileged {
		logicalDir, results, err = engine.RunPrivileged()
	} else {
		logicalDir, results, err = engine.RunLogical()
	}
	if err != nil {
		return err
	}
	reportResults(results)

	if _, err := engine.Export(logicalDir); err != nil {
		return err
	}
	if err := engine.RecordCustody(); err != nil {
		log.Printf("[!] No se pudo registrar la cadena de custodia: %s", err)
	}

	fmt.Printf("\n[OK] Proceso completo terminado.\nCarpeta del caso: %s\n", ws.CaseDir())
	return nil
}

func reportResults(results []adbextract.StepResult) {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("[!] %d de %d pasos fallaron, revisa los logs del caso.", failed, len(results))
	}
}
