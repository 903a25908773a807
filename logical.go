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
	"archive/tar"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/adbextract/confirm"
)

const (
	backupPrompt = "¿Intentar generar backup lógico completo con 'adb backup -apk -shared -all'? " +
		"(puede pedir confirmación en el teléfono)"
	mediaPrompt = "¿Extraer MULTIMEDIA grande (/sdcard/DCIM, Pictures, Movies, WhatsApp/Media)? " +
		"(puede tardar mucho)"
)

// RunLogical performs the unprivileged acquisition: content provider dumps,
// dumpsys captures and the gated backup and media pulls. It returns the
// directory holding the provider dumps.
func (e *Engine) RunLogical() (string, []StepResult, error) {
	ws := e.Workspace
	if err := ws.EnsureDirs(); err != nil {
		return "", nil, err
	}

	e.progress("===== MODO NO ROOT (EXTRACCIÓN LÓGICA) =====")

	steps := []step{
		{name: "información del dispositivo", run: e.deviceInfo},
		{name: "CONTACTOS", run: func() error {
			return e.queryProvider("content://contacts/phones", ws.LogicalDir(), "contacts.txt", "contacts_err.txt")
		}},
		{name: "REGISTRO DE LLAMADAS", run: func() error {
			return e.queryProvider("content://call_log/calls", ws.LogicalDir(), "calllog.txt", "calllog_err.txt")
		}},
		{name: "MENSAJES SMS", run: func() error {
			return e.queryProvider("content://sms/", ws.LogicalDir(), "sms.txt", "sms_err.txt")
		}},
		{name: "EVENTOS DE CALENDARIO", run: func() error {
			return e.queryProvider("content://com.android.calendar/events", ws.LogicalDir(), "calendar_events.txt", "calendar_err.txt")
		}},
		{name: "dumpsys location", run: func() error { return e.dumpsys("location", "dumpsys_location.txt") }},
		{name: "dumpsys wifi", run: func() error { return e.dumpsys("wifi", "dumpsys_wifi.txt") }},
		{
			name: "backup lógico",
			gate: &gate{decision: confirm.Backup, prompt: backupPrompt, defaultYes: false},
			run:  e.logicalBackup,
		},
		{
			name: "multimedia",
			gate: &gate{decision: confirm.Media, prompt: mediaPrompt, defaultYes: false},
			run:  e.pullMedia,
		},
	}

	results := e.runSteps(steps)
	e.progress("[OK] Modo NO ROOT finalizado.")
	return ws.LogicalDir(), results, nil
}

func (e *Engine) dumpsys(service, artifact string) error {
	_, out, _, err := e.Device.Shell("dumpsys", service)
	if err != nil {
		return err
	}
	return e.Workspace.WriteArtifact(e.Workspace.LogicalDir(), artifact, out)
}

// logicalBackup generates backup_all.ab and, when abe.jar is available,
// converts and extracts it. Conversion and extraction failures are logged
// but do not fail the step.
func (e *Engine) logicalBackup() error {
	ws := e.Workspace
	backupPath := filepath.Join(ws.LogicalDir(), "backup_all.ab")

	code, out, stderr, err := e.Device.Backup(backupPath)
	if werr := ws.WriteLog("adb_backup_log.txt", fmt.Sprintf("STDOUT:\n%s\n\nSTDERR:\n%s", out, stderr)); werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	exists, err := afero.Exists(ws.Fs(), backupPath)
	if err != nil {
		return err
	}
	if code != 0 || !exists {
		return errors.Errorf("adb backup failed (code %d), revisa adb_backup_log.txt", code)
	}
	e.progress("  [OK] Backup generado en: %s", backupPath)

	abeJar := e.findAbeJar()
	if abeJar == "" {
		e.progress("[!] No se encontró abe.jar. Se deja solo backup_all.ab")
		return nil
	}

	tarPath := filepath.Join(ws.LogicalDir(), "backup_all.tar")
	e.progress("[*] Convirtiendo backup_all.ab a backup_all.tar con abe.jar (%s)...", abeJar)
	code, out, stderr, err = e.Runner.Run("java", "-jar", abeJar, "unpack", backupPath, tarPath)
	logText := fmt.Sprintf("CMD: java -jar %s unpack %s %s\n\nSTDOUT:\n%s\n\nSTDERR:\n%s",
		abeJar, backupPath, tarPath, out, stderr)
	if werr := ws.WriteLog("abe_unpack_log.txt", logText); werr != nil {
		return werr
	}
	tarExists, eerr := afero.Exists(ws.Fs(), tarPath)
	if eerr != nil {
		return eerr
	}
	if err != nil || code != 0 || !tarExists {
		e.progress("  [!] Error al ejecutar abe.jar (código %d). Revisa abe_unpack_log.txt.", code)
		return nil
	}

	extractDir := filepath.Join(ws.LogicalDir(), "backup_all_unpacked")
	if err := extractTar(ws.Fs(), tarPath, extractDir); err != nil {
		e.progress("  [!] No se pudo extraer backup_all.tar: %s", err)
		return nil
	}
	e.progress("  [OK] Contenido extraído en: %s", extractDir)
	return nil
}

// findAbeJar searches the known abe.jar locations below the base directory.
func (e *Engine) findAbeJar() string {
	candidates := []string{
		filepath.Join("source", "file", "abe.jar"),
		filepath.Join("source", "files", "abe.jar"),
		filepath.Join("source", "abe.jar"),
		filepath.Join("file", "abe.jar"),
		filepath.Join("files", "abe.jar"),
		"abe.jar",
	}
	for _, candidate := range candidates {
		p := filepath.Join(e.Workspace.Base(), candidate)
		if exists, err := afero.Exists(e.Workspace.Fs(), p); err == nil && exists {
			return p
		}
	}
	return ""
}

func extractTar(fs afero.Fs, tarPath, destDir string) error {
	file, err := fs.Open(tarPath)
	if err != nil {
		return errors.Wrap(err, "could not open tar")
	}
	defer file.Close()

	if err := fs.MkdirAll(destDir, 0750); err != nil {
		return err
	}

	reader := tar.NewReader(file)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "could not read tar")
		}

		name := filepath.Clean(header.Name)
		if filepath.IsAbs(name) || strings.HasPrefix(name, "..") {
			return errors.Errorf("illegal tar entry %s", header.Name)
		}
		target := filepath.Join(destDir, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0750); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := fs.MkdirAll(filepath.Dir(target), 0750); err != nil {
				return err
			}
			out, err := fs.Create(target)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, reader); err != nil { // #nosec
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}

// pullMedia retrieves the large media directories; each pull is independent.
func (e *Engine) pullMedia() error {
	ws := e.Workspace
	pulls := []struct{ remote, local string }{
		{"/sdcard/DCIM", "DCIM"},
		{"/sdcard/Pictures", "Pictures"},
		{"/sdcard/Movies", "Movies"},
		{"/sdcard/WhatsApp/Media", "WhatsApp_Media"},
	}
	for _, p := range pulls {
		e.progress("[*] Extrayendo %s...", p.remote)
		code, _, stderr, err := e.Device.Pull(p.remote, filepath.Join(ws.MediaDir(), p.local))
		switch {
		case err != nil:
			e.progress("  [!] No se pudo extraer %s: %s", p.remote, err)
		case code != 0:
			e.progress("  [!] No se pudo extraer %s: %s", p.remote, strings.TrimSpace(stderr))
		}
	}
	return nil
}
