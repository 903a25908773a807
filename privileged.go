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
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/adbextract/confirm"
)

const (
	fullStoragePrompt = "¿Extraer TODO /sdcard completo? (MUY pesado, puede tardar muchísimo y ocupar mucho espacio)"
	diskImagePrompt   = "¿Intentar crear imagen dd de la partición /data (userdata.img)? (AVANZADO, muy pesado)"
)

// RunPrivileged performs the deep acquisition via su: restricted databases,
// the same provider dumps as the logical mode, network and location
// configuration, plus the gated full storage pull and disk image. A missing
// root marker is a warning; every step still runs best-effort. It returns
// the directory holding the provider dumps.
func (e *Engine) RunPrivileged() (string, []StepResult, error) {
	ws := e.Workspace
	if err := ws.EnsureDirs(); err != nil {
		return "", nil, err
	}

	e.progress("===== MODO ROOT (EXTRACCIÓN PROFUNDA) =====")

	steps := []step{
		{name: "información del dispositivo", run: e.deviceInfo},
		{name: "verificación de acceso ROOT (su -c id)", run: e.verifyRoot},
		{name: "BD contacts2.db", run: func() error {
			return e.stagedCopy("/data/data/com.android.providers.contacts/databases/contacts2.db", "contacts2.db")
		}},
		{name: "BD calllog.db", run: func() error {
			return e.stagedCopy("/data/data/com.android.providers.contacts/databases/calllog.db", "calllog.db")
		}},
		{name: "BD mmssms.db", run: func() error {
			return e.stagedCopy("/data/data/com.android.providers.telephony/databases/mmssms.db", "mmssms.db")
		}},
		{name: "BD calendar.db", run: func() error {
			return e.stagedCopy("/data/data/com.android.providers.calendar/databases/calendar.db", "calendar.db")
		}},
		{name: "CONTACTOS", run: func() error {
			return e.queryProvider("content://contacts/phones", ws.RootLogicalDir(), "contacts.txt", "root_contacts_err.txt")
		}},
		{name: "REGISTRO DE LLAMADAS", run: func() error {
			return e.queryProvider("content://call_log/calls", ws.RootLogicalDir(), "calllog.txt", "root_calllog_err.txt")
		}},
		{name: "MENSAJES SMS", run: func() error {
			return e.queryProvider("content://sms/", ws.RootLogicalDir(), "sms.txt", "root_sms_err.txt")
		}},
		{name: "EVENTOS DE CALENDARIO", run: func() error {
			return e.queryProvider("content://com.android.calendar/events", ws.RootLogicalDir(), "calendar_events.txt", "root_calendar_err.txt")
		}},
		{name: "BDs de GMAIL", run: e.pullGmail},
		{name: "HISTORIAL de Chrome", run: e.pullChromeHistory},
		{name: "configuración de RED y ubicación", run: e.pullNetLocation},
		{
			name: "/sdcard completo",
			gate: &gate{decision: confirm.FullStorage, prompt: fullStoragePrompt, defaultYes: false},
			run:  e.pullFullStorage,
		},
		{
			name: "imagen dd de /data",
			gate: &gate{decision: confirm.DiskImage, prompt: diskImagePrompt, defaultYes: false},
			run:  e.diskImage,
		},
	}

	results := e.runSteps(steps)
	e.progress("[OK] Modo ROOT finalizado.")
	return ws.RootLogicalDir(), results, nil
}

// verifyRoot logs su -c id and warns when no uid=0 marker shows up. The
// acquisition continues either way.
func (e *Engine) verifyRoot() error {
	_, out, stderr, err := e.Device.Su("id")
	if err != nil {
		return err
	}
	if werr := e.Workspace.WriteLog("su_id.txt", out+"\n"+stderr); werr != nil {
		return werr
	}
	if !strings.Contains(out, "uid=0") {
		e.progress("[ADVERTENCIA] No se detectó 'uid=0' en la salida de 'su'.")
		e.progress("             Es posible que el dispositivo NO esté rooteado o falten permisos.")
		e.progress("             Se intentará continuar de todas formas.")
	}
	return nil
}

// stagedCopy copies a restricted file via su to /sdcard, pulls it into
// root/databases and removes the staged copy.
func (e *Engine) stagedCopy(src, destName string) error {
	staged := "/sdcard/" + destName

	code, _, stderr, err := e.Device.Su(fmt.Sprintf("cp %s %s", src, staged))
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("no se pudo copiar %s: %s", src, strings.TrimSpace(stderr))
	}

	dest := filepath.Join(e.Workspace.RootDatabasesDir(), destName)
	code, _, stderr, err = e.Device.Pull(staged, dest)
	// remove the staged copy even when the pull failed
	e.Device.Su("rm " + staged) // nolint:errcheck
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("error al hacer pull de %s: %s", src, strings.TrimSpace(stderr))
	}
	e.progress("  [OK] Copiado %s -> %s", src, dest)
	return nil
}

func (e *Engine) pullGmail() error {
	if _, _, _, err := e.Device.Su("mkdir /sdcard/gmail_dbs"); err != nil {
		return err
	}
	if _, _, _, err := e.Device.Su("cp /data/data/com.google.android.gm/databases/* /sdcard/gmail_dbs"); err != nil {
		return err
	}
	dest := filepath.Join(e.Workspace.RootDatabasesDir(), "gmail_dbs")
	if _, _, _, err := e.Device.Pull("/sdcard/gmail_dbs", dest); err != nil {
		return err
	}
	_, _, _, err := e.Device.Su("rm -r /sdcard/gmail_dbs")
	return err
}

func (e *Engine) pullChromeHistory() error {
	if _, _, _, err := e.Device.Su("cp /data/data/com.android.chrome/app_chrome/Default/History /sdcard/chrome_history"); err != nil {
		return err
	}
	dest := filepath.Join(e.Workspace.RootDatabasesDir(), "chrome_history")
	if _, _, _, err := e.Device.Pull("/sdcard/chrome_history", dest); err != nil {
		return err
	}
	_, _, _, err := e.Device.Su("rm /sdcard/chrome_history")
	return err
}

func (e *Engine) pullNetLocation() error {
	commands := []string{
		"mkdir /sdcard/forense_net",
		"cp -r /data/misc/wifi /sdcard/forense_net/wifi",
		"cp -r /data/misc/location /sdcard/forense_net/location",
	}
	for _, command := range commands {
		if _, _, _, err := e.Device.Su(command); err != nil {
			return err
		}
	}
	dest := filepath.Join(e.Workspace.RootSystemDir(), "net_location")
	if _, _, _, err := e.Device.Pull("/sdcard/forense_net", dest); err != nil {
		return err
	}
	_, _, _, err := e.Device.Su("rm -r /sdcard/forense_net")
	return err
}

func (e *Engine) pullFullStorage() error {
	dest := filepath.Join(e.Workspace.RootDir(), "sdcard")
	code, _, stderr, err := e.Device.Pull("/sdcard", dest)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("pull /sdcard failed: %s", strings.TrimSpace(stderr))
	}
	return nil
}

// diskImage images the userdata partition via dd, stages it on /sdcard and
// pulls it into the root directory.
func (e *Engine) diskImage() error {
	code, out, stderr, err := e.Device.Su("dd if=/dev/block/bootdevice/by-name/userdata of=/sdcard/userdata.img bs=4096")
	if werr := e.Workspace.WriteLog("dd_userdata_log.txt", fmt.Sprintf("STDOUT:\n%s\n\nSTDERR:\n%s", out, stderr)); werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("dd failed (code %d), revisa dd_userdata_log.txt", code)
	}

	dest := filepath.Join(e.Workspace.RootDir(), "userdata.img")
	code, _, stderr, err = e.Device.Pull("/sdcard/userdata.img", dest)
	e.Device.Su("rm /sdcard/userdata.img") // nolint:errcheck
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.Errorf("error al hacer pull de userdata.img: %s", strings.TrimSpace(stderr))
	}
	return nil
}
