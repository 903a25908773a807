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

// Package adbextract acquires forensic artifacts from Android devices over
// the Android Debug Bridge and exports them as custody preserving raw
// copies and human legible tables.
//
// An acquisition runs in one of two modes. The logical mode queries the
// standard content providers (contacts, call log, messages, calendar) and
// captures diagnostic dumps; it requires no elevated privilege. The
// privileged mode additionally copies the restricted internal databases
// through the superuser elevation mechanism. Every acquisition step is
// independent: a failing step leaves an error artifact and the run
// continues.
//
// Case structure
//
// Each case is a directory below the base directory:
//     casos/<case>/
//     ├── logs/                   detection logs, step error logs, custody.db
//     ├── logical/                logical mode raw artifacts, optional backup and media
//     ├── media/                  optional media pulls
//     ├── root/
//     │   ├── databases/          privileged raw database copies
//     │   ├── system/             privileged network and location copies
//     │   └── logical/            privileged mode content provider dumps
//     └── export/
//         ├── raw/                custody copies of the raw text artifacts
//         ├── legible/            parsed csv tables and aggregates
//         └── resumen_forense.xlsx
package adbextract
