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

package records

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// rowPrefix marks the lines of a content provider dump that carry a record.
const rowPrefix = "Row:"

var (
	fieldKey    = regexp.MustCompile(`\w+=`)
	epochDigits = regexp.MustCompile(`\d{10,}`)
	digitRun    = regexp.MustCompile(`\d+`)
)

// parseRowFields splits a "Row: <n> key=value key=value ..." line into its
// key/value pairs. A key is a run of word characters directly followed by
// '='; the value extends to the next key or the end of the line. Values are
// trimmed of surrounding whitespace and trailing ',' or ';'. A line without
// any key yields zero fields.
func parseRowFields(line string) map[string]string {
	matches := fieldKey.FindAllStringIndex(line, -1)
	fields := make(map[string]string, len(matches))
	for i, match := range matches {
		key := line[match[0] : match[1]-1]
		end := len(line)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		value := strings.TrimSpace(line[match[1]:end])
		fields[key] = strings.TrimRight(value, ",;")
	}
	return fields
}

// epochToTime converts a millisecond epoch value into a timestamp. The first
// run of ten or more digits is used, so quoted or comma separated values
// still convert. Values without such a run yield nil.
func epochToTime(value string) *time.Time {
	digits := epochDigits.FindString(value)
	if digits == "" {
		return nil
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC()
	return &t
}

// durationSeconds extracts a duration in seconds, defaulting to zero.
func durationSeconds(value string) int64 {
	digits := digitRun.FindString(value)
	if digits == "" {
		return 0
	}
	seconds, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return seconds
}

// describeType maps a small integer type code to its human readable
// description. Codes outside the table keep their code visible.
func describeType(table map[string]string, code string) string {
	if description, ok := table[code]; ok {
		return description
	}
	if code == "" {
		return "DESCONOCIDO"
	}
	return fmt.Sprintf("DESCONOCIDO (%s)", code)
}

// timeLess orders timestamps ascending with nil timestamps last.
func timeLess(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
