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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseRowFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want map[string]string
	}{
		{
			name: "plain fields",
			line: "Row: 0 _id=1 address=+59177 type=1 body=Hola mundo",
			want: map[string]string{"_id": "1", "address": "+59177", "type": "1", "body": "Hola mundo"},
		},
		{
			name: "trailing commas and semicolons stripped",
			line: "Row: 0 type=2, duration=30;",
			want: map[string]string{"type": "2", "duration": "30"},
		},
		{
			name: "empty values",
			line: "Row: 0 name= number=111",
			want: map[string]string{"name": "", "number": "111"},
		},
		{
			name: "no fields",
			line: "Row: garbage without pairs",
			want: map[string]string{},
		},
		{
			name: "value with spaces keeps inner text",
			line: "Row: 0 title=Cena con amigos  eventTimezone=UTC",
			want: map[string]string{"title": "Cena con amigos", "eventTimezone": "UTC"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRowFields(tt.line))
		})
	}
}

func Test_epochToTime(t *testing.T) {
	assert.Nil(t, epochToTime(""))
	assert.Nil(t, epochToTime("abc"))
	assert.Nil(t, epochToTime("123"))

	got := epochToTime("1700000000100")
	assert.NotNil(t, got)

	// embedded quotes and commas still convert
	quoted := epochToTime(`"1700000000100"`)
	assert.Equal(t, got, quoted)
}

func Test_durationSeconds(t *testing.T) {
	assert.Equal(t, int64(0), durationSeconds(""))
	assert.Equal(t, int64(0), durationSeconds("none"))
	assert.Equal(t, int64(42), durationSeconds("42"))
	assert.Equal(t, int64(42), durationSeconds(`"42"`))
}
