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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smsDump = `Row: 0 _id=1 address=555 date=1700000000300 type=1 body=tercero
Row: 1 _id=2 address=555 date=1700000000100 type=2 body=primero
Row: 2 _id=3 address=777 date=1700000000200 type=9 body=segundo
`

func TestParseMessages(t *testing.T) {
	messages := ParseMessages(smsDump)
	require.Len(t, messages, 3)

	// ordered by timestamp ascending
	assert.Equal(t, "primero", messages[0].Body)
	assert.Equal(t, "segundo", messages[1].Body)
	assert.Equal(t, "tercero", messages[2].Body)

	assert.Equal(t, "555", messages[0].Number)
	assert.Equal(t, "2", messages[0].TypeCode)
	assert.Equal(t, "ENVIADO (SENT)", messages[0].TypeDescription)
	assert.Equal(t, "RECIBIDO (INBOX)", messages[2].TypeDescription)
	assert.Equal(t, "DESCONOCIDO (9)", messages[1].TypeDescription)

	require.NotNil(t, messages[0].Date)
	assert.Equal(t, time.Unix(1700000000, 100*int64(time.Millisecond)).UTC(), *messages[0].Date)
}

func TestParseMessagesMissingEpoch(t *testing.T) {
	messages := ParseMessages("Row: 0 address=555 type=1 body=sin fecha\nRow: 1 address=555 date=1700000000100 type=1 body=con fecha\n")
	require.Len(t, messages, 2)

	// records without a timestamp sort last, not fail
	assert.Equal(t, "con fecha", messages[0].Body)
	assert.Nil(t, messages[1].Date)
	assert.Equal(t, "sin fecha", messages[1].Body)
}

func TestParseMessagesIdempotent(t *testing.T) {
	first := ParseMessages(smsDump)
	second := ParseMessages(smsDump)
	assert.Equal(t, first, second)
}

func TestParseMessagesMalformed(t *testing.T) {
	messages := ParseMessages("some header\nRow: garbage without fields\n\nnot a row at all\n")
	require.Len(t, messages, 1)
	assert.Equal(t, Message{TypeDescription: "DESCONOCIDO"}, messages[0])
}

func TestParseContacts(t *testing.T) {
	text := `Row: 0 display_name=Zoe data1=999 type=2
Row: 1 display_name=Ana number=111 type=1
Row: 2 display_name=Ana data4=222 type=7
Row: 3 display_name=Bob data1=333 type=42
`
	contacts := ParseContacts(text)
	require.Len(t, contacts, 4)

	// ordered by name, then number
	assert.Equal(t, Contact{Name: "Ana", Number: "111", TypeCode: "1", TypeDescription: "DOMICILIO"}, contacts[0])
	assert.Equal(t, Contact{Name: "Ana", Number: "222", TypeCode: "7", TypeDescription: "OTRO"}, contacts[1])
	assert.Equal(t, Contact{Name: "Bob", Number: "333", TypeCode: "42", TypeDescription: "DESCONOCIDO (42)"}, contacts[2])
	assert.Equal(t, Contact{Name: "Zoe", Number: "999", TypeCode: "2", TypeDescription: "MOVIL"}, contacts[3])
}

func TestParseCalls(t *testing.T) {
	text := `Row: 0 number=555 name=Ana date=1700000000200 type=2 duration=30
Row: 1 number=777 name= date=1700000000100 type=3 duration=
Row: 2 number=555 name=Ana date=nodigits type=1 duration=90,
`
	calls := ParseCalls(text)
	require.Len(t, calls, 3)

	assert.Equal(t, "777", calls[0].Number)
	assert.Equal(t, "PERDIDA", calls[0].TypeDescription)
	assert.Equal(t, int64(0), calls[0].DurationSeconds)

	assert.Equal(t, "555", calls[1].Number)
	assert.Equal(t, "SALIENTE", calls[1].TypeDescription)
	assert.Equal(t, int64(30), calls[1].DurationSeconds)

	// unparsable epoch sorts last with a nil timestamp
	assert.Nil(t, calls[2].Date)
	assert.Equal(t, int64(90), calls[2].DurationSeconds)
	assert.Equal(t, "ENTRANTE", calls[2].TypeDescription)
}

func TestParseCalendar(t *testing.T) {
	text := `Row: 0 title=Reunión calendar_displayName=Trabajo eventLocation=Oficina dtstart=1700000000200 dtend=1700000003600 eventTimezone=America/La_Paz
Row: 1 title=Cita dtstart=1700000000100 dtend= eventTimezone=UTC
`
	events := ParseCalendar(text)
	require.Len(t, events, 2)

	assert.Equal(t, "Cita", events[0].Title)
	assert.Nil(t, events[0].End)
	assert.Equal(t, "UTC", events[0].Timezone)

	assert.Equal(t, "Reunión", events[1].Title)
	assert.Equal(t, "Trabajo", events[1].Calendar)
	assert.Equal(t, "Oficina", events[1].Location)
	require.NotNil(t, events[1].Start)
	require.NotNil(t, events[1].End)
	assert.True(t, events[1].Start.Before(*events[1].End))
}

func TestRoundTripFields(t *testing.T) {
	// every raw field value survives into the parsed record unchanged
	messages := ParseMessages("Row: 0 address=+591777 date=1700000000100 type=1 body=Hola mundo\n")
	require.Len(t, messages, 1)
	assert.Equal(t, "+591777", messages[0].Number)
	assert.Equal(t, "1", messages[0].TypeCode)
	assert.Equal(t, "Hola mundo", messages[0].Body)
}
