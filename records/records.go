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

// Package records parses the raw content provider dumps into ordered,
// structured records. Parsing is pure: the same text always yields the same
// records and the source artifact is never touched. Malformed lines degrade
// to partial or empty records instead of failing the parse.
//
// The structs tags carry the column names of the legible export tables; they
// keep the vocabulary of the original case files.
package records

import (
	"sort"
	"strings"
	"time"
)

// Message is a single entry of the device message store.
type Message struct {
	Number          string     `structs:"numero"`
	Date            *time.Time `structs:"fecha"`
	TypeCode        string     `structs:"tipo_codigo"`
	TypeDescription string     `structs:"tipo_descripcion"`
	Body            string     `structs:"mensaje"`
}

// Contact is a single entry of the device contact list.
type Contact struct {
	Name            string `structs:"nombre"`
	Number          string `structs:"numero"`
	TypeCode        string `structs:"tipo_codigo"`
	TypeDescription string `structs:"tipo_descripcion"`
}

// Call is a single entry of the device call log.
type Call struct {
	Number          string     `structs:"numero"`
	CachedName      string     `structs:"nombre_cache"`
	Date            *time.Time `structs:"fecha"`
	TypeCode        string     `structs:"tipo_codigo"`
	TypeDescription string     `structs:"tipo_descripcion"`
	DurationSeconds int64      `structs:"duracion_seg"`
}

// CalendarEvent is a single entry of the device calendar.
type CalendarEvent struct {
	Title    string     `structs:"titulo"`
	Calendar string     `structs:"calendario"`
	Location string     `structs:"ubicacion"`
	Start    *time.Time `structs:"inicio"`
	End      *time.Time `structs:"fin"`
	Timezone string     `structs:"timezone"`
}

var messageTypes = map[string]string{
	"1": "RECIBIDO (INBOX)",
	"2": "ENVIADO (SENT)",
	"3": "BORRADOR (DRAFT)",
	"4": "OUTBOX",
	"5": "ENVIANDO",
	"6": "ENVIADO_FALLIDO",
}

var contactTypes = map[string]string{
	"1": "DOMICILIO",
	"2": "MOVIL",
	"3": "TRABAJO",
	"4": "TRABAJO_FAX",
	"5": "DOMICILIO_FAX",
	"7": "OTRO",
}

var callTypes = map[string]string{
	"1": "ENTRANTE",
	"2": "SALIENTE",
	"3": "PERDIDA",
	"4": "BUZON_VOZ",
	"5": "RECHAZADA",
	"6": "BLOQUEADA",
	"7": "RESPONDIDA_EXTERNAMENTE",
}

// ParseMessages parses a message store dump. Messages are ordered by
// timestamp ascending, messages without a timestamp last.
func ParseMessages(text string) []Message {
	var messages []Message
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, rowPrefix) {
			continue
		}
		fields := parseRowFields(line)
		messages = append(messages, Message{
			Number:          fields["address"],
			Date:            epochToTime(fields["date"]),
			TypeCode:        fields["type"],
			TypeDescription: describeType(messageTypes, fields["type"]),
			Body:            fields["body"],
		})
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return timeLess(messages[i].Date, messages[j].Date)
	})
	return messages
}

// ParseContacts parses a contact list dump. Contacts are ordered by name,
// then number. The number is taken from the first populated candidate
// column.
func ParseContacts(text string) []Contact {
	var contacts []Contact
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, rowPrefix) {
			continue
		}
		fields := parseRowFields(line)
		number := fields["data1"]
		if number == "" {
			number = fields["number"]
		}
		if number == "" {
			number = fields["data4"]
		}
		contacts = append(contacts, Contact{
			Name:            fields["display_name"],
			Number:          number,
			TypeCode:        fields["type"],
			TypeDescription: describeType(contactTypes, fields["type"]),
		})
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].Name != contacts[j].Name {
			return contacts[i].Name < contacts[j].Name
		}
		return contacts[i].Number < contacts[j].Number
	})
	return contacts
}

// ParseCalls parses a call log dump. Calls are ordered by timestamp
// ascending, calls without a timestamp last.
func ParseCalls(text string) []Call {
	var calls []Call
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, rowPrefix) {
			continue
		}
		fields := parseRowFields(line)
		calls = append(calls, Call{
			Number:          fields["number"],
			CachedName:      fields["name"],
			Date:            epochToTime(fields["date"]),
			TypeCode:        fields["type"],
			TypeDescription: describeType(callTypes, fields["type"]),
			DurationSeconds: durationSeconds(fields["duration"]),
		})
	}
	sort.SliceStable(calls, func(i, j int) bool {
		return timeLess(calls[i].Date, calls[j].Date)
	})
	return calls
}

// ParseCalendar parses a calendar event dump. Events are ordered by start
// timestamp ascending, events without one last.
func ParseCalendar(text string) []CalendarEvent {
	var events []CalendarEvent
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, rowPrefix) {
			continue
		}
		fields := parseRowFields(line)
		events = append(events, CalendarEvent{
			Title:    fields["title"],
			Calendar: fields["calendar_displayName"],
			Location: fields["eventLocation"],
			Start:    epochToTime(fields["dtstart"]),
			End:      epochToTime(fields["dtend"]),
			Timezone: fields["eventTimezone"],
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return timeLess(events[i].Start, events[j].Start)
	})
	return events
}
