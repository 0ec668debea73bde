package ics

import (
	"strings"
	"testing"
)

func TestParseProperties(t *testing.T) {
	parser := NewParser()

	props, err := parser.parseProperties("DTSTART;TZID=Asia/Kolkata:20250917T153000\nSUMMARY:Meet\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := props.First("DTSTART"); got != "20250917T153000" {
		t.Errorf("Expected DTSTART '20250917T153000', got: %s", got)
	}
	if got := props.First("SUMMARY"); got != "Meet" {
		t.Errorf("Expected SUMMARY 'Meet', got: %s", got)
	}
	if len(props) != 2 {
		t.Errorf("Expected 2 properties, got: %d", len(props))
	}
}

func TestParsePropertiesValueWithColon(t *testing.T) {
	parser := NewParser()

	props, err := parser.parseProperties("URL:https://example.com/cal?id=1\nORGANIZER;CN=Ana:mailto:ana@example.com\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := props.First("URL"); got != "https://example.com/cal?id=1" {
		t.Errorf("Expected URL preserved past first colon, got: %s", got)
	}
	if got := props.First("ORGANIZER"); got != "mailto:ana@example.com" {
		t.Errorf("Expected ORGANIZER 'mailto:ana@example.com', got: %s", got)
	}
}

func TestParsePropertiesSkipsMalformedLines(t *testing.T) {
	parser := NewParser()

	props, err := parser.parseProperties("no colon here\n\n  \nSUMMARY:Kept\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(props) != 1 {
		t.Errorf("Expected 1 property, got: %d", len(props))
	}
	if got := props.First("SUMMARY"); got != "Kept" {
		t.Errorf("Expected SUMMARY 'Kept', got: %s", got)
	}
}

func TestParsePropertiesLowercaseNames(t *testing.T) {
	parser := NewParser()

	props, err := parser.parseProperties("summary:Mixed Case\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := props.First("SUMMARY"); got != "Mixed Case" {
		t.Errorf("Expected uppercased key lookup to work, got: %s", got)
	}
}

func TestRunTwoEventsInSourceOrder(t *testing.T) {
	icsData := `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//EN
BEGIN:VEVENT
UID:first@example.com
SUMMARY:First event
DTSTART:20250917T153000Z
DTEND:20250917T163000Z
LOCATION:Room 1
END:VEVENT
BEGIN:VEVENT
UID:second@example.com
SUMMARY:Second event
DTSTART:20250918
END:VEVENT
END:VCALENDAR
`

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got: %d", len(events))
	}

	first := events[0]
	if first.UID != "first@example.com" {
		t.Errorf("Expected UID 'first@example.com', got: %s", first.UID)
	}
	if first.Summary != "First event" {
		t.Errorf("Expected summary 'First event', got: %s", first.Summary)
	}
	if first.DTStartISO != "2025-09-17T15:30:00" {
		t.Errorf("Expected normalized start '2025-09-17T15:30:00', got: %s", first.DTStartISO)
	}
	if first.DTEndISO != "2025-09-17T16:30:00" {
		t.Errorf("Expected normalized end '2025-09-17T16:30:00', got: %s", first.DTEndISO)
	}

	second := events[1]
	if second.UID != "second@example.com" {
		t.Errorf("Expected UID 'second@example.com', got: %s", second.UID)
	}
	if second.DTStartISO != "2025-09-18T00:00:00" {
		t.Errorf("Expected date-only start at midnight, got: %s", second.DTStartISO)
	}
	if second.DTEnd != "" || second.DTEndISO != "" {
		t.Errorf("Expected absent DTEND to stay empty, got: %q / %q", second.DTEnd, second.DTEndISO)
	}
}

func TestRunAttendeesJoined(t *testing.T) {
	icsData := `BEGIN:VEVENT
UID:a@example.com
ATTENDEE;CN=One:mailto:one@example.com
ATTENDEE;CN=Two:mailto:two@example.com
SUMMARY:Standup
SUMMARY:Ignored second summary
END:VEVENT
`

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got: %d", len(events))
	}

	want := "mailto:one@example.com;mailto:two@example.com"
	if events[0].Attendee != want {
		t.Errorf("Expected attendees %q, got: %q", want, events[0].Attendee)
	}

	// Repeated properties other than ATTENDEE keep the first value only
	if events[0].Summary != "Standup" {
		t.Errorf("Expected first SUMMARY value, got: %s", events[0].Summary)
	}
}

func TestRunUnterminatedBlock(t *testing.T) {
	icsData := "BEGIN:VEVENT\nUID:open@example.com\nSUMMARY:Runs to end"

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got: %d", len(events))
	}
	if events[0].Summary != "Runs to end" {
		t.Errorf("Expected summary 'Runs to end', got: %s", events[0].Summary)
	}
}

func TestRunBeginMarkerCaseInsensitive(t *testing.T) {
	icsData := "begin:vevent\nUID:lower@example.com\nEND:VEVENT\n"

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got: %d", len(events))
	}
	if events[0].UID != "lower@example.com" {
		t.Errorf("Expected UID 'lower@example.com', got: %s", events[0].UID)
	}
}

func TestRunIgnoresNonVEventComponents(t *testing.T) {
	icsData := `BEGIN:VCALENDAR
BEGIN:VTIMEZONE
TZID:Europe/Berlin
END:VTIMEZONE
BEGIN:VTODO
SUMMARY:Not an event
END:VTODO
END:VCALENDAR
`

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected 0 events, got: %d", len(events))
	}
}

func TestRunFoldedPropertySpansLines(t *testing.T) {
	icsData := "BEGIN:VEVENT\r\nUID:folded@example.com\r\nDESCRIPTION:part one \r\n part two\r\nEND:VEVENT\r\n"

	parser := NewParser()
	events, err := parser.Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got: %d", len(events))
	}

	if events[0].Description != "part one part two" {
		t.Errorf("Expected folded description joined, got: %q", events[0].Description)
	}
}

func TestStrictRejectsMalformedLine(t *testing.T) {
	icsData := "BEGIN:VEVENT\nno colon here\nEND:VEVENT\n"

	if _, err := NewStrictParser().Run(icsData); err == nil {
		t.Error("Expected error for colon-less line in strict mode")
	}

	// The same input parses in lenient mode
	events, err := NewParser().Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error in lenient mode, got: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 event in lenient mode, got: %d", len(events))
	}
}

func TestStrictRejectsUnterminatedBlock(t *testing.T) {
	icsData := "BEGIN:VEVENT\nUID:open@example.com\n"

	_, err := NewStrictParser().Run(icsData)
	if err == nil {
		t.Fatal("Expected error for unterminated block in strict mode")
	}
	if !strings.Contains(err.Error(), "unterminated") {
		t.Errorf("Expected unterminated block error, got: %v", err)
	}
}

func TestStrictRejectsUnparseableDate(t *testing.T) {
	icsData := "BEGIN:VEVENT\nDTSTART:not-a-date\nEND:VEVENT\n"

	if _, err := NewStrictParser().Run(icsData); err == nil {
		t.Error("Expected error for unparseable DTSTART in strict mode")
	}

	events, err := NewParser().Run(icsData)
	if err != nil {
		t.Fatalf("Expected no error in lenient mode, got: %v", err)
	}
	if events[0].DTStartISO != "not-a-date" {
		t.Errorf("Expected raw pass-through in lenient mode, got: %s", events[0].DTStartISO)
	}
}
