package ics

import (
	"fmt"
	"strings"
)

const (
	beginMarker = "BEGIN:VEVENT"
	endMarker   = "END:VEVENT"
)

// Parser extracts Events from iCalendar text. The zero mode is lenient:
// property lines without a colon are dropped, a block missing its END:VEVENT
// runs to the end of the text, and unrecognized date values pass through
// untouched. Strict mode turns each of those deviations into an error so a
// caller can surface malformed files instead of silently thinning them.
type Parser struct {
	strict bool
}

func NewParser() *Parser {
	return &Parser{}
}

func NewStrictParser() *Parser {
	return &Parser{strict: true}
}

// Run parses the full text of one file and returns its events in source
// order. Text outside BEGIN:VEVENT/END:VEVENT blocks is ignored, as are
// non-VEVENT components. In lenient mode the returned error is always nil.
func (p *Parser) Run(text string) ([]Event, error) {
	text = Unfold(text)

	// BEGIN markers are matched case-insensitively; the END marker is the
	// literal uppercase form only.
	upper := strings.ToUpper(text)

	events := make([]Event, 0)
	pos := 0
	for {
		rel := strings.Index(upper[pos:], beginMarker)
		if rel < 0 {
			break
		}
		start := pos + rel + len(beginMarker)

		// The block ends at END:VEVENT, or at the next BEGIN:VEVENT when the
		// terminator is missing, or at the end of the text.
		segEnd := len(text)
		if next := strings.Index(upper[start:], beginMarker); next >= 0 {
			segEnd = start + next
		}
		block := text[start:segEnd]
		if cut := strings.Index(block, endMarker); cut >= 0 {
			block = block[:cut]
		} else if p.strict {
			return nil, fmt.Errorf("unterminated VEVENT block at offset %d", start-len(beginMarker))
		}

		props, err := p.parseProperties(block)
		if err != nil {
			return nil, err
		}

		ev, err := p.buildEvent(props)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)

		pos = segEnd
	}

	return events, nil
}

// parseProperties tokenizes one unfolded VEVENT body into a property map.
// Only the first colon separates name from value, so values containing
// colons (URLs, mailto references) stay whole. Parameters attached to the
// name ("DTSTART;TZID=...") are discarded.
func (p *Parser) parseProperties(block string) (Properties, error) {
	props := make(Properties)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		left, value, found := strings.Cut(line, ":")
		if !found {
			if p.strict {
				return nil, fmt.Errorf("property line without colon: %q", line)
			}
			continue
		}

		name, _, _ := strings.Cut(left, ";")
		name = strings.ToUpper(name)
		props[name] = append(props[name], strings.TrimSpace(value))
	}

	return props, nil
}

// buildEvent projects the fixed field set out of a property map. Repeated
// properties contribute their first value only, except ATTENDEE, which keeps
// every occurrence joined by ";".
func (p *Parser) buildEvent(props Properties) (Event, error) {
	ev := Event{
		UID:         props.First("UID"),
		Summary:     props.First("SUMMARY"),
		Description: props.First("DESCRIPTION"),
		Location:    props.First("LOCATION"),
		DTStart:     props.First("DTSTART"),
		DTEnd:       props.First("DTEND"),
		RRule:       props.First("RRULE"),
		Organizer:   props.First("ORGANIZER"),
		Attendee:    strings.Join(props["ATTENDEE"], ";"),
	}

	var startOK, endOK bool
	ev.DTStartISO, startOK = normalizeDateTime(ev.DTStart)
	ev.DTEndISO, endOK = normalizeDateTime(ev.DTEnd)

	if p.strict {
		if !startOK {
			return Event{}, fmt.Errorf("unrecognized DTSTART value: %q", ev.DTStart)
		}
		if !endOK {
			return Event{}, fmt.Errorf("unrecognized DTEND value: %q", ev.DTEnd)
		}
	}

	return ev, nil
}
