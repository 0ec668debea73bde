package ics

// Event is one parsed VEVENT. All fields are plain strings; properties
// missing from the source block stay empty, never null. JSON tags keep the
// iCalendar property names so the structured export matches them one to one.
type Event struct {
	UID         string `json:"UID"`
	Summary     string `json:"SUMMARY"`
	Description string `json:"DESCRIPTION"`
	Location    string `json:"LOCATION"`
	DTStart     string `json:"DTSTART"`
	DTEnd       string `json:"DTEND"`
	RRule       string `json:"RRULE"`
	Organizer   string `json:"ORGANIZER"`
	Attendee    string `json:"ATTENDEE"` // multiple ATTENDEE lines joined by ";"

	// Derived from DTStart/DTEnd by the normalizer. The raw value passes
	// through unchanged when it matches none of the known layouts.
	DTStartISO string `json:"DTSTART_ISO"`
	DTEndISO   string `json:"DTEND_ISO"`
}

// Properties maps an uppercased, parameter-stripped property name to its
// values in order of appearance. A property that never occurs has no key.
type Properties map[string][]string

// First returns the first value recorded for name, or "" when absent.
func (p Properties) First(name string) string {
	if vs := p[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
