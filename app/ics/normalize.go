package ics

import (
	"strings"
	"time"
)

// Accepted date/time layouts, tried in order. First match wins.
var dateTimeLayouts = []string{
	"20060102T150405",     // basic date-time with seconds
	"20060102T1504",       // basic date-time without seconds
	"2006-01-02T15:04:05", // extended date-time
	"20060102",            // date only
}

const isoLayout = "2006-01-02T15:04:05"

// NormalizeDateTime converts a raw iCalendar date/time value into an
// ISO-8601 string without an offset. A TZID= prefix is cut at its colon and
// one trailing Z is stripped; neither is reattached, so UTC/zone information
// is deliberately lost in the output. Downstream consumers rely on this
// exact shape, so changing it is a behavior change, not a fix. Values that
// match no layout are returned exactly as given.
func NormalizeDateTime(raw string) string {
	out, _ := normalizeDateTime(raw)
	return out
}

func normalizeDateTime(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}

	v := raw
	if strings.HasPrefix(strings.ToUpper(v), "TZID=") {
		// e.g. TZID=Asia/Kolkata:20250917T153000 — keep the value part only.
		if _, rest, found := strings.Cut(v, ":"); found {
			v = rest
		}
	}
	v = strings.TrimSuffix(v, "Z")

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(isoLayout), true
		}
	}

	return raw, false
}
