package models

import (
	"fmt"
	"time"
)

// Layouts clients actually send for date filters: RFC3339 variants, the
// fractional-second forms without a zone, and a bare date.
var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexibleTime parses a client-supplied timestamp in any accepted layout.
func ParseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range flexibleTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", s)
}
