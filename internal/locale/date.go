package locale

import (
	"fmt"
	"time"
)

// DefaultLongDateLayout renders dates as "March 3, 2021".
const DefaultLongDateLayout = "January 2, 2006"

// DateFormatter turns a Unix millisecond timestamp into a long-form calendar date.
type DateFormatter interface {
	FormatLongDate(unixMillis int64) string
}

// LayoutFormatter formats dates with a time layout in a fixed location.
type LayoutFormatter struct {
	layout   string
	location *time.Location
}

// NewDateFormatter builds a LayoutFormatter. An empty layout uses
// DefaultLongDateLayout; an empty timezone uses the local zone.
func NewDateFormatter(layout, timezone string) (*LayoutFormatter, error) {
	if layout == "" {
		layout = DefaultLongDateLayout
	}
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}
	return &LayoutFormatter{layout: layout, location: loc}, nil
}

// FormatLongDate implements DateFormatter.
func (f *LayoutFormatter) FormatLongDate(unixMillis int64) string {
	return time.UnixMilli(unixMillis).In(f.location).Format(f.layout)
}
