package episode

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of Episode.Date
const DateLayout = "2006-01-02"

// ParseDate parses calendar date in DateLayout
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad episode date %q: %w", date, err)
	}
	return t, nil
}

// LongDate formats date like "July 27, 2025". Unparsable input is returned as is.
func LongDate(date string) string {
	return formatDate(date, "January 2, 2006")
}

// ShortDate formats date like "Jul 27, 2025". Unparsable input is returned as is.
func ShortDate(date string) string {
	return formatDate(date, "Jan 2, 2006")
}

func formatDate(date, layout string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

// DeriveTitle makes default episode title for date, empty date gives empty title
func DeriveTitle(showName, date string) string {
	if date == "" {
		return ""
	}
	return fmt.Sprintf("%s - Episode %s", showName, LongDate(date))
}

// Today returns current calendar date in DateLayout
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
