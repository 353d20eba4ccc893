package format

import (
	"strings"
	"time"
)

const InvalidDate = "Invalid Date"

const (
	layoutDayFirst   = "2 January 2006"
	layoutMonthFirst = "January 2, 2006"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate разбирает дату из поля формы. Время суток, если есть, сохраняется.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f *Formatter) FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate
	}
	return f.FormatTime(t)
}

func (f *Formatter) FormatTime(t time.Time) string {
	if f.usOrder {
		return t.Format(layoutMonthFirst)
	}
	return t.Format(layoutDayFirst)
}
