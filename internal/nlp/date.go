package nlp

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyDateSlot is returned when a date slot carries no usable fields
var ErrEmptyDateSlot = errors.New("empty datetime slot")

// DateSlot is the structured datetime value the NLU layer extracts from
// an utterance. Each field is optional; a set relative flag makes the
// companion value an offset from "now" instead of an absolute value.
type DateSlot struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int

	YearRelative   bool
	MonthRelative  bool
	DayRelative    bool
	HourRelative   bool
	MinuteRelative bool
}

// Empty reports whether the slot carries no fields at all
func (s DateSlot) Empty() bool {
	return s.Year == nil && s.Month == nil && s.Day == nil && s.Hour == nil && s.Minute == nil
}

// HasTime reports whether the slot pins an hour or minute
func (s DateSlot) HasTime() bool {
	return s.Hour != nil || s.Minute != nil
}

// DateSlotFromMap builds a DateSlot from a raw slot-bag value. JSON
// numbers arrive as float64; anything malformed is skipped, never raised.
func DateSlotFromMap(raw map[string]any) DateSlot {
	var s DateSlot
	fields := map[string]**int{
		"year":   &s.Year,
		"month":  &s.Month,
		"day":    &s.Day,
		"hour":   &s.Hour,
		"minute": &s.Minute,
	}
	rels := map[string]*bool{
		"year_is_relative":   &s.YearRelative,
		"month_is_relative":  &s.MonthRelative,
		"day_is_relative":    &s.DayRelative,
		"hour_is_relative":   &s.HourRelative,
		"minute_is_relative": &s.MinuteRelative,
	}

	for key, dst := range fields {
		if v, ok := toInt(raw[key]); ok {
			n := v
			*dst = &n
		}
	}
	for key, dst := range rels {
		if b, ok := raw[key].(bool); ok {
			*dst = b
		}
	}
	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// ResolveDate turns a date slot into a concrete time, applying absolute
// and relative fields on top of now. hasTime reports whether the slot
// carried a time of day (callers keep date-only values date-only).
func ResolveDate(s DateSlot, now time.Time) (t time.Time, hasTime bool, err error) {
	if s.Empty() {
		return time.Time{}, false, ErrEmptyDateSlot
	}

	base := now

	if s.Year != nil {
		if s.YearRelative {
			base = addYears(base, *s.Year)
		} else {
			base = setDate(base, *s.Year, int(base.Month()), base.Day())
		}
	}
	if s.Month != nil {
		if s.MonthRelative {
			base = addMonths(base, *s.Month)
		} else {
			base = setDate(base, base.Year(), *s.Month, base.Day())
		}
	}
	if s.Day != nil {
		if s.DayRelative {
			base = base.AddDate(0, 0, *s.Day)
		} else {
			base = setDate(base, base.Year(), int(base.Month()), *s.Day)
		}
	}
	if s.Hour != nil {
		if s.HourRelative {
			base = base.Add(time.Duration(*s.Hour) * time.Hour)
		} else {
			base = time.Date(base.Year(), base.Month(), base.Day(), *s.Hour, base.Minute(), 0, 0, base.Location())
		}
	}
	if s.Minute != nil {
		if s.MinuteRelative {
			base = base.Add(time.Duration(*s.Minute) * time.Minute)
		} else {
			base = time.Date(base.Year(), base.Month(), base.Day(), base.Hour(), *s.Minute, 0, 0, base.Location())
		}
	}

	return base, s.HasTime(), nil
}

func setDate(t time.Time, year, month, day int) time.Time {
	max := daysIn(year, time.Month(month))
	if day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// addMonths adds months, clamping the day to the last valid day of the
// target month (Jan 31 + 1 month is Feb 28/29, not Mar 2).
func addMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) - 1 + months
	year := t.Year() + month/12
	month = month%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	return setDate(t, year, month, t.Day())
}

// addYears adds years, clamping Feb 29 to Feb 28 on non-leap years
func addYears(t time.Time, years int) time.Time {
	return setDate(t, t.Year()+years, int(t.Month()), t.Day())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate renders a date for display, preferring the relative words a
// voice answer sounds natural with.
func FormatDate(t, now time.Time) string {
	sameDay := func(a, b time.Time) bool {
		ay, am, ad := a.Date()
		by, bm, bd := b.Date()
		return ay == by && am == bm && ad == bd
	}

	switch {
	case sameDay(t, now):
		return "сегодня"
	case sameDay(t, now.AddDate(0, 0, 1)):
		return "завтра"
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "вчера"
	}
	return fmt.Sprintf("%02d.%02d.%d", t.Day(), int(t.Month()), t.Year())
}
