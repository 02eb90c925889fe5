package nlp

import (
	"fmt"
	"strconv"
	"strings"
)

// RecurrenceRule is a compiled recurrence descriptor. At most one of
// ByDay / ByMonthDay is set; a plain frequency has neither.
type RecurrenceRule struct {
	Freq       string
	Interval   int
	ByDay      string
	ByMonthDay int
}

type freqEntry struct {
	freq  string
	byday string
}

const (
	bydayWeekdays = "MO,TU,WE,TH,FR"
	bydayWeekend  = "SA,SU"
)

// freqVocab maps normalized frequency tokens to an RRULE frequency and
// optional BYDAY set. Unmapped tokens compile to no rule at all.
var freqVocab = map[string]freqEntry{
	// basic frequencies
	"день":        {"DAILY", ""},
	"дня":         {"DAILY", ""},
	"дней":        {"DAILY", ""},
	"ежедневно":   {"DAILY", ""},
	"неделю":      {"WEEKLY", ""},
	"неделя":      {"WEEKLY", ""},
	"недели":      {"WEEKLY", ""},
	"недель":      {"WEEKLY", ""},
	"еженедельно": {"WEEKLY", ""},
	"месяц":       {"MONTHLY", ""},
	"месяца":      {"MONTHLY", ""},
	"месяцев":     {"MONTHLY", ""},
	"ежемесячно":  {"MONTHLY", ""},
	"год":         {"YEARLY", ""},
	"года":        {"YEARLY", ""},
	"лет":         {"YEARLY", ""},
	"ежегодно":    {"YEARLY", ""},
	// days of week
	"понедельник": {"WEEKLY", "MO"},
	"вторник":     {"WEEKLY", "TU"},
	"среду":       {"WEEKLY", "WE"},
	"среда":       {"WEEKLY", "WE"},
	"четверг":     {"WEEKLY", "TH"},
	"пятницу":     {"WEEKLY", "FR"},
	"пятница":     {"WEEKLY", "FR"},
	"субботу":     {"WEEKLY", "SA"},
	"суббота":     {"WEEKLY", "SA"},
	"воскресенье": {"WEEKLY", "SU"},
	// groups
	"будни":    {"WEEKLY", bydayWeekdays},
	"будний":   {"WEEKLY", bydayWeekdays},
	"будням":   {"WEEKLY", bydayWeekdays},
	"выходные": {"WEEKLY", bydayWeekend},
	"выходным": {"WEEKLY", bydayWeekend},
}

var bydayToRu = map[string]string{
	"MO": "понедельник",
	"TU": "вторник",
	"WE": "среду",
	"TH": "четверг",
	"FR": "пятницу",
	"SA": "субботу",
	"SU": "воскресенье",
}

// freqToRu maps an RRULE frequency to ("каждый X" singular, plural base
// used after "каждые N").
var freqToRu = map[string][2]string{
	"DAILY":   {"каждый день", "дня"},
	"WEEKLY":  {"каждую неделю", "недели"},
	"MONTHLY": {"каждый месяц", "месяца"},
	"YEARLY":  {"каждый год", "года"},
}

// CompileRecurrence converts recurrence slots into a rule.
//
// A month-day takes priority over the frequency token ("каждое 15 число"
// always means a monthly rule anchored to that day). The interval is only
// attached to plain frequencies; weekday tokens already encode a weekly
// cadence per specific day, so a simultaneous interval is ignored rather
// than rejected. Zero means the slot is absent.
//
// Returns nil when no valid rule can be built. The compiler never emits
// partial or best-guess rules.
func CompileRecurrence(freqToken string, interval, monthDay int) *RecurrenceRule {
	if monthDay > 0 {
		return &RecurrenceRule{Freq: "MONTHLY", ByMonthDay: monthDay}
	}

	if freqToken == "" {
		return nil
	}

	entry, ok := freqVocab[strings.ToLower(strings.TrimSpace(freqToken))]
	if !ok {
		return nil
	}

	rule := &RecurrenceRule{Freq: entry.freq, ByDay: entry.byday}
	if interval > 1 && entry.byday == "" {
		rule.Interval = interval
	}
	return rule
}

// RRule renders the rule as an RFC 5545 RRULE string, the format the task
// store expects in the repeat flag field.
func (r *RecurrenceRule) RRule() string {
	if r == nil {
		return ""
	}
	if r.ByMonthDay > 0 {
		return fmt.Sprintf("RRULE:FREQ=MONTHLY;BYMONTHDAY=%d", r.ByMonthDay)
	}

	parts := []string{"FREQ=" + r.Freq}
	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}
	if r.ByDay != "" {
		parts = append(parts, "BYDAY="+r.ByDay)
	}
	return "RRULE:" + strings.Join(parts, ";")
}

// ParseRRule parses an RRULE string back into a rule. Unknown parameters
// are skipped; a string without FREQ or BYMONTHDAY yields nil.
func ParseRRule(rrule string) *RecurrenceRule {
	if rrule == "" {
		return nil
	}

	body := strings.TrimPrefix(rrule, "RRULE:")
	rule := &RecurrenceRule{}
	for _, part := range strings.Split(body, ";") {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch key {
		case "FREQ":
			rule.Freq = val
		case "INTERVAL":
			if n, err := strconv.Atoi(val); err == nil {
				rule.Interval = n
			}
		case "BYDAY":
			rule.ByDay = val
		case "BYMONTHDAY":
			if n, err := strconv.Atoi(val); err == nil {
				rule.ByMonthDay = n
			}
		}
	}

	if rule.Freq == "" && rule.ByMonthDay == 0 {
		return nil
	}
	return rule
}

// FormatRecurrence renders an RRULE string as a human-readable Russian
// phrase. Syntactically valid but unmapped rule shapes fall back to a
// generic phrase; an empty rule formats to the empty string.
func FormatRecurrence(rrule string) string {
	rule := ParseRRule(rrule)
	if rule == nil {
		return ""
	}

	if rule.ByMonthDay > 0 {
		return fmt.Sprintf("каждое %d число", rule.ByMonthDay)
	}

	if rule.ByDay != "" {
		switch rule.ByDay {
		case bydayWeekdays:
			return "по будням"
		case bydayWeekend:
			return "по выходным"
		}
		if name, ok := bydayToRu[rule.ByDay]; ok {
			// gender of the weekday noun picks the determiner
			switch rule.ByDay {
			case "MO", "TU", "TH":
				return "каждый " + name
			case "SU":
				return "каждое " + name
			default:
				return "каждую " + name
			}
		}
	}

	if ru, ok := freqToRu[rule.Freq]; ok {
		if rule.Interval > 1 {
			return fmt.Sprintf("каждые %d %s", rule.Interval, ru[1])
		}
		return ru[0]
	}

	return "повторяется"
}
