package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TriggerAtDueTime is the distinguished "at due time" trigger, produced
// for a reminder value of zero regardless of unit.
const TriggerAtDueTime = "TRIGGER:PT0S"

// unitVocab maps Russian unit tokens (with their grammatical number
// variants) to an iCal duration unit code.
var unitVocab = map[string]byte{
	"минуту": 'M',
	"минута": 'M',
	"минуты": 'M',
	"минут":  'M',
	"час":    'H',
	"часа":   'H',
	"часов":  'H',
	"день":   'D',
	"дня":    'D',
	"дней":   'D',
}

var (
	minuteForms = [3]string{"минуту", "минуты", "минут"}
	hourForms   = [3]string{"час", "часа", "часов"}
	dayForms    = [3]string{"день", "дня", "дней"}
)

var triggerRe = regexp.MustCompile(`^TRIGGER:(-?)P(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?|(\d+)D)$`)

// CompileReminder converts reminder slots into an iCal TRIGGER string.
//
// Both value and unit are required; a nil value or unrecognized unit
// yields the empty string (no trigger). Zero always means "at due time".
// Day-granularity offsets stay in day form: the unit is part of the
// trigger's identity, never collapsed into minutes.
func CompileReminder(value *int, unit string) string {
	if value == nil || unit == "" {
		return ""
	}

	if *value == 0 {
		return TriggerAtDueTime
	}

	code, ok := unitVocab[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return ""
	}

	if code == 'D' {
		return fmt.Sprintf("TRIGGER:-P%dD", *value)
	}
	return fmt.Sprintf("TRIGGER:-PT%d%c", *value, code)
}

// FormatReminder renders a TRIGGER string as a human-readable Russian
// phrase with correct numeral agreement. Unknown trigger shapes fall back
// to a generic word; an empty trigger formats to the empty string.
func FormatReminder(trigger string) string {
	if trigger == "" {
		return ""
	}
	if trigger == TriggerAtDueTime {
		return "в момент задачи"
	}

	m := triggerRe.FindStringSubmatch(trigger)
	if m == nil {
		return "напоминание"
	}

	hours, minutes, days := m[2], m[3], m[5]
	switch {
	case days != "":
		return "за " + pluralizeRu(atoi(days), dayForms)
	case hours != "":
		return "за " + pluralizeRu(atoi(hours), hourForms)
	case minutes != "":
		return "за " + pluralizeRu(atoi(minutes), minuteForms)
	}
	return "напоминание"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// pluralizeRu applies Russian numeral agreement: forms are for magnitudes
// 1, 2-4 and 5+ ("1 минуту", "2 минуты", "5 минут").
func pluralizeRu(n int, forms [3]string) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs%10 == 1 && abs%100 != 11:
		return fmt.Sprintf("%d %s", n, forms[0])
	case abs%10 >= 2 && abs%10 <= 4 && (abs%100 < 12 || abs%100 > 14):
		return fmt.Sprintf("%d %s", n, forms[1])
	default:
		return fmt.Sprintf("%d %s", n, forms[2])
	}
}
