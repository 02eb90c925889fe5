package nlp

import "testing"

func TestCompileRecurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		freqToken string
		interval  int
		monthDay  int
		want      string
	}{
		{
			name:      "daily",
			freqToken: "день",
			want:      "RRULE:FREQ=DAILY",
		},
		{
			name:      "weekly",
			freqToken: "неделю",
			want:      "RRULE:FREQ=WEEKLY",
		},
		{
			name:      "monthly",
			freqToken: "месяц",
			want:      "RRULE:FREQ=MONTHLY",
		},
		{
			name:      "yearly",
			freqToken: "год",
			want:      "RRULE:FREQ=YEARLY",
		},
		{
			name:      "weekdays",
			freqToken: "будням",
			want:      "RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		},
		{
			name:      "weekend",
			freqToken: "выходным",
			want:      "RRULE:FREQ=WEEKLY;BYDAY=SA,SU",
		},
		{
			name:      "every 3 days",
			freqToken: "день",
			interval:  3,
			want:      "RRULE:FREQ=DAILY;INTERVAL=3",
		},
		{
			name:      "interval 1 omitted",
			freqToken: "день",
			interval:  1,
			want:      "RRULE:FREQ=DAILY",
		},
		{
			name:      "interval ignored with byday",
			freqToken: "будням",
			interval:  2,
			want:      "RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		},
		{
			name:     "monthday wins over freq",
			monthDay: 15,
			want:     "RRULE:FREQ=MONTHLY;BYMONTHDAY=15",
		},
		{
			name:      "monthday wins even with freq token",
			freqToken: "день",
			monthDay:  1,
			want:      "RRULE:FREQ=MONTHLY;BYMONTHDAY=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := CompileRecurrence(tt.freqToken, tt.interval, tt.monthDay)
			if rule == nil {
				t.Fatal("Expected a rule, got nil")
			}
			if got := rule.RRule(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCompileRecurrenceUnknownToken(t *testing.T) {
	t.Parallel()

	if rule := CompileRecurrence("квартал", 0, 0); rule != nil {
		t.Errorf("Expected nil rule for unknown token, got %q", rule.RRule())
	}
	if rule := CompileRecurrence("", 0, 0); rule != nil {
		t.Errorf("Expected nil rule for empty token, got %q", rule.RRule())
	}
}

func TestRRuleNilReceiver(t *testing.T) {
	t.Parallel()

	var rule *RecurrenceRule
	if got := rule.RRule(); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestParseRRuleRoundTrip(t *testing.T) {
	t.Parallel()

	rules := []string{
		"RRULE:FREQ=DAILY",
		"RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		"RRULE:FREQ=WEEKLY;BYDAY=SA,SU",
		"RRULE:FREQ=DAILY;INTERVAL=4",
		"RRULE:FREQ=MONTHLY;BYMONTHDAY=15",
	}

	for _, raw := range rules {
		parsed := ParseRRule(raw)
		if parsed == nil {
			t.Fatalf("ParseRRule(%q) returned nil", raw)
		}
		if got := parsed.RRule(); got != raw {
			t.Errorf("Round trip of %q produced %q", raw, got)
		}
	}
}

func TestParseRRuleInvalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"RRULE:",
		"RRULE:BYDAY=MO",
		"garbage",
	}

	for _, raw := range invalid {
		if rule := ParseRRule(raw); rule != nil {
			t.Errorf("Expected nil for %q, got %+v", raw, rule)
		}
	}
}

func TestFormatRecurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rrule string
		want  string
	}{
		{"RRULE:FREQ=DAILY", "каждый день"},
		{"RRULE:FREQ=WEEKLY", "каждую неделю"},
		{"RRULE:FREQ=MONTHLY", "каждый месяц"},
		{"RRULE:FREQ=YEARLY", "каждый год"},
		{"RRULE:FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR", "по будням"},
		{"RRULE:FREQ=WEEKLY;BYDAY=SA,SU", "по выходным"},
		{"RRULE:FREQ=WEEKLY;BYDAY=MO", "каждый понедельник"},
		{"RRULE:FREQ=WEEKLY;BYDAY=SU", "каждое воскресенье"},
		{"RRULE:FREQ=WEEKLY;BYDAY=FR", "каждую пятницу"},
		{"RRULE:FREQ=DAILY;INTERVAL=3", "каждые 3 дня"},
		{"RRULE:FREQ=MONTHLY;BYMONTHDAY=15", "каждое 15 число"},
		{"RRULE:FREQ=HOURLY", "повторяется"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatRecurrence(tt.rrule); got != tt.want {
			t.Errorf("FormatRecurrence(%q): expected %q, got %q", tt.rrule, tt.want, got)
		}
	}
}

func TestCompileRecurrenceRoundTripAllTokens(t *testing.T) {
	t.Parallel()

	for token := range freqVocab {
		rule := CompileRecurrence(token, 0, 0)
		if rule == nil {
			t.Errorf("Token %q: expected a rule, got nil", token)
			continue
		}

		rrule := rule.RRule()
		parsed := ParseRRule(rrule)
		if parsed == nil {
			t.Errorf("Token %q: expected %q to parse back, got nil", token, rrule)
			continue
		}
		if *parsed != *rule {
			t.Errorf("Token %q: expected round-trip %+v, got %+v", token, *rule, *parsed)
		}

		// every compilable token also formats to a specific phrase
		if phrase := FormatRecurrence(rrule); phrase == "" || phrase == "повторяется" {
			t.Errorf("Token %q: expected a specific phrase for %q, got %q", token, rrule, phrase)
		}
	}
}

func TestCompileRecurrenceRoundTripWithInterval(t *testing.T) {
	t.Parallel()

	for token, entry := range freqVocab {
		rule := CompileRecurrence(token, 4, 0)
		if rule == nil {
			t.Errorf("Token %q: expected a rule, got nil", token)
			continue
		}

		wantInterval := 0
		if entry.byday == "" {
			wantInterval = 4
		}
		if rule.Interval != wantInterval {
			t.Errorf("Token %q: expected interval %d, got %d", token, wantInterval, rule.Interval)
		}

		parsed := ParseRRule(rule.RRule())
		if parsed == nil || *parsed != *rule {
			t.Errorf("Token %q: expected round-trip %+v, got %+v", token, rule, parsed)
		}
	}
}
