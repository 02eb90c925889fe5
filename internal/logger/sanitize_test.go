package logger

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeUtterance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain utterance unchanged",
			input: "добавь задачу купить молоко",
			want:  "добавь задачу купить молоко",
		},
		{
			name:  "control characters removed",
			input: "добавь\x00 задачу\x1b[31m",
			want:  "добавь задачу[31m",
		},
		{
			name:  "newline kept",
			input: "первая\nвторая",
			want:  "первая\nвторая",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SanitizeUtterance(tt.input)
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizeUtteranceTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("а", MaxUtteranceLength+100)
	got := SanitizeUtterance(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncation suffix, got tail %q", got[len(got)-10:])
	}
	if len(got) > MaxUtteranceLength+3 {
		t.Errorf("Expected at most %d bytes, got %d", MaxUtteranceLength+3, len(got))
	}
}

func TestSanitizeSessionID(t *testing.T) {
	t.Parallel()

	got := SanitizeSessionID("session-123\n\x00evil")
	if got != "session-123\nevil" {
		t.Errorf("Expected control runes stripped, got %q", got)
	}

	long := strings.Repeat("x", MaxSessionIDLength*2)
	if got := SanitizeSessionID(long); len(got) > MaxSessionIDLength+3 {
		t.Errorf("Expected truncation at %d bytes, got %d", MaxSessionIDLength+3, len(got))
	}
}

func TestSanitizeStringInvalidUTF8(t *testing.T) {
	t.Parallel()

	got := SanitizeString("ok\xff\xfe", 0)
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8, got %q", got)
	}
}

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	if got := SanitizeError(nil); got != "" {
		t.Errorf("Expected empty string for nil error, got %q", got)
	}
	if got := SanitizeError(errors.New("boom\x00")); got != "boom" {
		t.Errorf("Expected control runes stripped, got %q", got)
	}
}
