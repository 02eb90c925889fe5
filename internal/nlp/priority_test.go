package nlp

import (
	"testing"

	"taskvoice/internal/models"
)

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		want   models.TaskPriority
		wantOK bool
	}{
		{"высокий", models.PriorityHigh, true},
		{"Срочная", models.PriorityHigh, true},
		{"  важное  ", models.PriorityHigh, true},
		{"средний", models.PriorityMedium, true},
		{"низкая", models.PriorityLow, true},
		{"обычный", models.PriorityNone, true},
		{"без приоритета", models.PriorityNone, true},
		{"фиолетовый", models.PriorityNone, false},
		{"", models.PriorityNone, false},
	}

	for _, tt := range tests {
		p, ok := ParsePriority(tt.text)
		if ok != tt.wantOK || p != tt.want {
			t.Errorf("ParsePriority(%q): expected (%d, %v), got (%d, %v)", tt.text, tt.want, tt.wantOK, p, ok)
		}
	}
}

func TestPluralizeTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "1 задача"},
		{2, "2 задачи"},
		{5, "5 задач"},
		{11, "11 задач"},
		{21, "21 задача"},
		{104, "104 задачи"},
	}

	for _, tt := range tests {
		if got := PluralizeTasks(tt.n); got != tt.want {
			t.Errorf("PluralizeTasks(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}

func TestPluralizeItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "1 пункт"},
		{3, "3 пункта"},
		{12, "12 пунктов"},
	}

	for _, tt := range tests {
		if got := PluralizeItems(tt.n); got != tt.want {
			t.Errorf("PluralizeItems(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}
