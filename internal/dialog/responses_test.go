package dialog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"taskvoice/internal/models"
)

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("я", MaxResponseLength+100)
	got := truncate(long)

	if n := utf8.RuneCountInString(got); n != MaxResponseLength {
		t.Errorf("Expected %d runes, got %d", MaxResponseLength, n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("Expected ellipsis suffix")
	}
	if !utf8.ValidString(got) {
		t.Error("Expected valid UTF-8 after truncation")
	}

	short := "короткий ответ"
	if truncate(short) != short {
		t.Error("Expected short text to pass through unchanged")
	}
}

func TestTaskLinesLimitAndMarkers(t *testing.T) {
	t.Parallel()

	var tasks []models.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, models.Task{Title: "задача"})
	}
	tasks[0].Priority = models.PriorityHigh
	tasks[1].Priority = models.PriorityMedium
	tasks[2].Priority = models.PriorityLow

	out := taskLines(tasks)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[!]") || !strings.Contains(lines[1], "[~]") || !strings.Contains(lines[2], "[.]") {
		t.Errorf("Expected priority markers, got %q", out)
	}
	if strings.Contains(lines[3], "[") {
		t.Errorf("Expected no marker for default priority, got %q", lines[3])
	}
}

func TestRespCounts(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{{Title: "одна"}, {Title: "две"}}
	got := respTasksForDate("сегодня", tasks)
	if !strings.Contains(got, "2 задачи") {
		t.Errorf("Expected task count with numeral agreement, got %q", got)
	}
}
