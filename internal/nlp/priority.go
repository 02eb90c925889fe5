package nlp

import (
	"strings"

	"taskvoice/internal/models"
)

// priorityVocab maps Russian priority words (with gender variants) to the
// task store's numeric levels.
var priorityVocab = map[string]models.TaskPriority{
	// high / urgent
	"высокий":     models.PriorityHigh,
	"высокая":     models.PriorityHigh,
	"высокое":     models.PriorityHigh,
	"срочно":      models.PriorityHigh,
	"срочный":     models.PriorityHigh,
	"срочная":     models.PriorityHigh,
	"срочное":     models.PriorityHigh,
	"важно":       models.PriorityHigh,
	"важный":      models.PriorityHigh,
	"важная":      models.PriorityHigh,
	"важное":      models.PriorityHigh,
	"критический": models.PriorityHigh,
	"критичный":   models.PriorityHigh,
	// medium
	"средний":     models.PriorityMedium,
	"средняя":     models.PriorityMedium,
	"среднее":     models.PriorityMedium,
	"нормальный":  models.PriorityMedium,
	"нормальная":  models.PriorityMedium,
	"нормальное":  models.PriorityMedium,
	// low
	"низкий":   models.PriorityLow,
	"низкая":   models.PriorityLow,
	"низкое":   models.PriorityLow,
	"неважный": models.PriorityLow,
	"неважная": models.PriorityLow,
	"неважное": models.PriorityLow,
	// none
	"обычный":        models.PriorityNone,
	"обычная":        models.PriorityNone,
	"обычное":        models.PriorityNone,
	"без приоритета": models.PriorityNone,
	"нет":            models.PriorityNone,
}

// ParsePriority maps a Russian priority word to a task priority.
// The second return is false when the word is empty or unrecognized.
func ParsePriority(text string) (models.TaskPriority, bool) {
	if text == "" {
		return models.PriorityNone, false
	}
	p, ok := priorityVocab[strings.ToLower(strings.TrimSpace(text))]
	return p, ok
}
