package nlp

var (
	taskForms = [3]string{"задача", "задачи", "задач"}
	itemForms = [3]string{"пункт", "пункта", "пунктов"}
)

// PluralizeTasks renders a task count with Russian numeral agreement:
// 1 задача, 2 задачи, 5 задач.
func PluralizeTasks(n int) string {
	return pluralizeRu(n, taskForms)
}

// PluralizeItems does the same for checklist items
func PluralizeItems(n int) string {
	return pluralizeRu(n, itemForms)
}
