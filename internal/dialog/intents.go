// Package dialog resolves NLU-classified commands into task mutations.
// It owns intent dispatch, the misclassification reconciler, the
// confirmation state machine and the spoken response catalog.
package dialog

// Intent labels as configured in the NLU console. The declared label on
// an inbound command may be wrong; the reconciler corrects the known
// failure modes before dispatch.
const (
	IntentCreateTask          = "create_task"
	IntentCreateRecurringTask = "create_recurring_task"
	IntentListTasks           = "list_tasks"
	IntentOverdueTasks        = "overdue_tasks"
	IntentCompleteTask        = "complete_task"
	IntentSearchTask          = "search_task"
	IntentEditTask            = "edit_task"
	IntentDeleteTask          = "delete_task"
	IntentAddReminder         = "add_reminder"
	IntentAddSubtask          = "add_subtask"
	IntentListSubtasks        = "list_subtasks"
	IntentAddChecklistItem    = "add_checklist_item"
	IntentShowChecklist       = "show_checklist"
	IntentCheckItem           = "check_item"
	IntentDeleteChecklistItem = "delete_checklist_item"
)

// AllIntents is the closed set of labels the engine dispatches on
var AllIntents = map[string]struct{}{
	IntentCreateTask:          {},
	IntentCreateRecurringTask: {},
	IntentListTasks:           {},
	IntentOverdueTasks:        {},
	IntentCompleteTask:        {},
	IntentSearchTask:          {},
	IntentEditTask:            {},
	IntentDeleteTask:          {},
	IntentAddReminder:         {},
	IntentAddSubtask:          {},
	IntentListSubtasks:        {},
	IntentAddChecklistItem:    {},
	IntentShowChecklist:       {},
	IntentCheckItem:           {},
	IntentDeleteChecklistItem: {},
}

// KnownIntent reports whether the label is in the dispatch set
func KnownIntent(label string) bool {
	_, ok := AllIntents[label]
	return ok
}
