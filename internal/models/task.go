package models

// TaskPriority represents a TickTick task priority level
type TaskPriority int

const (
	PriorityNone   TaskPriority = 0
	PriorityLow    TaskPriority = 1
	PriorityMedium TaskPriority = 3
	PriorityHigh   TaskPriority = 5
)

// ValidPriority reports whether p is one of the levels the task store accepts
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task statuses as reported by the task store
const (
	TaskStatusActive    = 0
	TaskStatusCompleted = 2
)

// Task represents a task fetched from the task store.
// It is fetched fresh per request and never cached across requests.
type Task struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"projectId"`
	Title      string          `json:"title"`
	Content    string          `json:"content,omitempty"`
	Priority   TaskPriority    `json:"priority"`
	Status     int             `json:"status"`
	DueDate    string          `json:"dueDate,omitempty"`
	StartDate  string          `json:"startDate,omitempty"`
	ParentID   string          `json:"parentId,omitempty"`
	RepeatFlag string          `json:"repeatFlag,omitempty"`
	Reminders  []string        `json:"reminders,omitempty"`
	Items      []ChecklistItem `json:"items,omitempty"`
}

// Active reports whether the task is not completed
func (t *Task) Active() bool {
	return t.Status == TaskStatusActive
}

// ChecklistItem represents a single checklist entry inside a task
type ChecklistItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// Project represents a task list in the task store
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskCreate is the payload for creating a task
type TaskCreate struct {
	Title      string       `json:"title"`
	ProjectID  string       `json:"projectId,omitempty"`
	Content    string       `json:"content,omitempty"`
	Priority   TaskPriority `json:"priority,omitempty"`
	DueDate    string       `json:"dueDate,omitempty"`
	ParentID   string       `json:"parentId,omitempty"`
	RepeatFlag string       `json:"repeatFlag,omitempty"`
	Reminders  []string     `json:"reminders,omitempty"`
}

// TaskUpdate is a partial-update payload keyed by task identifier.
// Only non-nil fields are sent to the task store.
type TaskUpdate struct {
	ID         string           `json:"id"`
	ProjectID  string           `json:"projectId"`
	Title      *string          `json:"title,omitempty"`
	Priority   *TaskPriority    `json:"priority,omitempty"`
	DueDate    *string          `json:"dueDate,omitempty"`
	RepeatFlag *string          `json:"repeatFlag,omitempty"`
	Reminders  *[]string        `json:"reminders,omitempty"`
	Items      *[]ChecklistItem `json:"items,omitempty"`
}
