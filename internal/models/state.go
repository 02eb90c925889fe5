package models

// DialogState tags the position of a session inside a multi-turn flow
type DialogState string

const (
	// StateIdle means no multi-turn flow is in progress
	StateIdle DialogState = "idle"
	// StateAwaitingDeleteConfirm means a destructive action waits for a yes/no answer
	StateAwaitingDeleteConfirm DialogState = "awaiting_delete_confirm"
)

// ConversationState is the whole record round-tripped through the session
// store on every turn. Confirmation flows must survive process restarts,
// so no part of the flow may live outside this record.
type ConversationState struct {
	State          DialogState `json:"state"`
	TaskID         string      `json:"task_id,omitempty"`
	ProjectID      string      `json:"project_id,omitempty"`
	TaskName       string      `json:"task_name,omitempty"`
	ConfirmRetries int         `json:"confirm_retries"`
}

// Idle reports whether no flow is in progress
func (s *ConversationState) Idle() bool {
	return s == nil || s.State == "" || s.State == StateIdle
}
