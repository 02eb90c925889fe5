// Package command defines the inbound command record and the slot
// normalizer that turns the NLU layer's noisy slot bag into typed fields.
package command

import (
	"taskvoice/internal/nlp"
)

// RawCommand is one inbound request as delivered by the NLU collaborator:
// the utterance tokens, the classifier's best-guess intent label (which
// may be wrong) and whatever slots it managed to capture. Immutable;
// discarded after resolution.
type RawCommand struct {
	Text   string         `json:"text"`
	Tokens []string       `json:"tokens"`
	Intent string         `json:"intent" validate:"required"`
	Slots  map[string]any `json:"slots"`
}

// Slot names the NLU layer is configured to emit
const (
	SlotTaskName      = "task_name"
	SlotQuery         = "query"
	SlotDate          = "date"
	SlotNewDate       = "new_date"
	SlotPriority      = "priority"
	SlotNewPriority   = "new_priority"
	SlotProject       = "project"
	SlotParentName    = "parent_name"
	SlotSubtaskName   = "subtask_name"
	SlotItemName      = "item_name"
	SlotRecFreq       = "rec_freq"
	SlotRecInterval   = "rec_interval"
	SlotRecMonthDay   = "rec_monthday"
	SlotReminderValue = "reminder_value"
	SlotReminderUnit  = "reminder_unit"
	SlotRemoveRec     = "remove_recurrence"
	SlotRemoveRem     = "remove_reminder"
)

// NormalizedSlots is the typed record derived once per request from a
// RawCommand. Absent fields are zero values (nil for numerics that need
// an absent/zero distinction). Never mutated after creation; re-derive
// wholesale if needed.
type NormalizedSlots struct {
	TaskName    string
	Query       string
	ParentName  string
	SubtaskName string
	ItemName    string
	Project     string
	Priority    string
	NewPriority string

	Date    nlp.DateSlot
	NewDate nlp.DateSlot
	HasDate bool

	RecFreq     string
	RecInterval int
	RecMonthDay int

	ReminderValue *int
	ReminderUnit  string

	RemoveRecurrence bool
	RemoveReminder   bool
}
