package dialog

import (
	"taskvoice/internal/models"
)

// OutcomeKind tags how a resolution pass ended
type OutcomeKind string

const (
	// OutcomeMutationReady means a mutation was resolved and applied
	OutcomeMutationReady OutcomeKind = "mutation_ready"
	// OutcomeAnswer means a read-only command produced a spoken answer
	OutcomeAnswer OutcomeKind = "answer"
	// OutcomeNeedsMoreInfo means a required slot never arrived
	OutcomeNeedsMoreInfo OutcomeKind = "needs_more_info"
	// OutcomeNotFound means fuzzy resolution found no acceptable match
	OutcomeNotFound OutcomeKind = "not_found"
	// OutcomeConfirmationPending means a confirmation prompt was issued
	OutcomeConfirmationPending OutcomeKind = "confirmation_pending"
	// OutcomeCancelled means a confirmation flow ended without the action
	OutcomeCancelled OutcomeKind = "cancelled"
)

// MutationOp names the write applied to the task store
type MutationOp string

const (
	OpCreate   MutationOp = "create"
	OpUpdate   MutationOp = "update"
	OpComplete MutationOp = "complete"
	OpDelete   MutationOp = "delete"
)

// Mutation is the fully-typed write a resolution pass applied
type Mutation struct {
	Op        MutationOp         `json:"op"`
	TaskID    string             `json:"task_id,omitempty"`
	ProjectID string             `json:"project_id,omitempty"`
	Create    *models.TaskCreate `json:"create,omitempty"`
	Update    *models.TaskUpdate `json:"update,omitempty"`
}

// Outcome is the resolved result of one turn. Text always carries the
// phrase to speak back; the remaining fields depend on Kind.
type Outcome struct {
	Kind         OutcomeKind `json:"kind"`
	Text         string      `json:"text"`
	Mutation     *Mutation   `json:"mutation,omitempty"`
	MissingField string      `json:"missing_field,omitempty"`
	FailedName   string      `json:"failed_name,omitempty"`
}
