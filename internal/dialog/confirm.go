package dialog

import (
	"context"
	"fmt"

	"taskvoice/internal/models"
)

// DefaultMaxConfirmRetries bounds how many unmatched utterances a
// confirmation flow tolerates before it expires. The Nth unmatched
// answer cancels; the user is never stuck in confirmation limbo.
const DefaultMaxConfirmRetries = 3

// ConfirmSignal is a platform-native confirm/reject button press, which
// bypasses token matching entirely.
type ConfirmSignal int

const (
	SignalNone ConfirmSignal = iota
	SignalConfirm
	SignalReject
)

type confirmAnswer int

const (
	answerUnknown confirmAnswer = iota
	answerAffirm
	answerReject
)

// classifyConfirmation decides what a confirmation-turn utterance means.
// Negation wins over affirmation so "нет, не удаляй" cancels even though
// "удаляй" alone would confirm.
func (e *Engine) classifyConfirmation(signal ConfirmSignal, tokens []string) confirmAnswer {
	switch signal {
	case SignalConfirm:
		return answerAffirm
	case SignalReject:
		return answerReject
	}

	if e.vocab.IsNegative(tokens) {
		return answerReject
	}
	if e.vocab.IsAffirmative(tokens) {
		return answerAffirm
	}
	return answerUnknown
}

// resolveDeleteConfirmation handles a turn that arrives while the
// session is awaiting delete confirmation. The entire flow state lives
// in the store record; this method is correct even when every turn runs
// in a fresh process.
//
// On collaborator failure the state record is left untouched so the next
// turn can retry the same transition safely.
func (e *Engine) resolveDeleteConfirmation(ctx context.Context, req *Request, state *models.ConversationState) (*Outcome, error) {
	switch e.classifyConfirmation(req.Signal, req.Command.Tokens) {
	case answerAffirm:
		if state.TaskID == "" || state.ProjectID == "" {
			// corrupted record; nothing can be deleted safely
			if err := e.store.Clear(ctx, req.SessionID); err != nil {
				return nil, fmt.Errorf("failed to clear session state: %w", err)
			}
			return &Outcome{Kind: OutcomeCancelled, Text: respDeleteCancelled}, nil
		}

		client := e.clients(req.AccessToken)
		if err := client.DeleteTask(ctx, state.ProjectID, state.TaskID); err != nil {
			return nil, fmt.Errorf("failed to delete task %s: %w", state.TaskID, err)
		}
		if err := e.store.Clear(ctx, req.SessionID); err != nil {
			return nil, fmt.Errorf("failed to clear session state: %w", err)
		}
		return &Outcome{
			Kind: OutcomeMutationReady,
			Text: respDeleteSuccess(state.TaskName),
			Mutation: &Mutation{
				Op:        OpDelete,
				TaskID:    state.TaskID,
				ProjectID: state.ProjectID,
			},
		}, nil

	case answerReject:
		if err := e.store.Clear(ctx, req.SessionID); err != nil {
			return nil, fmt.Errorf("failed to clear session state: %w", err)
		}
		return &Outcome{Kind: OutcomeCancelled, Text: respDeleteCancelled}, nil
	}

	// Neither set matched: re-prompt until the retry budget is spent.
	retries := state.ConfirmRetries + 1
	if retries >= e.maxConfirmRetries {
		if err := e.store.Clear(ctx, req.SessionID); err != nil {
			return nil, fmt.Errorf("failed to clear session state: %w", err)
		}
		return &Outcome{Kind: OutcomeCancelled, Text: respDeleteCancelled}, nil
	}

	updated := *state
	updated.ConfirmRetries = retries
	if err := e.store.Set(ctx, req.SessionID, &updated); err != nil {
		return nil, fmt.Errorf("failed to update session state: %w", err)
	}
	return &Outcome{Kind: OutcomeConfirmationPending, Text: respDeleteConfirmPrompt}, nil
}
