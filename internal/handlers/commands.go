package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"taskvoice/internal/command"
	"taskvoice/internal/dialog"
	"taskvoice/internal/logger"
	"taskvoice/internal/ticktick"
	"taskvoice/internal/validation"
)

// CommandHandler serves the voice platform's webhook: one POST per
// dialogue turn, one spoken answer back.
type CommandHandler struct {
	engine *dialog.Engine
	logger *zap.Logger
}

// NewCommandHandler creates a command webhook handler
func NewCommandHandler(engine *dialog.Engine, log *zap.Logger) *CommandHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandHandler{engine: engine, logger: log}
}

// TurnRequest is one webhook call from the voice platform
type TurnRequest struct {
	SessionID   string   `json:"session_id" validate:"required"`
	AccessToken string   `json:"access_token" validate:"required"`
	Text        string   `json:"text"`
	Tokens      []string `json:"tokens"`
	// Intent is only required to be present. Unknown labels are not
	// rejected here; the engine answers them with its fallback phrase.
	Intent string         `json:"intent" validate:"required"`
	Slots  map[string]any `json:"slots"`
	// Signal carries a platform button press: "confirm" or "reject"
	Signal string `json:"signal" validate:"omitempty,oneof=confirm reject"`
}

// TurnResponse is the spoken answer for one turn
type TurnResponse struct {
	Text         string `json:"text"`
	Kind         string `json:"kind"`
	MissingField string `json:"missing_field,omitempty"`
	FailedName   string `json:"failed_name,omitempty"`
}

// HandleTurn handles POST /v1/turns
func (h *CommandHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Missing or invalid fields")
		return
	}

	h.logger.Debug("turn_received",
		zap.String("session_id", logger.SanitizeSessionID(req.SessionID)),
		zap.String("intent", req.Intent),
		zap.String("text", logger.SanitizeUtterance(req.Text)),
	)

	outcome, err := h.engine.Resolve(r.Context(), &dialog.Request{
		SessionID:   req.SessionID,
		AccessToken: req.AccessToken,
		Signal:      parseSignal(req.Signal),
		Command: command.RawCommand{
			Text:   validation.SanitizeText(req.Text),
			Tokens: req.Tokens,
			Intent: req.Intent,
			Slots:  req.Slots,
		},
	})
	if err != nil {
		h.logger.Error("turn_failed",
			zap.String("session_id", logger.SanitizeSessionID(req.SessionID)),
			zap.String("intent", req.Intent),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, turnErrorStatus(err), "Resolution Failed", "Could not complete the command")
		return
	}

	h.logger.Info("turn_resolved",
		zap.String("session_id", logger.SanitizeSessionID(req.SessionID)),
		zap.String("intent", req.Intent),
		zap.String("outcome", string(outcome.Kind)),
	)

	respondJSON(w, http.StatusOK, TurnResponse{
		Text:         outcome.Text,
		Kind:         string(outcome.Kind),
		MissingField: outcome.MissingField,
		FailedName:   outcome.FailedName,
	})
}

func parseSignal(s string) dialog.ConfirmSignal {
	switch s {
	case "confirm":
		return dialog.SignalConfirm
	case "reject":
		return dialog.SignalReject
	}
	return dialog.SignalNone
}

// turnErrorStatus maps task-store failures onto webhook status codes.
// The token belongs to the user, so an upstream 401 is the caller's 401.
func turnErrorStatus(err error) int {
	switch {
	case errors.Is(err, ticktick.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ticktick.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
