package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskvoice/internal/dialog"
	"taskvoice/internal/models"
	"taskvoice/internal/session"
)

type stubClient struct {
	tasks []models.Task
}

func (s *stubClient) GetProjects(context.Context) ([]models.Project, error) { return nil, nil }
func (s *stubClient) AllTasks(context.Context) ([]models.Task, error)       { return s.tasks, nil }
func (s *stubClient) CreateTask(_ context.Context, payload *models.TaskCreate) (*models.Task, error) {
	return &models.Task{ID: "t-new", Title: payload.Title}, nil
}
func (s *stubClient) UpdateTask(_ context.Context, payload *models.TaskUpdate) (*models.Task, error) {
	return &models.Task{ID: payload.ID}, nil
}
func (s *stubClient) CompleteTask(context.Context, string, string) error { return nil }
func (s *stubClient) DeleteTask(context.Context, string, string) error   { return nil }

func newTestHandler(client dialog.TaskClient) *CommandHandler {
	engine := dialog.NewEngine(
		session.NewMemoryStore(),
		func(string) dialog.TaskClient { return client },
		nil, nil,
	)
	return NewCommandHandler(engine, nil)
}

func postTurn(t *testing.T, h *CommandHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/turns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleTurn(w, req)
	return w
}

func TestHandleTurnCreateTask(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&stubClient{})
	w := postTurn(t, h, `{
		"session_id": "s1",
		"access_token": "tok",
		"intent": "create_task",
		"slots": {"task_name": "купить молоко"}
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TurnResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Kind != string(dialog.OutcomeMutationReady) {
		t.Errorf("Expected mutation_ready, got %q (%s)", resp.Kind, resp.Text)
	}
	if !strings.Contains(resp.Text, "купить молоко") {
		t.Errorf("Expected task name in answer, got %q", resp.Text)
	}
}

func TestHandleTurnMissingFields(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&stubClient{})

	tests := []struct {
		name string
		body string
	}{
		{"no session", `{"access_token":"tok","intent":"create_task"}`},
		{"no token", `{"session_id":"s1","intent":"create_task"}`},
		{"no intent", `{"session_id":"s1","access_token":"tok"}`},
		{"bad signal", `{"session_id":"s1","access_token":"tok","intent":"create_task","signal":"maybe"}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := postTurn(t, h, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleTurnUnknownIntentStillAnswers(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&stubClient{})
	w := postTurn(t, h, `{"session_id":"s1","access_token":"tok","intent":"order_pizza"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp TurnResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Kind != string(dialog.OutcomeAnswer) {
		t.Errorf("Expected answer outcome for unknown intent, got %q", resp.Kind)
	}
}

func TestHandleTurnConfirmSignalFlow(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		tasks: []models.Task{{ID: "t1", ProjectID: "p1", Title: "Старая задача"}},
	}
	h := newTestHandler(client)

	w := postTurn(t, h, `{
		"session_id": "s1",
		"access_token": "tok",
		"intent": "delete_task",
		"slots": {"task_name": "старая задача"}
	}`)
	var resp TurnResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Kind != string(dialog.OutcomeConfirmationPending) {
		t.Fatalf("Expected confirmation_pending, got %q", resp.Kind)
	}

	w = postTurn(t, h, `{
		"session_id": "s1",
		"access_token": "tok",
		"intent": "delete_task",
		"signal": "confirm"
	}`)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Kind != string(dialog.OutcomeMutationReady) {
		t.Errorf("Expected mutation_ready after confirm signal, got %q (%s)", resp.Kind, resp.Text)
	}
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker(session.NewMemoryStore())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %q", resp.Status)
	}
}

func TestHealthCheckExtended(t *testing.T) {
	t.Parallel()

	h := NewHealthChecker(session.NewMemoryStore())

	req := httptest.NewRequest("GET", "/healthz?mode=extended", nil)
	w := httptest.NewRecorder()
	h.HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Checks["session_store"] != "healthy" {
		t.Errorf("Expected session store check, got %+v", resp.Checks)
	}
}
