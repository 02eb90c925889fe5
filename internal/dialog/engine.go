package dialog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskvoice/internal/command"
	"taskvoice/internal/models"
	"taskvoice/internal/nlp"
	"taskvoice/internal/session"
	"taskvoice/internal/vocab"
)

// storeDateLayout is the timestamp format the task store accepts
const storeDateLayout = "2006-01-02T15:04:05.000+0000"

// parseDateLayout tolerates the zone offsets the store sends back
const parseDateLayout = "2006-01-02T15:04:05.000-0700"

// TaskClient is the slice of the task-store API the engine mutates
// through. Satisfied by *ticktick.Client; tests substitute a fake.
type TaskClient interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
	AllTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, payload *models.TaskCreate) (*models.Task, error)
	UpdateTask(ctx context.Context, payload *models.TaskUpdate) (*models.Task, error)
	CompleteTask(ctx context.Context, projectID, taskID string) error
	DeleteTask(ctx context.Context, projectID, taskID string) error
}

// ClientFactory builds a task-store client for a per-request access token
type ClientFactory func(accessToken string) TaskClient

// Request is one inbound turn
type Request struct {
	SessionID   string
	AccessToken string
	Command     command.RawCommand
	Signal      ConfirmSignal
}

// Engine runs a single non-reentrant resolution pass per inbound turn.
// All cross-turn state lives in the session store.
type Engine struct {
	store             session.Store
	clients           ClientFactory
	vocab             *vocab.Sets
	normalizer        *command.Normalizer
	reconciler        *Reconciler
	logger            *zap.Logger
	now               func() time.Time
	matchThreshold    int
	maxConfirmRetries int
}

// EngineOption customizes an Engine
type EngineOption func(*Engine)

// WithMatchThreshold overrides the fuzzy acceptance threshold
func WithMatchThreshold(threshold int) EngineOption {
	return func(e *Engine) { e.matchThreshold = threshold }
}

// WithMaxConfirmRetries overrides the confirmation retry budget
func WithMaxConfirmRetries(max int) EngineOption {
	return func(e *Engine) { e.maxConfirmRetries = max }
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a command resolution engine
func NewEngine(store session.Store, clients ClientFactory, v *vocab.Sets, logger *zap.Logger, opts ...EngineOption) *Engine {
	if v == nil {
		v = vocab.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		store:             store,
		clients:           clients,
		vocab:             v,
		normalizer:        command.NewNormalizer(v),
		reconciler:        NewReconciler(v),
		logger:            logger,
		now:               time.Now,
		matchThreshold:    nlp.DefaultMatchThreshold,
		maxConfirmRetries: DefaultMaxConfirmRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve handles one turn: consult conversation state, reconcile the
// declared intent, normalize slots and dispatch. Collaborator failures
// (task store, session store) propagate as errors with no partial
// mutation applied; every locally recoverable condition comes back as an
// Outcome.
func (e *Engine) Resolve(ctx context.Context, req *Request) (*Outcome, error) {
	state, err := e.store.Get(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	if state != nil && state.State == models.StateAwaitingDeleteConfirm {
		return e.resolveDeleteConfirmation(ctx, req, state)
	}

	cmd := e.reconciler.Reconcile(&req.Command)
	if cmd.Intent != req.Command.Intent {
		e.logger.Info("intent_reconciled",
			zap.String("declared_intent", req.Command.Intent),
			zap.String("dispatched_intent", cmd.Intent),
		)
	}

	slots := e.normalizer.Normalize(cmd)
	client := e.clients(req.AccessToken)

	switch cmd.Intent {
	case IntentCreateTask:
		return e.resolveCreateTask(ctx, client, slots, false)
	case IntentCreateRecurringTask:
		return e.resolveCreateTask(ctx, client, slots, true)
	case IntentListTasks:
		return e.resolveListTasks(ctx, client, slots)
	case IntentOverdueTasks:
		return e.resolveOverdueTasks(ctx, client)
	case IntentCompleteTask:
		return e.resolveCompleteTask(ctx, client, slots)
	case IntentSearchTask:
		return e.resolveSearchTask(ctx, client, slots)
	case IntentEditTask:
		return e.resolveEditTask(ctx, client, slots)
	case IntentDeleteTask:
		return e.resolveDeleteTask(ctx, client, req, slots)
	case IntentAddReminder:
		return e.resolveAddReminder(ctx, client, slots)
	case IntentAddSubtask:
		return e.resolveAddSubtask(ctx, client, slots)
	case IntentListSubtasks:
		return e.resolveListSubtasks(ctx, client, slots)
	case IntentAddChecklistItem:
		return e.resolveAddChecklistItem(ctx, client, slots)
	case IntentShowChecklist:
		return e.resolveShowChecklist(ctx, client, slots)
	case IntentCheckItem:
		return e.resolveCheckItem(ctx, client, slots)
	case IntentDeleteChecklistItem:
		return e.resolveDeleteChecklistItem(ctx, client, slots)
	}

	return &Outcome{Kind: OutcomeAnswer, Text: respUnknown}, nil
}

// --- Create ---

func (e *Engine) resolveCreateTask(ctx context.Context, client TaskClient, slots *command.NormalizedSlots, recurrenceRequired bool) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respTaskNameRequired, MissingField: command.SlotTaskName}, nil
	}

	rule := nlp.CompileRecurrence(slots.RecFreq, slots.RecInterval, slots.RecMonthDay)
	if recurrenceRequired && rule == nil {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respRecurrenceFreqRequired, MissingField: command.SlotRecFreq}, nil
	}

	payload := &models.TaskCreate{Title: slots.TaskName}

	var dateDisplay string
	if slots.HasDate {
		if due, hasTime, err := nlp.ResolveDate(slots.Date, e.now().UTC()); err == nil {
			payload.DueDate = formatStoreDate(due, hasTime)
			dateDisplay = nlp.FormatDate(due, e.now().UTC())
		}
	}

	if p, ok := nlp.ParsePriority(slots.Priority); ok {
		payload.Priority = p
	}

	payload.RepeatFlag = rule.RRule()

	trigger := nlp.CompileReminder(slots.ReminderValue, slots.ReminderUnit)
	if trigger != "" {
		payload.Reminders = []string{trigger}
	}

	if slots.Project != "" {
		outcome, projectID, err := e.resolveProject(ctx, client, slots.Project)
		if err != nil || outcome != nil {
			return outcome, err
		}
		payload.ProjectID = projectID
	}

	created, err := client.CreateTask(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	recurrence := nlp.FormatRecurrence(payload.RepeatFlag)
	reminder := nlp.FormatReminder(trigger)
	var text string
	switch {
	case recurrence != "" && reminder != "":
		text = respTaskCreatedRecurringWithReminder(slots.TaskName, recurrence, reminder)
	case recurrence != "":
		text = respTaskCreatedRecurring(slots.TaskName, recurrence)
	case reminder != "":
		text = respTaskCreatedWithReminder(slots.TaskName, reminder)
	case dateDisplay != "":
		text = respTaskCreatedWithDate(slots.TaskName, dateDisplay)
	default:
		text = respTaskCreated(slots.TaskName)
	}

	return &Outcome{
		Kind: OutcomeMutationReady,
		Text: text,
		Mutation: &Mutation{
			Op:        OpCreate,
			TaskID:    created.ID,
			ProjectID: created.ProjectID,
			Create:    payload,
		},
	}, nil
}

// resolveProject fuzzy-matches a spoken project name against the user's
// project list. A non-nil outcome means resolution already answered
// (project not found).
func (e *Engine) resolveProject(ctx context.Context, client TaskClient, name string) (*Outcome, string, error) {
	projects, err := client.GetProjects(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get projects: %w", err)
	}

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}

	match, ok := nlp.BestMatch(name, names, e.matchThreshold)
	if !ok {
		return &Outcome{
			Kind:       OutcomeNotFound,
			Text:       respProjectNotFound(name, names),
			FailedName: name,
		}, "", nil
	}
	return nil, projects[match.Index].ID, nil
}

// --- Read-only listings ---

func (e *Engine) resolveListTasks(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	now := e.now().UTC()
	target := now
	if slots.HasDate {
		if resolved, _, err := nlp.ResolveDate(slots.Date, now); err == nil {
			target = resolved
		}
	}

	tasks, err := client.AllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var dayTasks []models.Task
	for _, t := range tasks {
		due, ok := parseStoreDate(t.DueDate)
		if ok && t.Active() && sameDay(due, target) {
			dayTasks = append(dayTasks, t)
		}
	}

	display := nlp.FormatDate(target, now)
	if len(dayTasks) == 0 {
		if sameDay(target, now) {
			return &Outcome{Kind: OutcomeAnswer, Text: respNoTasksToday}, nil
		}
		return &Outcome{Kind: OutcomeAnswer, Text: respNoTasksForDate(display)}, nil
	}
	return &Outcome{Kind: OutcomeAnswer, Text: respTasksForDate(display, dayTasks)}, nil
}

func (e *Engine) resolveOverdueTasks(ctx context.Context, client TaskClient) (*Outcome, error) {
	tasks, err := client.AllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	now := e.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overdue []models.Task
	for _, t := range tasks {
		due, ok := parseStoreDate(t.DueDate)
		if ok && t.Active() && due.Before(today) {
			overdue = append(overdue, t)
		}
	}

	if len(overdue) == 0 {
		return &Outcome{Kind: OutcomeAnswer, Text: respNoOverdue}, nil
	}
	return &Outcome{Kind: OutcomeAnswer, Text: respOverdue(overdue)}, nil
}

func (e *Engine) resolveSearchTask(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.Query == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respSearchQueryRequired, MissingField: command.SlotQuery}, nil
	}

	active, err := e.activeTasks(ctx, client)
	if err != nil {
		return nil, err
	}

	matches := nlp.FindMatches(slots.Query, taskTitles(active), e.matchThreshold, 5)
	if len(matches) == 0 {
		return &Outcome{Kind: OutcomeAnswer, Text: respSearchNoResults(slots.Query)}, nil
	}

	found := make([]models.Task, len(matches))
	for i, m := range matches {
		found[i] = active[m.Index]
	}
	return &Outcome{Kind: OutcomeAnswer, Text: respSearchResults(found)}, nil
}

// --- Mutating single-task flows ---

func (e *Engine) resolveCompleteTask(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respCompleteNameRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	if err := client.CompleteTask(ctx, task.ProjectID, task.ID); err != nil {
		return nil, fmt.Errorf("failed to complete task %s: %w", task.ID, err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respTaskCompleted(task.Title),
		Mutation: &Mutation{Op: OpComplete, TaskID: task.ID, ProjectID: task.ProjectID},
	}, nil
}

func (e *Engine) resolveEditTask(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respEditNameRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	update := &models.TaskUpdate{ID: task.ID, ProjectID: task.ProjectID}
	var recurrenceChange, reminderChange, otherChange bool

	if !slots.NewDate.Empty() {
		if due, hasTime, err := nlp.ResolveDate(slots.NewDate, e.now().UTC()); err == nil {
			formatted := formatStoreDate(due, hasTime)
			update.DueDate = &formatted
			otherChange = true
		}
	}

	if p, ok := nlp.ParsePriority(slots.NewPriority); ok {
		update.Priority = &p
		otherChange = true
	}

	switch {
	case slots.RemoveRecurrence:
		empty := ""
		update.RepeatFlag = &empty
		recurrenceChange = true
	default:
		if rule := nlp.CompileRecurrence(slots.RecFreq, slots.RecInterval, slots.RecMonthDay); rule != nil {
			rrule := rule.RRule()
			update.RepeatFlag = &rrule
			recurrenceChange = true
		}
	}

	switch {
	case slots.RemoveReminder:
		none := []string{}
		update.Reminders = &none
		reminderChange = true
	default:
		if trigger := nlp.CompileReminder(slots.ReminderValue, slots.ReminderUnit); trigger != "" {
			reminders := []string{trigger}
			update.Reminders = &reminders
			reminderChange = true
		}
	}

	if !recurrenceChange && !reminderChange && !otherChange {
		return &Outcome{Kind: OutcomeAnswer, Text: respEditNoChanges}, nil
	}

	if _, err := client.UpdateTask(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	var text string
	switch {
	case recurrenceChange && !reminderChange && !otherChange:
		if update.RepeatFlag != nil && *update.RepeatFlag == "" {
			text = respRecurrenceRemoved(task.Title)
		} else {
			text = respRecurrenceUpdated(task.Title, nlp.FormatRecurrence(*update.RepeatFlag))
		}
	case reminderChange && !recurrenceChange && !otherChange:
		if update.Reminders != nil && len(*update.Reminders) == 0 {
			text = respReminderRemoved(task.Title)
		} else {
			text = respReminderUpdated(task.Title, nlp.FormatReminder((*update.Reminders)[0]))
		}
	default:
		text = respEditSuccess(task.Title)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     text,
		Mutation: &Mutation{Op: OpUpdate, TaskID: task.ID, ProjectID: task.ProjectID, Update: update},
	}, nil
}

func (e *Engine) resolveDeleteTask(ctx context.Context, client TaskClient, req *Request, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respDeleteNameRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	state := &models.ConversationState{
		State:     models.StateAwaitingDeleteConfirm,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		TaskName:  task.Title,
	}
	if err := e.store.Set(ctx, req.SessionID, state); err != nil {
		return nil, fmt.Errorf("failed to persist confirmation state: %w", err)
	}

	return &Outcome{Kind: OutcomeConfirmationPending, Text: respDeleteConfirm(task.Title)}, nil
}

func (e *Engine) resolveAddReminder(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respReminderTaskRequired, MissingField: command.SlotTaskName}, nil
	}

	trigger := nlp.CompileReminder(slots.ReminderValue, slots.ReminderUnit)
	if trigger == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respReminderValueRequired, MissingField: command.SlotReminderValue}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	reminders := []string{trigger}
	update := &models.TaskUpdate{ID: task.ID, ProjectID: task.ProjectID, Reminders: &reminders}
	if _, err := client.UpdateTask(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respReminderAdded(nlp.FormatReminder(trigger), task.Title),
		Mutation: &Mutation{Op: OpUpdate, TaskID: task.ID, ProjectID: task.ProjectID, Update: update},
	}, nil
}

// --- Subtasks ---

func (e *Engine) resolveAddSubtask(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.ParentName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respSubtaskParentRequired, MissingField: command.SlotParentName}, nil
	}
	if slots.SubtaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respSubtaskNameRequired, MissingField: command.SlotSubtaskName}, nil
	}

	parent, outcome, err := e.findTask(ctx, client, slots.ParentName)
	if parent == nil {
		return outcome, err
	}

	payload := &models.TaskCreate{
		Title:     slots.SubtaskName,
		ProjectID: parent.ProjectID,
		ParentID:  parent.ID,
	}
	created, err := client.CreateTask(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respSubtaskCreated(slots.SubtaskName, parent.Title),
		Mutation: &Mutation{Op: OpCreate, TaskID: created.ID, ProjectID: parent.ProjectID, Create: payload},
	}, nil
}

func (e *Engine) resolveListSubtasks(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respListSubtasksRequired, MissingField: command.SlotTaskName}, nil
	}

	active, err := e.activeTasks(ctx, client)
	if err != nil {
		return nil, err
	}

	match, ok := nlp.BestMatch(slots.TaskName, taskTitles(active), e.matchThreshold)
	if !ok {
		return &Outcome{Kind: OutcomeNotFound, Text: respTaskNotFound(slots.TaskName), FailedName: slots.TaskName}, nil
	}
	parent := active[match.Index]

	var subtasks []models.Task
	for _, t := range active {
		if t.ParentID == parent.ID {
			subtasks = append(subtasks, t)
		}
	}

	if len(subtasks) == 0 {
		return &Outcome{Kind: OutcomeAnswer, Text: respNoSubtasks(parent.Title)}, nil
	}
	return &Outcome{Kind: OutcomeAnswer, Text: respSubtasks(parent.Title, subtasks)}, nil
}

// --- Checklists ---

func (e *Engine) resolveAddChecklistItem(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.ItemName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistItemRequired, MissingField: command.SlotItemName}, nil
	}
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistTaskRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	items := append(append([]models.ChecklistItem{}, task.Items...), models.ChecklistItem{Title: slots.ItemName})
	update := &models.TaskUpdate{ID: task.ID, ProjectID: task.ProjectID, Items: &items}
	if _, err := client.UpdateTask(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respChecklistItemAdded(slots.ItemName, task.Title, len(items)),
		Mutation: &Mutation{Op: OpUpdate, TaskID: task.ID, ProjectID: task.ProjectID, Update: update},
	}, nil
}

func (e *Engine) resolveShowChecklist(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respShowChecklistRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	if len(task.Items) == 0 {
		return &Outcome{Kind: OutcomeAnswer, Text: respChecklistEmpty(task.Title)}, nil
	}
	return &Outcome{Kind: OutcomeAnswer, Text: respChecklist(task.Title, task.Items)}, nil
}

func (e *Engine) resolveCheckItem(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.ItemName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistItemRequired, MissingField: command.SlotItemName}, nil
	}
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistTaskRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	// the task resolver doubles as the item resolver, same acceptance policy
	match, ok := nlp.BestMatch(slots.ItemName, itemTitles(task.Items), e.matchThreshold)
	if !ok {
		return &Outcome{
			Kind:       OutcomeNotFound,
			Text:       respChecklistItemNotFound(slots.ItemName, task.Title),
			FailedName: slots.ItemName,
		}, nil
	}

	items := append([]models.ChecklistItem{}, task.Items...)
	items[match.Index].Status = 1
	update := &models.TaskUpdate{ID: task.ID, ProjectID: task.ProjectID, Items: &items}
	if _, err := client.UpdateTask(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respChecklistItemChecked(items[match.Index].Title),
		Mutation: &Mutation{Op: OpUpdate, TaskID: task.ID, ProjectID: task.ProjectID, Update: update},
	}, nil
}

func (e *Engine) resolveDeleteChecklistItem(ctx context.Context, client TaskClient, slots *command.NormalizedSlots) (*Outcome, error) {
	if slots.ItemName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistItemRequired, MissingField: command.SlotItemName}, nil
	}
	if slots.TaskName == "" {
		return &Outcome{Kind: OutcomeNeedsMoreInfo, Text: respChecklistTaskRequired, MissingField: command.SlotTaskName}, nil
	}

	task, outcome, err := e.findTask(ctx, client, slots.TaskName)
	if task == nil {
		return outcome, err
	}

	match, ok := nlp.BestMatch(slots.ItemName, itemTitles(task.Items), e.matchThreshold)
	if !ok {
		return &Outcome{
			Kind:       OutcomeNotFound,
			Text:       respChecklistItemNotFound(slots.ItemName, task.Title),
			FailedName: slots.ItemName,
		}, nil
	}

	removed := task.Items[match.Index].Title
	items := append([]models.ChecklistItem{}, task.Items[:match.Index]...)
	items = append(items, task.Items[match.Index+1:]...)
	update := &models.TaskUpdate{ID: task.ID, ProjectID: task.ProjectID, Items: &items}
	if _, err := client.UpdateTask(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}

	return &Outcome{
		Kind:     OutcomeMutationReady,
		Text:     respChecklistItemDeleted(removed, task.Title),
		Mutation: &Mutation{Op: OpUpdate, TaskID: task.ID, ProjectID: task.ProjectID, Update: update},
	}, nil
}

// --- Shared helpers ---

// findTask fetches a fresh task snapshot and fuzzy-resolves a spoken
// name against the active tasks. A nil task means the returned outcome
// (or error) already answers the turn.
func (e *Engine) findTask(ctx context.Context, client TaskClient, name string) (*models.Task, *Outcome, error) {
	active, err := e.activeTasks(ctx, client)
	if err != nil {
		return nil, nil, err
	}

	match, ok := nlp.BestMatch(name, taskTitles(active), e.matchThreshold)
	if !ok {
		return nil, &Outcome{Kind: OutcomeNotFound, Text: respTaskNotFound(name), FailedName: name}, nil
	}
	return &active[match.Index], nil, nil
}

func (e *Engine) activeTasks(ctx context.Context, client TaskClient) ([]models.Task, error) {
	tasks, err := client.AllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	active := tasks[:0:0]
	for _, t := range tasks {
		if t.Active() {
			active = append(active, t)
		}
	}
	return active, nil
}

func taskTitles(tasks []models.Task) []string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}
	return titles
}

func itemTitles(items []models.ChecklistItem) []string {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	return titles
}

func formatStoreDate(t time.Time, hasTime bool) string {
	if !hasTime {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t.UTC().Format(storeDateLayout)
}

func parseStoreDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{parseDateLayout, storeDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
