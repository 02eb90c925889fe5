package dialog

import (
	"regexp"
	"strings"

	"taskvoice/internal/command"
	"taskvoice/internal/vocab"
)

// Reconciler corrects a known NLU failure mode: "добавь молоко в чеклист
// задачи список покупок" is frequently classified as task creation, with
// the whole item-and-checklist phrase swallowed into the would-be task
// name. When a create_task command carries both a checklist noun and an
// item noun, the reconciler re-parses the raw text with a fixed phrase
// pattern and, on success, re-dispatches it as checklist-item addition.
//
// It is strictly additive: without both tell-tale nouns, or when the
// secondary parse fails, the original classification stands.
type Reconciler struct {
	vocab   *vocab.Sets
	pattern *regexp.Regexp
}

// NewReconciler builds a reconciler whose phrase pattern matches the
// configured checklist-noun vocabulary.
func NewReconciler(v *vocab.Sets) *Reconciler {
	if v == nil {
		v = vocab.Default()
	}

	// verb + item-name + preposition + checklist-noun [+ task words] + target-task-name
	pattern := regexp.MustCompile(
		`(?i)^\s*(?:добавь|добавить|внеси|внести|запиши|записать)\s+` +
			`(.+?)\s+в\s+(?:` + alternatives(v.ChecklistNouns) + `)` +
			`(?:\s+(?:задачи|задаче|задачу|дела))?\s+(.+?)\s*$`,
	)
	return &Reconciler{vocab: v, pattern: pattern}
}

// Reconcile returns the command to dispatch. A re-targeted command is a
// fresh RawCommand with synthesized slots; otherwise the input is
// returned unchanged.
func (r *Reconciler) Reconcile(cmd *command.RawCommand) *command.RawCommand {
	if cmd.Intent != IntentCreateTask {
		return cmd
	}
	if !r.vocab.HasChecklistNoun(cmd.Tokens) || !r.vocab.HasItemNoun(cmd.Tokens) {
		return cmd
	}

	m := r.pattern.FindStringSubmatch(cmd.Text)
	if m == nil {
		return cmd
	}

	item := r.stripLeadingItemNoun(strings.TrimSpace(m[1]))
	target := strings.TrimSpace(m[2])
	if item == "" || target == "" {
		return cmd
	}

	return &command.RawCommand{
		Text:   cmd.Text,
		Tokens: cmd.Tokens,
		Intent: IntentAddChecklistItem,
		Slots: map[string]any{
			command.SlotItemName: item,
			command.SlotTaskName: target,
		},
	}
}

// stripLeadingItemNoun drops a bare item noun the phrase pattern caught
// in front of the actual item name ("пункт молоко" → "молоко").
func (r *Reconciler) stripLeadingItemNoun(item string) string {
	first, rest, ok := strings.Cut(item, " ")
	if !ok {
		return item
	}
	if r.vocab.HasItemNoun([]string{first}) {
		return strings.TrimSpace(rest)
	}
	return item
}

func alternatives(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
	}
	return strings.Join(quoted, "|")
}
