package command

import (
	"regexp"
	"strconv"
	"strings"

	"taskvoice/internal/nlp"
	"taskvoice/internal/vocab"
)

// reminderSuffixRe matches a reminder clause a greedy free-text name slot
// swallowed from the adjacent reminder grammar ("встреча с напоминанием
// за 30 минут"). Anchored at the string end so legitimate mid-name text
// survives.
var reminderSuffixRe = regexp.MustCompile(`\s+(?:с\s+)?напомина\S*(?:\s+за\b.*)?$`)

// Normalizer turns raw slot bags into NormalizedSlots
type Normalizer struct {
	vocab *vocab.Sets
}

// NewNormalizer creates a normalizer over the given vocabularies
func NewNormalizer(v *vocab.Sets) *Normalizer {
	if v == nil {
		v = vocab.Default()
	}
	return &Normalizer{vocab: v}
}

// Normalize derives the typed slot record for one command. It never
// fails: malformed values degrade individual fields to absent and the
// per-intent resolution decides whether an absent field is fatal.
func (n *Normalizer) Normalize(cmd *RawCommand) *NormalizedSlots {
	slots := &NormalizedSlots{
		Query:       n.text(cmd, SlotQuery),
		ParentName:  n.text(cmd, SlotParentName),
		SubtaskName: n.text(cmd, SlotSubtaskName),
		ItemName:    n.text(cmd, SlotItemName),
		Project:     n.text(cmd, SlotProject),
		Priority:    n.text(cmd, SlotPriority),
		NewPriority: n.text(cmd, SlotNewPriority),

		RecFreq:     n.text(cmd, SlotRecFreq),
		RecInterval: intOrZero(cmd.Slots[SlotRecInterval]),
		RecMonthDay: intOrZero(cmd.Slots[SlotRecMonthDay]),

		ReminderValue: intOrNil(cmd.Slots[SlotReminderValue]),
		ReminderUnit:  n.text(cmd, SlotReminderUnit),

		RemoveRecurrence: boolValue(cmd.Slots[SlotRemoveRec]),
		RemoveReminder:   boolValue(cmd.Slots[SlotRemoveRem]),
	}

	if raw, ok := cmd.Slots[SlotDate].(map[string]any); ok {
		slots.Date = nlp.DateSlotFromMap(raw)
		slots.HasDate = !slots.Date.Empty()
	}
	if raw, ok := cmd.Slots[SlotNewDate].(map[string]any); ok {
		slots.NewDate = nlp.DateSlotFromMap(raw)
	}

	slots.TaskName = n.taskName(cmd, slots)
	return slots
}

// taskName cleans the name slot: trim and casefold, strip an
// over-captured reminder suffix, and reject bare grammar stop-words.
func (n *Normalizer) taskName(cmd *RawCommand, slots *NormalizedSlots) string {
	name := n.text(cmd, SlotTaskName)
	if name == "" {
		return ""
	}

	// Strip only when the reminder unit was independently captured;
	// otherwise the "suffix" may be legitimate name text.
	if slots.ReminderUnit != "" {
		name = strings.TrimSpace(reminderSuffixRe.ReplaceAllString(name, ""))
	}

	if name == "" || n.vocab.IsNameStopWord(name) {
		return ""
	}
	return name
}

func (n *Normalizer) text(cmd *RawCommand, slot string) string {
	s, ok := cmd.Slots[slot].(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// intOrNil coerces a numeric slot, keeping the zero/absent distinction.
// Non-numeric garbage normalizes to absent, never raises.
func intOrNil(v any) *int {
	switch x := v.(type) {
	case int:
		return &x
	case int64:
		n := int(x)
		return &n
	case float64:
		n := int(x)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return &n
		}
	}
	return nil
}

func intOrZero(v any) int {
	if p := intOrNil(v); p != nil {
		return *p
	}
	return 0
}

func boolValue(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1" || x == "yes"
	}
	return false
}
