// Package vocab holds the closed word sets the dialog engine matches
// utterance tokens against. Defaults are compiled in; a deployment can
// override any set with a YAML file.
package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sets are the closed vocabularies for token matching. All matching is
// case-insensitive; unmapped input is a first-class "unknown" result,
// never an error.
type Sets struct {
	Affirmations   []string `yaml:"affirmations"`
	Negations      []string `yaml:"negations"`
	NameStopWords  []string `yaml:"name_stop_words"`
	ChecklistNouns []string `yaml:"checklist_nouns"`
	ItemNouns      []string `yaml:"item_nouns"`

	affirmations   map[string]struct{}
	negations      map[string]struct{}
	nameStopWords  map[string]struct{}
	checklistNouns map[string]struct{}
	itemNouns      map[string]struct{}
}

// Default returns the compiled-in Russian vocabularies
func Default() *Sets {
	s := &Sets{
		Affirmations: []string{
			"да", "давай", "конечно", "удаляй", "удали", "подтверждаю", "ага", "угу", "точно",
		},
		Negations: []string{
			"нет", "не", "отмена", "отменить", "отмени", "стоп",
		},
		NameStopWords: []string{
			"задача", "задачу", "задачи", "напоминание", "напоминания", "дело", "дела",
		},
		ChecklistNouns: []string{
			"чеклист", "чеклиста", "чеклисте", "чек-лист", "список", "списка", "списке",
		},
		ItemNouns: []string{
			"пункт", "пункта", "пункты", "элемент",
		},
	}
	s.index()
	return s
}

// Load reads a YAML override file on top of the defaults. Sets absent
// from the file keep their default contents.
func Load(path string) (*Sets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var override Sets
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	s := Default()
	if len(override.Affirmations) > 0 {
		s.Affirmations = override.Affirmations
	}
	if len(override.Negations) > 0 {
		s.Negations = override.Negations
	}
	if len(override.NameStopWords) > 0 {
		s.NameStopWords = override.NameStopWords
	}
	if len(override.ChecklistNouns) > 0 {
		s.ChecklistNouns = override.ChecklistNouns
	}
	if len(override.ItemNouns) > 0 {
		s.ItemNouns = override.ItemNouns
	}
	s.index()
	return s, nil
}

func (s *Sets) index() {
	s.affirmations = toSet(s.Affirmations)
	s.negations = toSet(s.Negations)
	s.nameStopWords = toSet(s.NameStopWords)
	s.checklistNouns = toSet(s.ChecklistNouns)
	s.itemNouns = toSet(s.ItemNouns)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}

// IsAffirmative reports whether any token is in the affirmative set
func (s *Sets) IsAffirmative(tokens []string) bool {
	return s.anyIn(tokens, s.affirmations)
}

// IsNegative reports whether any token is in the negative set.
// Callers check negation before affirmation so "нет, не удаляй" cancels.
func (s *Sets) IsNegative(tokens []string) bool {
	return s.anyIn(tokens, s.negations)
}

// IsNameStopWord reports whether a normalized task-name value is itself a
// bare grammar word ("задачу") rather than a real name.
func (s *Sets) IsNameStopWord(name string) bool {
	_, ok := s.nameStopWords[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// HasChecklistNoun reports whether any token names a checklist
func (s *Sets) HasChecklistNoun(tokens []string) bool {
	return s.anyIn(tokens, s.checklistNouns)
}

// HasItemNoun reports whether any token names a checklist item
func (s *Sets) HasItemNoun(tokens []string) bool {
	return s.anyIn(tokens, s.itemNouns)
}

func (s *Sets) anyIn(tokens []string, set map[string]struct{}) bool {
	for _, tok := range tokens {
		if _, ok := set[strings.ToLower(tok)]; ok {
			return true
		}
	}
	return false
}
