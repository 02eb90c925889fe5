package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSets(t *testing.T) {
	t.Parallel()

	s := Default()

	if !s.IsAffirmative([]string{"ну", "давай"}) {
		t.Error("Expected 'давай' to be affirmative")
	}
	if !s.IsNegative([]string{"нет"}) {
		t.Error("Expected 'нет' to be negative")
	}
	if s.IsAffirmative([]string{"может", "быть"}) {
		t.Error("Expected 'может быть' to match nothing")
	}
	if !s.IsNameStopWord("Задачу") {
		t.Error("Expected 'Задачу' to be a name stop word")
	}
	if s.IsNameStopWord("купить молоко") {
		t.Error("Expected a real name not to be a stop word")
	}
	if !s.HasChecklistNoun([]string{"добавь", "в", "чеклист"}) {
		t.Error("Expected 'чеклист' to be a checklist noun")
	}
	if !s.HasItemNoun([]string{"пункт", "молоко"}) {
		t.Error("Expected 'пункт' to be an item noun")
	}
}

func TestNegationTokensCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := Default()
	if !s.IsNegative([]string{"НЕТ"}) {
		t.Error("Expected matching to ignore case")
	}
}

func TestLoadOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := "affirmations:\n  - yes\n  - yep\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !s.IsAffirmative([]string{"yep"}) {
		t.Error("Expected overridden affirmation to match")
	}
	if s.IsAffirmative([]string{"да"}) {
		t.Error("Expected default affirmations to be replaced")
	}
	// untouched sets keep defaults
	if !s.IsNegative([]string{"нет"}) {
		t.Error("Expected default negations to survive a partial override")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("affirmations: {not a list"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
