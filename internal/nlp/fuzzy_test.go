package nlp

import "testing"

func TestBestMatch(t *testing.T) {
	t.Parallel()

	titles := []string{"Купить молоко", "Позвонить маме", "Купить хлеб и молоко"}

	tests := []struct {
		name      string
		query     string
		threshold int
		wantIndex int
		wantOK    bool
	}{
		{
			name:      "exact match",
			query:     "Купить молоко",
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:      "case insensitive exact",
			query:     "купить молоко",
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:      "substring accepts immediately",
			query:     "молоко",
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:      "word reordering survives",
			query:     "молоко купить",
			wantIndex: 0,
			wantOK:    true,
		},
		{
			name:   "unrelated query rejected",
			query:  "сходить в спортзал",
			wantOK: false,
		},
		{
			name:   "empty query rejected",
			query:  "",
			wantOK: false,
		},
		{
			name:      "threshold 100 rejects near misses",
			query:     "позвонить папе",
			threshold: 100,
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, ok := BestMatch(tt.query, titles, tt.threshold)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v (match %+v)", tt.wantOK, ok, match)
			}
			if ok && match.Index != tt.wantIndex {
				t.Errorf("Expected index %d, got %d (%q)", tt.wantIndex, match.Index, match.Title)
			}
		})
	}
}

func TestBestMatchExactWinsOverFuzzy(t *testing.T) {
	t.Parallel()

	titles := []string{"Отчет за квартал черновик", "Отчет"}
	match, ok := BestMatch("отчет", titles, DefaultMatchThreshold)
	if !ok {
		t.Fatal("Expected a match")
	}
	// the exact title wins even when a partial title is listed first
	if match.Index != 1 {
		t.Errorf("Expected index 1, got %d (%q)", match.Index, match.Title)
	}
	if match.Score != 100 {
		t.Errorf("Expected score 100, got %d", match.Score)
	}
}

func TestBestMatchSubstringAfterExactPass(t *testing.T) {
	t.Parallel()

	// with no exact title present, the first substring hit still wins
	titles := []string{"Отчет за квартал черновик", "Отчет за год"}
	match, ok := BestMatch("отчет", titles, DefaultMatchThreshold)
	if !ok {
		t.Fatal("Expected a match")
	}
	if match.Index != 0 {
		t.Errorf("Expected index 0, got %d (%q)", match.Index, match.Title)
	}
	if match.Score != 100 {
		t.Errorf("Expected score 100, got %d", match.Score)
	}
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	t.Parallel()

	if _, ok := BestMatch("задача", nil, 0); ok {
		t.Error("Expected no match against empty candidate list")
	}
	if _, ok := BestMatch("задача", []string{"", "  "}, 0); ok {
		t.Error("Expected no match against blank candidates")
	}
}

func TestFindMatches(t *testing.T) {
	t.Parallel()

	titles := []string{
		"Купить молоко",
		"Сходить в спортзал",
		"Купить молоко и хлеб",
		"Молоко",
	}

	matches := FindMatches("молоко", titles, DefaultMatchThreshold, 0)
	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d: %+v", len(matches), matches)
	}
	// equal perfect scores keep input order
	wantOrder := []int{0, 2, 3}
	for i, want := range wantOrder {
		if matches[i].Index != want {
			t.Errorf("Position %d: expected index %d, got %d", i, want, matches[i].Index)
		}
		if matches[i].Score != 100 {
			t.Errorf("Position %d: expected score 100, got %d", i, matches[i].Score)
		}
	}
}

func TestFindMatchesLimit(t *testing.T) {
	t.Parallel()

	titles := []string{"Молоко", "Молоко купить", "Молоко забрать"}
	matches := FindMatches("молоко", titles, DefaultMatchThreshold, 2)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches after limit, got %d", len(matches))
	}
}
