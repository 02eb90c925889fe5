package nlp

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultMatchThreshold is the minimum similarity score (0-100) for a
// fuzzy match to be accepted. Below it resolution reports "not found"
// rather than guessing.
const DefaultMatchThreshold = 60

// Match is an accepted fuzzy-resolution result
type Match struct {
	Index int
	Title string
	Score int
}

// BestMatch resolves a spoken name against candidate titles.
//
// Token-sort similarity keeps the score stable under word reordering and
// minor transcription noise in mixed Russian/English text. An exact
// normalized equality anywhere in the list wins outright, regardless of
// how early a partial title appears; after that a substring hit
// short-circuits to an immediate accept. Ties break toward the
// first-listed candidate so resolution is reproducible.
func BestMatch(query string, titles []string, threshold int) (Match, bool) {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	query = fuzzy.Cleanse(query, false)
	if query == "" || len(titles) == 0 {
		return Match{}, false
	}

	cleansed := make([]string, len(titles))
	for i, title := range titles {
		cleansed[i] = fuzzy.Cleanse(title, false)
		if cleansed[i] == query {
			return Match{Index: i, Title: title, Score: 100}, true
		}
	}

	best := Match{Index: -1}
	for i, title := range titles {
		if cleansed[i] == "" {
			continue
		}
		if strings.Contains(cleansed[i], query) {
			return Match{Index: i, Title: title, Score: 100}, true
		}
		if score := fuzzy.TokenSortRatio(query, cleansed[i]); score > best.Score {
			best = Match{Index: i, Title: title, Score: score}
		}
	}

	if best.Index < 0 || best.Score < threshold {
		return Match{}, false
	}
	return best, true
}

// FindMatches returns up to limit candidates scoring at or above the
// threshold, best first. Order among equal scores follows the input list.
func FindMatches(query string, titles []string, threshold, limit int) []Match {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	cleansedQuery := fuzzy.Cleanse(query, false)
	if cleansedQuery == "" || len(titles) == 0 {
		return nil
	}

	var matches []Match
	for i, title := range titles {
		cleansed := fuzzy.Cleanse(title, false)
		if cleansed == "" {
			continue
		}
		score := fuzzy.TokenSortRatio(cleansedQuery, cleansed)
		if cleansed == cleansedQuery || strings.Contains(cleansed, cleansedQuery) {
			score = 100
		}
		if score >= threshold {
			matches = append(matches, Match{Index: i, Title: title, Score: score})
		}
	}

	// stable selection sort keeps input order for equal scores
	for i := 0; i < len(matches); i++ {
		top := i
		for j := i + 1; j < len(matches); j++ {
			if matches[j].Score > matches[top].Score {
				top = j
			}
		}
		if top != i {
			picked := matches[top]
			copy(matches[i+1:top+1], matches[i:top])
			matches[i] = picked
		}
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
