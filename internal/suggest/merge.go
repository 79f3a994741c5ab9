package suggest

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"searchbox/internal/api"
	"searchbox/internal/domain"
)

// DefaultLimit caps how many suggestions are rendered
const DefaultLimit = 8

var pinyinRE = regexp.MustCompile(`^[A-Za-z]+$`)

// IsPinyinLike reports whether text is made of ASCII letters only,
// which the backend treats as possible pinyin input.
func IsPinyinLike(text string) bool {
	return pinyinRE.MatchString(text)
}

// Merge combines suggestion sources in fixed priority order: correction,
// then completion items, then traditional items. Entries are deduplicated
// case-insensitively on trimmed text, keeping the first occurrence, and the
// result holds at most limit entries.
func Merge(correction string, completions []api.Completion, traditional []string, limit int) []domain.Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	fold := cases.Fold()
	seen := make(map[string]struct{})
	out := make([]domain.Suggestion, 0, limit)

	add := func(s domain.Suggestion) bool {
		if len(out) >= limit {
			return false
		}
		text := strings.TrimSpace(s.Text)
		if text == "" {
			return true
		}
		key := fold.String(text)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		s.Text = text
		s.Icon = domain.IconFor(s.Type)
		out = append(out, s)
		return true
	}

	add(domain.Suggestion{
		Text:   correction,
		Type:   domain.TypeCorrection,
		Source: domain.SourceTraditional,
	})

	for _, c := range completions {
		var score float64
		if c.Score != nil {
			score = *c.Score
		}
		if !add(domain.Suggestion{
			Text:   c.Text,
			Type:   domain.TypeESCompletion,
			Source: domain.SourceElasticsearch,
			Score:  score,
		}) {
			return out
		}
	}

	for _, t := range traditional {
		if !add(domain.Suggestion{
			Text:   t,
			Type:   domain.TypeSuggestion,
			Source: domain.SourceTraditional,
		}) {
			return out
		}
	}

	return out
}
