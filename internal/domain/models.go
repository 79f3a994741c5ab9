package domain

// SuggestionType identifies how a suggestion was produced
type SuggestionType string

const (
	TypeCorrection   SuggestionType = "correction"
	TypeSuggestion   SuggestionType = "suggestion"
	TypeESCompletion SuggestionType = "es-completion"
)

// Source identifies the backend a suggestion came from
type Source string

const (
	SourceTraditional   Source = "traditional"
	SourceElasticsearch Source = "elasticsearch"
)

// Suggestion is a single row in the suggestion panel
type Suggestion struct {
	Text   string
	Type   SuggestionType
	Icon   string
	Source Source
	Score  float64 // 0 when the backend did not send one
}

// IconFor returns the glyph shown next to a suggestion of the given type
func IconFor(t SuggestionType) string {
	switch t {
	case TypeCorrection:
		return "✎"
	case TypeESCompletion:
		return "⚡"
	default:
		return "›"
	}
}

// SearchType is the hidden mode field submitted with a query
type SearchType string

const (
	SearchWebpage  SearchType = "webpage"
	SearchDocument SearchType = "document"
)

// ParseSearchType maps a config or flag value to a SearchType, defaulting to webpage
func ParseSearchType(s string) SearchType {
	if SearchType(s) == SearchDocument {
		return SearchDocument
	}
	return SearchWebpage
}

// Toggle flips between webpage and document search
func (t SearchType) Toggle() SearchType {
	if t == SearchDocument {
		return SearchWebpage
	}
	return SearchDocument
}

// Label is the visible name of the mode
func (t SearchType) Label() string {
	if t == SearchDocument {
		return "Document search"
	}
	return "Web search"
}

// Placeholder is the input hint for the mode
func (t SearchType) Placeholder() string {
	if t == SearchDocument {
		return "Search PDF, Word, Excel documents..."
	}
	return "Type a search query..."
}

// WidgetState is the transient state of the search box.
// SelectedIndex is -1 or a valid index into the rendered items.
type WidgetState struct {
	LastQuery      string
	SelectedIndex  int
	ShowingHistory bool
	Suggestions    []Suggestion
	History        []string
}

// ItemCount returns the number of selectable rows currently rendered
func (s *WidgetState) ItemCount() int {
	if s.ShowingHistory {
		return len(s.History)
	}
	return len(s.Suggestions)
}

// ItemText returns the text of the rendered row at index i
func (s *WidgetState) ItemText(i int) (string, bool) {
	if i < 0 || i >= s.ItemCount() {
		return "", false
	}
	if s.ShowingHistory {
		return s.History[i], true
	}
	return s.Suggestions[i].Text, true
}

// MoveSelection shifts SelectedIndex by delta, clamped to [-1, ItemCount()-1]
func (s *WidgetState) MoveSelection(delta int) {
	idx := s.SelectedIndex + delta
	if last := s.ItemCount() - 1; idx > last {
		idx = last
	}
	if idx < -1 {
		idx = -1
	}
	s.SelectedIndex = idx
}
