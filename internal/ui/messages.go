package ui

import (
	"searchbox/internal/domain"
)

// debounceMsg fires when the input has been idle for the debounce interval
type debounceMsg struct {
	tag   int
	query string
}

// suggestionsMsg carries merged suggestions for a query
type suggestionsMsg struct {
	seq   int
	query string
	items []domain.Suggestion
}

// historyMsg carries the history list
type historyMsg struct {
	seq   int
	items []string
	err   error
}

// historyRemovedMsg is the result of removing one history entry
type historyRemovedMsg struct {
	query string
	err   error
}

// historyClearedMsg is the result of clearing history
type historyClearedMsg struct {
	err error
}

// historyPagerMsg is sent when the history pager exits
type historyPagerMsg struct {
	err error
}
