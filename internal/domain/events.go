package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSuggestionsFetched EventType = "SuggestionsFetched"
	EventHistoryLoaded      EventType = "HistoryLoaded"
	EventHistoryCleared     EventType = "HistoryCleared"
	EventHistoryItemRemoved EventType = "HistoryItemRemoved"
	EventSearchSubmitted    EventType = "SearchSubmitted"
	EventSearchTypeToggled  EventType = "SearchTypeToggled"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SuggestionsFetchedEvent is emitted when a suggestion list is rendered
type SuggestionsFetchedEvent struct {
	Query string
	Count int
}

func (e SuggestionsFetchedEvent) Type() EventType { return EventSuggestionsFetched }

// HistoryLoadedEvent is emitted when the history panel is rendered
type HistoryLoadedEvent struct {
	Count int
}

func (e HistoryLoadedEvent) Type() EventType { return EventHistoryLoaded }

// HistoryClearedEvent is emitted after the backend accepted a clear
type HistoryClearedEvent struct{}

func (e HistoryClearedEvent) Type() EventType { return EventHistoryCleared }

// HistoryItemRemovedEvent is emitted after the backend accepted a removal
type HistoryItemRemovedEvent struct {
	Query string
}

func (e HistoryItemRemovedEvent) Type() EventType { return EventHistoryItemRemoved }

// SearchSubmittedEvent is emitted when the user submits a query
type SearchSubmittedEvent struct {
	Query      string
	SearchType SearchType
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// SearchTypeToggledEvent is emitted when the mode flips
type SearchTypeToggledEvent struct {
	SearchType SearchType
}

func (e SearchTypeToggledEvent) Type() EventType { return EventSearchTypeToggled }

// ErrorEvent is emitted when a backend call fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	BaseURL    string
	SearchType SearchType
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
