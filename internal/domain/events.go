package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryIssued         EventType = "QueryIssued"
	EventSuggestionsReceived EventType = "SuggestionsReceived"
	EventFetchFailed         EventType = "FetchFailed"
	EventSelectionCommitted  EventType = "SelectionCommitted"
	EventInputSubmitted      EventType = "InputSubmitted"
	EventCorpusReloaded      EventType = "CorpusReloaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryIssuedEvent is emitted when a debounced query is sent to the source
type QueryIssuedEvent struct {
	Query string
	Seq   uint64
}

func (e QueryIssuedEvent) Type() EventType { return EventQueryIssued }

// SuggestionsReceivedEvent is emitted when fresh results are applied to the list
type SuggestionsReceivedEvent struct {
	Query string
	Count int
	Mode  DisplayMode
}

func (e SuggestionsReceivedEvent) Type() EventType { return EventSuggestionsReceived }

// FetchFailedEvent is emitted when the source fails; the list degrades to empty
type FetchFailedEvent struct {
	Query string
	Err   error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// SelectionCommittedEvent is emitted when a suggestion is chosen (Enter or click)
type SelectionCommittedEvent struct {
	Query      string
	Suggestion Suggestion
	Index      int
}

func (e SelectionCommittedEvent) Type() EventType { return EventSelectionCommitted }

// InputSubmittedEvent is emitted when Enter is pressed with no active suggestion
type InputSubmittedEvent struct {
	Text string
}

func (e InputSubmittedEvent) Type() EventType { return EventInputSubmitted }

// CorpusReloadedEvent is emitted when the demo backend reloads its corpus
type CorpusReloadedEvent struct {
	Path    string
	Entries int
	Err     error
}

func (e CorpusReloadedEvent) Type() EventType { return EventCorpusReloaded }
