package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchCommitted   EventType = "SearchCommitted"
	EventBatchLoaded       EventType = "BatchLoaded"
	EventFetchFailed       EventType = "FetchFailed"
	EventDependencyAdded   EventType = "DependencyAdded"
	EventDependencyRemoved EventType = "DependencyRemoved"
	EventInstallStarted    EventType = "InstallStarted"
	EventInstallFinished   EventType = "InstallFinished"
	EventFavouriteAdded    EventType = "FavouriteAdded"
	EventLinkOpened        EventType = "LinkOpened"
	EventError             EventType = "Error"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchCommittedEvent is emitted when the user commits a new query
type SearchCommittedEvent struct {
	Query     string
	BatchSize int
}

func (e SearchCommittedEvent) Type() EventType { return EventSearchCommitted }

// BatchLoadedEvent is emitted when a fetched batch has been folded into the results
type BatchLoadedEvent struct {
	Query     string
	Batch     int
	Items     int
	Exhausted bool
}

func (e BatchLoadedEvent) Type() EventType { return EventBatchLoaded }

// FetchFailedEvent is emitted when a background fetch returns an error
type FetchFailedEvent struct {
	Query string
	Batch int
	Err   error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// DependencyAddedEvent is emitted after a crate was written to the manifest
type DependencyAddedEvent struct {
	Manifest string
	Name     string
	Version  string
}

func (e DependencyAddedEvent) Type() EventType { return EventDependencyAdded }

// DependencyRemovedEvent is emitted after a crate was removed from the manifest
type DependencyRemovedEvent struct {
	Manifest string
	Name     string
}

func (e DependencyRemovedEvent) Type() EventType { return EventDependencyRemoved }

// InstallStartedEvent is emitted when a `cargo install` process was spawned
type InstallStartedEvent struct {
	Name string
	PID  int
}

func (e InstallStartedEvent) Type() EventType { return EventInstallStarted }

// InstallFinishedEvent is emitted when a spawned install process exits
type InstallFinishedEvent struct {
	Name   string
	Err    error
	Output string
}

func (e InstallFinishedEvent) Type() EventType { return EventInstallFinished }

// FavouriteAddedEvent is emitted when a crate is appended to the favourites
type FavouriteAddedEvent struct {
	Name string
}

func (e FavouriteAddedEvent) Type() EventType { return EventFavouriteAdded }

// LinkOpenedEvent is emitted after an external URL was handed to the opener
type LinkOpenedEvent struct {
	URL string
}

func (e LinkOpenedEvent) Type() EventType { return EventLinkOpened }

// ErrorEvent is emitted when a collaborator call fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted after the configuration was written to disk
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
