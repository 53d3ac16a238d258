package eventbus

import (
	"runtime/debug"
	"sync"

	"cratui/internal/domain"
	"cratui/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

type (
	SearchCommittedEvent   = domain.SearchCommittedEvent
	BatchLoadedEvent       = domain.BatchLoadedEvent
	FetchFailedEvent       = domain.FetchFailedEvent
	DependencyAddedEvent   = domain.DependencyAddedEvent
	DependencyRemovedEvent = domain.DependencyRemovedEvent
	InstallStartedEvent    = domain.InstallStartedEvent
	InstallFinishedEvent   = domain.InstallFinishedEvent
	FavouriteAddedEvent    = domain.FavouriteAddedEvent
	LinkOpenedEvent        = domain.LinkOpenedEvent
	ErrorEvent             = domain.ErrorEvent
	ConfigSavedEvent       = domain.ConfigSavedEvent
)

// Event type constants
const (
	EventSearchCommitted   = domain.EventSearchCommitted
	EventBatchLoaded       = domain.EventBatchLoaded
	EventFetchFailed       = domain.EventFetchFailed
	EventDependencyAdded   = domain.EventDependencyAdded
	EventDependencyRemoved = domain.EventDependencyRemoved
	EventInstallStarted    = domain.EventInstallStarted
	EventInstallFinished   = domain.EventInstallFinished
	EventFavouriteAdded    = domain.EventFavouriteAdded
	EventLinkOpened        = domain.EventLinkOpened
	EventError             = domain.EventError
	EventConfigSaved       = domain.EventConfigSaved
)

const queueSize = 256

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	events   chan DomainEvent
	quit     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	logger   *logging.Logger
}

// New creates a new event bus. A nil logger discards bus diagnostics.
func New(logger *logging.Logger) EventBus {
	if logger == nil {
		logger = logging.NopLogger()
	}
	b := &bus{
		handlers: make(map[EventType][]subscription),
		events:   make(chan DomainEvent, queueSize),
		quit:     make(chan struct{}),
		logger:   logger.With("component", "eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. It never blocks the caller;
// events are dropped when the queue is full or the bus is closed.
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		return
	default:
	}

	b.logger.Debug("publishing event", "type", string(event.Type()))

	select {
	case b.events <- event:
	default:
		b.logger.Warn("event queue full, dropping event", "type", string(event.Type()))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after delivering already queued events.
func (b *bus) Close() {
	b.once.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.events:
			b.deliver(event)
		case <-b.quit:
			for {
				select {
				case event := <-b.events:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

// deliver calls every handler for the event in order on the dispatcher
// goroutine, so handlers observe events in publish order.
func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic",
						"type", string(event.Type()),
						"panic", r,
						"stack", string(debug.Stack()))
				}
			}()
			s.handler(event)
		}()
	}
}
