package events

import (
	"context"
	"sync"
	"time"

	"cricscore/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBallRecorded      EventType = "ball_recorded"
	EventTypeWicketFallen      EventType = "wicket_fallen"
	EventTypeMilestoneAchieved EventType = "milestone_achieved"
	EventTypeInningsCompleted  EventType = "innings_completed"
	EventTypeMatchStatusChange EventType = "match_status_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BallRecordedEvent carries the updated snapshots after a delivery is applied.
// Overlay and stream consumers subscribe to this to refresh live scores.
type BallRecordedEvent struct {
	Ball    *models.Ball
	Innings *models.Innings
	Match   *models.Match
}

func (e BallRecordedEvent) Type() EventType {
	return EventTypeBallRecorded
}

// WicketFallenEvent represents a dismissal
type WicketFallenEvent struct {
	InningsID    int64
	MatchID      int64
	PlayerOutID  int64
	BowlerID     int64
	WicketType   string
	TotalWickets int
}

func (e WicketFallenEvent) Type() EventType {
	return EventTypeWicketFallen
}

// MilestoneAchievedEvent represents a newly recorded player milestone
type MilestoneAchievedEvent struct {
	PlayerID       int64
	MatchID        int64
	MilestoneType  models.MilestoneType
	MilestoneValue int
	AchievedAt     time.Time
}

func (e MilestoneAchievedEvent) Type() EventType {
	return EventTypeMilestoneAchieved
}

// InningsCompletedEvent represents an innings closing with its final aggregate
type InningsCompletedEvent struct {
	InningsID     int64
	MatchID       int64
	InningsNumber int
	TotalRuns     int
	TotalWickets  int
	TotalOvers    float64
}

func (e InningsCompletedEvent) Type() EventType {
	return EventTypeInningsCompleted
}

// MatchStatusChangeEvent represents a match lifecycle transition
type MatchStatusChangeEvent struct {
	MatchID   int64
	OldStatus models.MatchStatus
	NewStatus models.MatchStatus
}

func (e MatchStatusChangeEvent) Type() EventType {
	return EventTypeMatchStatusChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the scoring path
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and flushes
// them to the underlying bus only after the transaction commits, so consumers
// never see state that was rolled back.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
