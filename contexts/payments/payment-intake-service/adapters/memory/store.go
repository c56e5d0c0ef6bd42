package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"
)

// Store is an in-memory ledger implementing the payment-intake ports for
// local runtime and tests. It is not intended as production persistence.
// It also implements Clock and IDGenerator so tests get a controllable
// time source and predictable row keys from one fixture.
type Store struct {
	mu         sync.RWMutex
	events     map[string][]entities.PaymentEvent
	order      []entities.PaymentEvent
	rowKeys    map[string]struct{}
	sequence   uint64
	now        time.Time
	failAppend error
}

func NewStore() *Store {
	return &Store{
		events:  make(map[string][]entities.PaymentEvent),
		rowKeys: make(map[string]struct{}),
		now:     time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Store) AppendEvent(_ context.Context, event entities.PaymentEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAppend != nil {
		return s.failAppend
	}
	if _, exists := s.rowKeys[event.RowKey]; exists {
		return domainerrors.ErrDuplicateEventRow
	}

	s.rowKeys[event.RowKey] = struct{}{}
	s.events[event.PartitionKey] = append(s.events[event.PartitionKey], event)
	s.order = append(s.order, event)
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("row-%06d", s.sequence), nil
}

// FailAppendsWith makes every subsequent append return err; nil restores
// normal behavior.
func (s *Store) FailAppendsWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppend = err
}

// SetNow pins the clock for deterministic event times.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// EventsForTransaction returns the append-ordered events sharing one
// partition key.
func (s *Store) EventsForTransaction(transactionID string) []entities.PaymentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.PaymentEvent(nil), s.events[transactionID]...)
}

// AllEvents returns every appended event in global append order.
func (s *Store) AllEvents() []entities.PaymentEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.PaymentEvent(nil), s.order...)
}
