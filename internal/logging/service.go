package logging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statutedb/lawdiff/internal/pubsub"
)

// Log represents a log entry in the system
type Log struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Message    string
	Attributes map[string]string
}

const (
	EventLogCreated pubsub.EventType = "log_created"
)

// maxEntries bounds the in-memory log buffer.
const maxEntries = 1000

// Service defines the interface for log operations
type Service interface {
	pubsub.Subscriber[Log]

	Create(ctx context.Context, log Log) error
	List(limit int) []Log
	Shutdown()
}

// service keeps recent entries in a bounded in-memory buffer and publishes
// each new entry on its broker.
type service struct {
	mu      sync.RWMutex
	entries []Log
	broker  *pubsub.Broker[Log]
}

var globalLoggingService *service

func InitService() error {
	if globalLoggingService != nil {
		return fmt.Errorf("logging service already initialized")
	}
	globalLoggingService = &service{
		broker: pubsub.NewBroker[Log](),
	}
	return nil
}

func GetService() Service {
	if globalLoggingService == nil {
		panic("logging service not initialized. Call logging.InitService() first.")
	}
	return globalLoggingService
}

func (s *service) Create(ctx context.Context, log Log) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	if log.Level == "" {
		log.Level = "info"
	}

	s.mu.Lock()
	s.entries = append(s.entries, log)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[len(s.entries)-maxEntries:]
	}
	s.mu.Unlock()

	s.broker.Publish(EventLogCreated, log)
	return nil
}

// List returns the most recent entries, newest last. A non-positive limit
// returns everything buffered.
func (s *service) List(limit int) []Log {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Log, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Shutdown() {
	s.broker.Shutdown()
}

func Create(ctx context.Context, log Log) error {
	if globalLoggingService == nil {
		return nil
	}
	return globalLoggingService.Create(ctx, log)
}

func List(limit int) []Log {
	if globalLoggingService == nil {
		return nil
	}
	return globalLoggingService.List(limit)
}

func Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return GetService().Subscribe(ctx)
}
