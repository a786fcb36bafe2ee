package pubsub

import (
	"context"
	"sync"
	"time"
)

const subscriberBufferSize = 64

// slowSubscriberTimeout bounds how long a publish will wait on a subscriber
// whose buffer is full before dropping the event for it.
const slowSubscriberTimeout = 2 * time.Second

// Broker fans events out to any number of subscribers. Publishing never
// blocks the caller: a subscriber that falls behind gets its events
// delivered asynchronously and may lose them after a timeout.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]context.CancelFunc
	closed bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]context.CancelFunc),
	}
}

// Subscribe registers a new subscriber. The returned channel is closed when
// ctx is cancelled or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	subCtx, cancel := context.WithCancel(ctx)
	ch := make(chan Event[T], subscriberBufferSize)
	b.subs[ch] = cancel

	go func() {
		<-subCtx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			close(ch)
			delete(b.subs, ch)
		}
	}()

	return ch
}

// Publish delivers an event to every current subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{Type: eventType, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Buffer full. Hand off to a goroutine so the publisher is
			// never blocked by one slow subscriber.
			go func(ch chan Event[T]) {
				b.mu.RLock()
				closed := b.closed
				b.mu.RUnlock()
				if closed {
					return
				}
				select {
				case ch <- event:
				case <-time.After(slowSubscriberTimeout):
				}
			}(ch)
		}
	}
}

// Shutdown cancels and closes every subscription.
func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch, cancel := range b.subs {
		cancel()
		close(ch)
		delete(b.subs, ch)
	}
}

// GetSubscriberCount returns the number of active subscriptions.
func (b *Broker[T]) GetSubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
