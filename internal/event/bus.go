package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/tessera/internal/event/topic"
)

// Subscription identifies a registered handler.
type Subscription struct {
	ID      uint64
	Pattern topic.Topic
}

type subscriber struct {
	Subscription
	handler  Handler
	priority int
	once     bool
	filter   func(Event) bool
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscriber)

// WithPriority orders delivery: higher priorities run first, equal
// priorities in subscription order.
func WithPriority(p int) SubscribeOption {
	return func(s *subscriber) { s.priority = p }
}

// Once removes the subscription after its first successful delivery.
func Once() SubscribeOption {
	return func(s *subscriber) { s.once = true }
}

// WithFilter skips events for which fn returns false.
func WithFilter(fn func(Event) bool) SubscribeOption {
	return func(s *subscriber) { s.filter = fn }
}

// Stats counts bus activity.
type Stats struct {
	Published uint64
	Delivered uint64
	Errors    uint64
	Panics    uint64
}

// Bus delivers events synchronously to matching subscribers. It is safe
// for concurrent use; handlers may subscribe and unsubscribe.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscriber
	nextID uint64

	published atomic.Uint64
	delivered atomic.Uint64
	errs      atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler, opts ...SubscribeOption) (Subscription, error) {
	if !pattern.IsValid() {
		return Subscription{}, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if h == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s := &subscriber{Subscription: Subscription{ID: b.nextID, Pattern: pattern}, handler: h}
	for _, opt := range opts {
		opt(s)
	}
	// Stable insert keeps subscription order within a priority.
	i := len(b.subs)
	for i > 0 && b.subs[i-1].priority < s.priority {
		i--
	}
	b.subs = slices.Insert(b.subs, i, s)
	return s.Subscription, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.ID == sub.ID {
			b.subs = slices.Delete(b.subs, i, i+1)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Count returns the number of subscriptions.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers ev to every matching subscriber before returning.
// Handler errors and panics are joined into the returned error.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() || ev.Topic.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Topic)
	}
	b.published.Add(1)

	b.mu.RLock()
	var targets []*subscriber
	for _, s := range b.subs {
		if ev.Topic.Matches(s.Pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if s.filter != nil && !s.filter(ev) {
			continue
		}
		if err := b.deliver(ctx, s, ev); err != nil {
			errs = append(errs, &HandlerError{SubscriptionID: s.ID, Topic: string(ev.Topic), Err: err})
			continue
		}
		b.delivered.Add(1)
		if s.once {
			_ = b.Unsubscribe(s.Subscription)
		}
	}
	return errors.Join(errs...)
}

// PublishPayload is shorthand for Publish(ctx, New(t, payload, source)).
func (b *Bus) PublishPayload(ctx context.Context, t topic.Topic, payload any, source string) error {
	return b.Publish(ctx, New(t, payload, source))
}

func (b *Bus) deliver(ctx context.Context, s *subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	if err = s.handler(ctx, ev); err != nil {
		b.errs.Add(1)
	}
	return err
}

// Stats returns activity counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Errors:    b.errs.Load(),
		Panics:    b.panics.Load(),
	}
}
