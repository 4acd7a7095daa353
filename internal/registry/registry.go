package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry holds an ordered sequence of subscriptions.
type Registry struct {
	mu   sync.RWMutex
	subs []*Subscription

	name string
	log  zerolog.Logger
}

// New constructs an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		name: defaultName,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("registry", r.name).Logger()
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// Subscribe registers cb for event. It returns nil without changing anything
// when the pair is already registered or cb is nil.
func (r *Registry) Subscribe(event Event, cb Callback) *Subscription {
	if cb == nil {
		r.log.Warn().Str("event", string(event)).Msg("subscribe with nil callback ignored")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.matches(event, cb) {
			r.log.Debug().Str("event", string(event)).Str("callback", callbackName(cb)).Msg("duplicate subscription ignored")
			return nil
		}
	}
	sub := &Subscription{
		ID:       uuid.New().String(),
		Event:    event,
		Callback: cb,
		Created:  time.Now(),
	}
	r.subs = append(r.subs, sub)
	subscriptionsGauge.WithLabelValues(r.name).Inc()
	r.log.Debug().Str("event", string(event)).Str("id", sub.ID).Str("callback", callbackName(cb)).Msg("subscribed")
	return sub
}

// On is an alias of Subscribe.
func (r *Registry) On(event Event, cb Callback) *Subscription {
	return r.Subscribe(event, cb)
}

// Unsubscribe removes every subscription matching the (event, cb) pair.
// Removing an absent pair is a no-op.
func (r *Registry) Unsubscribe(event Event, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.removeLocked(func(s *Subscription) bool { return s.matches(event, cb) })
	if removed > 0 {
		r.log.Debug().Str("event", string(event)).Int("removed", removed).Msg("unsubscribed")
	}
}

// Remove removes the subscription identified by sub.ID. It reports whether a
// subscription was removed.
func (r *Registry) Remove(sub *Subscription) bool {
	if sub == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.removeLocked(func(s *Subscription) bool { return s.ID == sub.ID })
	if removed > 0 {
		r.log.Debug().Str("event", string(sub.Event)).Str("id", sub.ID).Msg("subscription removed")
	}
	return removed > 0
}

// removeLocked filters r.subs into a fresh slice so snapshots handed out
// earlier are never written to. Caller must hold r.mu.
func (r *Registry) removeLocked(match func(*Subscription) bool) int {
	kept := make([]*Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		if !match(s) {
			kept = append(kept, s)
		}
	}
	removed := len(r.subs) - len(kept)
	if removed == 0 {
		return 0
	}
	r.subs = kept
	subscriptionsGauge.WithLabelValues(r.name).Sub(float64(removed))
	return removed
}

// Len returns the number of subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Subscriptions returns a copy of the subscription sequence in registration
// order.
func (r *Registry) Subscriptions() []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Subscription, len(r.subs))
	copy(out, r.subs)
	return out
}

// Events returns the distinct subscribed events in first-registration order.
func (r *Registry) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[Event]struct{}, len(r.subs))
	var out []Event
	for _, s := range r.subs {
		if _, ok := seen[s.Event]; ok {
			continue
		}
		seen[s.Event] = struct{}{}
		out = append(out, s.Event)
	}
	return out
}

// Listeners returns the number of subscriptions for event.
func (r *Registry) Listeners(event Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.subs {
		if s.Event == event {
			n++
		}
	}
	return n
}
