package sink

import (
	"context"
	"sync"
	"time"

	"pubsubd/internal/registry"
)

const defaultRecordLimit = 1000

// Notification is one recorded delivery.
type Notification struct {
	Event registry.Event
	Args  registry.Args
	At    time.Time
}

// Recorder stores the most recent notifications in memory. It is used by tests
// and by the `record` sink of the daemon.
type Recorder struct {
	mu    sync.Mutex
	limit int
	// ring buffer: once full, next is the oldest entry and the slot to overwrite
	events []Notification
	next   int
	bound  map[registry.Event]registry.Callback
}

// NewRecorder returns a Recorder keeping at most limit entries (0 = 1000).
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = defaultRecordLimit
	}
	return &Recorder{limit: limit, bound: map[registry.Event]registry.Callback{}}
}

// For returns the callback that records notifications for event. Repeated
// calls with the same event return the same callback, so subscribing it twice
// is a no-op.
func (p *Recorder) For(event registry.Event) registry.Callback {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cb, ok := p.bound[event]; ok {
		return cb
	}
	cb := &recordCallback{rec: p, event: event}
	p.bound[event] = cb
	return cb
}

func (p *Recorder) record(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) < p.limit {
		p.events = append(p.events, n)
		return
	}
	p.events[p.next] = n
	p.next = (p.next + 1) % p.limit
}

// Notifications returns a copy of the recorded notifications, oldest first.
func (p *Recorder) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, 0, len(p.events))
	out = append(out, p.events[p.next:]...)
	return append(out, p.events[:p.next]...)
}

// Reset drops all recorded notifications.
func (p *Recorder) Reset() {
	p.mu.Lock()
	p.events = nil
	p.next = 0
	p.mu.Unlock()
}

type recordCallback struct {
	rec   *Recorder
	event registry.Event
}

func (c *recordCallback) Call(_ context.Context, args registry.Args) error {
	c.rec.record(Notification{Event: c.event, Args: args, At: time.Now()})
	return nil
}

func (c *recordCallback) Name() string { return "record" }
