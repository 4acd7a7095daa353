package registry

import (
	"context"
	"strings"
	"time"
)

// unsubscribedLabel is the metric label shared by notifications that reach no
// callback, so arbitrary event names cannot grow the series count.
const unsubscribedLabel = ""

// Notify invokes, in registration order, every callback subscribed to event,
// passing each one its own copy of args. It runs on the caller's goroutine and
// returns once all callbacks have returned.
//
// The set of callbacks is fixed when Notify starts: subscriptions added or
// removed by a callback take effect on the next Notify. The first callback
// error is returned as is and the remaining callbacks are skipped.
func (r *Registry) Notify(ctx context.Context, event Event, args Args) error {
	matched := r.snapshot(event)

	label := eventLabel(event, len(matched))
	notificationsTotal.WithLabelValues(r.name, label).Inc()
	start := time.Now()
	defer func() { notifyDuration.WithLabelValues(r.name).Observe(time.Since(start).Seconds()) }()

	r.log.Debug().Str("event", string(event)).Int("listeners", len(matched)).Msg("notify")
	for _, s := range matched {
		callbacksTotal.WithLabelValues(r.name, label).Inc()
		if err := s.Callback.Call(ctx, args.Clone()); err != nil {
			callbackErrorsTotal.WithLabelValues(r.name, label).Inc()
			r.log.Debug().Err(err).Str("event", string(event)).Str("id", s.ID).Msg("callback failed, delivery aborted")
			return err
		}
	}
	return nil
}

// snapshot returns the subscriptions for event in registration order.
func (r *Registry) snapshot(event Event) []*Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Subscription
	for _, s := range r.subs {
		if s.Event == event {
			out = append(out, s)
		}
	}
	return out
}

// eventLabel returns the metric label for a notification of event with n
// listeners. Only subscribed events get their own series; label values must
// be valid UTF-8.
func eventLabel(event Event, n int) string {
	if n == 0 {
		return unsubscribedLabel
	}
	return strings.ToValidUTF8(string(event), "\uFFFD")
}
