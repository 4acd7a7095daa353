package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"pubsubd/internal/config"
	"pubsubd/internal/logging"
	"pubsubd/internal/registry"
	"pubsubd/internal/sink"
	"pubsubd/pkg/types"
)

// Lifecycle events published by the App on its own registry.
const (
	EventStarted  registry.Event = "pubsubd.started"
	EventStopping registry.Event = "pubsubd.stopping"
)

// App hosts one Registry together with the built-in sinks and exposes it to
// the HTTP layer.
type App struct {
	reg     *registry.Registry
	rec     *sink.Recorder
	logSink *sink.Logger
	log     zerolog.Logger

	started time.Time
	ready   atomic.Bool
}

// New builds the registry described by cfg and binds its configured
// subscriptions.
func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	cfg = cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		reg:     registry.New(registry.WithName(cfg.Name), registry.WithLogger(logging.Component(logger, "registry"))),
		rec:     sink.NewRecorder(cfg.RecordLimit),
		logSink: sink.NewLogger(logger, zerolog.InfoLevel),
		log:     logging.Component(logger, "app"),
	}
	for _, s := range cfg.Subscriptions {
		if _, err := a.Bind(registry.Event(s.Event), s.Sink); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Bind subscribes the named built-in sink to event. Binding the same pair
// twice returns nil without error.
func (a *App) Bind(event registry.Event, sinkName string) (*registry.Subscription, error) {
	var cb registry.Callback
	switch sinkName {
	case config.SinkLog:
		cb = a.logSink.For(event)
	case config.SinkRecord:
		cb = a.rec.For(event)
	default:
		return nil, fmt.Errorf("unknown sink %q", sinkName)
	}
	sub := a.reg.Subscribe(event, cb)
	if sub != nil {
		a.log.Info().Str("event", string(event)).Str("sink", sinkName).Msg("bound")
	}
	return sub, nil
}

// Registry exposes the hosted registry for in-process subscribers.
func (a *App) Registry() *registry.Registry { return a.reg }

// Recorder exposes the record sink.
func (a *App) Recorder() *sink.Recorder { return a.rec }

// Start marks the app ready and publishes EventStarted.
func (a *App) Start(ctx context.Context) error {
	a.started = time.Now()
	a.ready.Store(true)
	return a.reg.Notify(ctx, EventStarted, registry.Args{"registry": a.reg.Name(), "subscriptions": a.reg.Len()})
}

// Close marks the app not ready and publishes EventStopping.
func (a *App) Close(ctx context.Context) error {
	a.ready.Store(false)
	var uptime float64
	if !a.started.IsZero() {
		uptime = time.Since(a.started).Seconds()
	}
	return a.reg.Notify(ctx, EventStopping, registry.Args{"registry": a.reg.Name(), "uptime_seconds": uptime})
}

// Ready reports whether Start has run and Close has not.
func (a *App) Ready() bool { return a.ready.Load() }

// Notify delivers args to every listener of event and reports how many
// listeners were subscribed when it started.
func (a *App) Notify(ctx context.Context, event string, args map[string]any) (int, error) {
	e := registry.Event(event)
	n := a.reg.Listeners(e)
	if err := a.reg.Notify(ctx, e, registry.Args(args)); err != nil {
		return n, err
	}
	return n, nil
}

// Events lists subscribed events with their listener counts.
func (a *App) Events() []types.EventSummary {
	events := a.reg.Events()
	out := make([]types.EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, types.EventSummary{Event: string(e), Listeners: a.reg.Listeners(e)})
	}
	return out
}

// Subscriptions lists every subscription in registration order.
func (a *App) Subscriptions() []types.Subscription {
	subs := a.reg.Subscriptions()
	out := make([]types.Subscription, 0, len(subs))
	for _, s := range subs {
		out = append(out, types.Subscription{
			ID:          s.ID,
			Event:       string(s.Event),
			Callback:    s.CallbackName(),
			CreatedUnix: s.Created.Unix(),
		})
	}
	return out
}

// Notifications returns what the record sink captured.
func (a *App) Notifications() []types.Notification {
	recs := a.rec.Notifications()
	out := make([]types.Notification, 0, len(recs))
	for _, n := range recs {
		out = append(out, types.Notification{
			Event:       string(n.Event),
			Args:        map[string]any(n.Args),
			AtUnixMilli: n.At.UnixMilli(),
		})
	}
	return out
}
