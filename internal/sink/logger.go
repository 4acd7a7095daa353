package sink

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"pubsubd/internal/registry"
)

// Logger writes one structured log line per notification. Args are nested
// under "args" so they cannot shadow the line's own fields.
type Logger struct {
	mu    sync.Mutex
	log   zerolog.Logger
	level zerolog.Level
	bound map[registry.Event]registry.Callback
}

// NewLogger returns a Logger sink writing at level.
func NewLogger(l zerolog.Logger, level zerolog.Level) *Logger {
	return &Logger{
		log:   l.With().Str("component", "sink.log").Logger(),
		level: level,
		bound: map[registry.Event]registry.Callback{},
	}
}

// For returns the logging callback for event; stable per event.
func (l *Logger) For(event registry.Event) registry.Callback {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cb, ok := l.bound[event]; ok {
		return cb
	}
	cb := &logCallback{sink: l, event: event}
	l.bound[event] = cb
	return cb
}

type logCallback struct {
	sink  *Logger
	event registry.Event
}

func (c *logCallback) Call(_ context.Context, args registry.Args) error {
	c.sink.log.WithLevel(c.sink.level).
		Str("event", string(c.event)).
		Dict("args", zerolog.Dict().Fields(map[string]any(args))).
		Msg("notification")
	return nil
}

func (c *logCallback) Name() string { return "log" }
