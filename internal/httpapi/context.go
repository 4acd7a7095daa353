package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is canceled on shutdown. Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level context whose cancellation reaches
// callbacks still running for in-flight notify requests.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// notifyContext derives the context handed to callbacks: it keeps the request
// values (request id) and is canceled when either the request or the server
// base context is done. The returned cancel func must be called when the
// handler ends.
func notifyContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(serverBaseCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// shuttingDown reports whether the request or the server went away, in which
// case nothing is written back.
func shuttingDown(r *http.Request) bool {
	return r.Context().Err() != nil || serverBaseCtx.Err() != nil
}
