package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pubsubd/internal/registry"
	"pubsubd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Events() []types.EventSummary
	Subscriptions() []types.Subscription
	// Notify delivers args to every listener of event and returns the number
	// of listeners subscribed when the notification started.
	Notify(ctx context.Context, event string, args map[string]any) (int, error)
	Notifications() []types.Notification
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.EventsResponse{Events: svc.Events()})
	})

	r.Get("/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.SubscriptionsResponse{Subscriptions: svc.Subscriptions()})
	})

	r.Post("/events/{event}", func(w http.ResponseWriter, r *http.Request) {
		event := chi.URLParam(r, "event")
		lvl := requestLogLevel(r)
		start := time.Now()

		args, status, err := decodeArgs(w, r)
		if err != nil {
			IncrementNotifyFailure(FailureBadRequest)
			writeJSONError(w, status, err.Error())
			logNotify(r, lvl, event, status, start, err)
			return
		}

		ctx, cancel := notifyContext(r)
		defer cancel()
		n, err := svc.Notify(ctx, event, args)
		if err != nil {
			// Client disconnect or shutdown: nobody is left to read the answer.
			if shuttingDown(r) {
				IncrementNotifyFailure(FailureCanceled)
				return
			}
			status := notifyErrorStatus(err)
			writeJSONError(w, status, err.Error())
			logNotify(r, lvl, event, status, start, err)
			return
		}
		writeJSON(w, types.NotifyResponse{Event: event, Listeners: n})
		logNotify(r, lvl, event, http.StatusOK, start, nil)
	})

	r.Get("/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.NotificationsResponse{Notifications: svc.Notifications()})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeArgs reads the optional JSON object carried by a notify request. An
// empty body means no arguments.
func decodeArgs(w http.ResponseWriter, r *http.Request) (map[string]any, int, error) {
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// Still 400 on oversize bodies to avoid leaking size details
		return nil, http.StatusBadRequest, errors.New("invalid JSON body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, 0, nil
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return nil, http.StatusUnsupportedMediaType, errors.New("Content-Type must be application/json")
	}
	var args map[string]any
	if err := json.Unmarshal(body, &args); err != nil {
		return nil, http.StatusBadRequest, errors.New("invalid JSON body")
	}
	return args, 0, nil
}

// notifyErrorStatus maps a callback error to an HTTP status code.
func notifyErrorStatus(err error) int {
	if registry.IsArgsMismatch(err) {
		IncrementNotifyFailure(FailureArgsMismatch)
		return http.StatusUnprocessableEntity
	}
	IncrementNotifyFailure(FailureCallback)
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
