package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"pubsubd/internal/config"
	"pubsubd/internal/registry"
	"pubsubd/pkg/types"
)

type orderArgs struct {
	OrderID  int    `arg:"order_id"`
	Customer string `arg:"customer"`
}

// TestE2E_OrderPlaced drives the order scenario through HTTP: two in-process
// listeners observe the notification in registration order with exactly the
// posted arguments.
func TestE2E_OrderPlaced(t *testing.T) {
	srv, a := newServer(t, config.Config{Name: "orders"})

	var mu sync.Mutex
	var seen []string
	a.Registry().Subscribe("order_placed", registry.Typed(func(ctx context.Context, o orderArgs) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, "log_order")
		if o.OrderID != 42 || o.Customer != "alice" {
			t.Errorf("log_order got %+v", o)
		}
		return nil
	}))
	a.Registry().Subscribe("order_placed", registry.Func(func(ctx context.Context, args registry.Args) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, "email_customer")
		if c, _ := args.String("customer"); c != "alice" {
			t.Errorf("email_customer got %v", args)
		}
		return nil
	}))

	resp, body := httpPostJSON(t, srv.URL+"/events/order_placed", []byte(`{"order_id":42,"customer":"alice"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notify %d %s", resp.StatusCode, body)
	}
	var nr types.NotifyResponse
	if err := json.Unmarshal(body, &nr); err != nil || nr.Listeners != 2 {
		t.Fatalf("unexpected response %s (%v)", body, err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "log_order" || seen[1] != "email_customer" {
		t.Fatalf("unexpected order: %v", seen)
	}
}

// TestE2E_TypedMismatch422 verifies that a typed listener rejecting the posted
// arguments surfaces as 422 and stops the pass.
func TestE2E_TypedMismatch422(t *testing.T) {
	srv, a := newServer(t, config.Config{})
	a.Registry().Subscribe("order_placed", registry.Typed(func(ctx context.Context, o orderArgs) error { return nil }))
	called := false
	a.Registry().Subscribe("order_placed", registry.Func(func(ctx context.Context, args registry.Args) error {
		called = true
		return nil
	}))

	resp, body := httpPostJSON(t, srv.URL+"/events/order_placed", []byte(`{"order_id":42}`))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", resp.StatusCode, body)
	}
	if called {
		t.Fatalf("listener after the failing one must not run")
	}

	resp, _ = httpPostJSON(t, srv.URL+"/events/order_placed", []byte(`{"order_id":42,"customer":"a","extra":true}`))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown keys: expected 422, got %d", resp.StatusCode)
	}
}

// TestE2E_CallbackError500 verifies plain callback failures map to 500.
func TestE2E_CallbackError500(t *testing.T) {
	srv, a := newServer(t, config.Config{})
	a.Registry().Subscribe("e", registry.Func(func(ctx context.Context, args registry.Args) error {
		return errors.New("downstream unavailable")
	}))
	resp, body := httpPostJSON(t, srv.URL+"/events/e", []byte(`{}`))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d %s", resp.StatusCode, body)
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error != "downstream unavailable" {
		t.Fatalf("unexpected error body %s (%v)", body, err)
	}
}

// TestE2E_UnsubscribeDuringNotify checks that removals made by a listener
// apply from the next notification on.
func TestE2E_UnsubscribeDuringNotify(t *testing.T) {
	srv, a := newServer(t, config.Config{Subscriptions: []config.Subscription{{Event: "tick", Sink: config.SinkRecord}}})
	reg := a.Registry()
	record := reg.Subscriptions()[0].Callback

	reg.Subscribe("tick", registry.Func(func(ctx context.Context, args registry.Args) error {
		reg.Unsubscribe("tick", record)
		return nil
	}))
	// recorder runs first, so move it behind the remover
	reg.Unsubscribe("tick", record)
	reg.Subscribe("tick", record)

	for i := 0; i < 2; i++ {
		if resp, body := httpPostJSON(t, srv.URL+"/events/tick", nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("notify %d: %d %s", i, resp.StatusCode, body)
		}
	}

	resp, body := httpGet(t, srv.URL+"/notifications")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/notifications %d", resp.StatusCode)
	}
	var nr types.NotificationsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(nr.Notifications) != 1 {
		t.Fatalf("expected the recorder to run once, got %d", len(nr.Notifications))
	}
}

// TestE2E_Listings verifies /events and /subscriptions reflect the registry.
func TestE2E_Listings(t *testing.T) {
	srv, _ := newServer(t, config.Config{Subscriptions: []config.Subscription{
		{Event: "a", Sink: config.SinkLog},
		{Event: "b", Sink: config.SinkRecord},
		{Event: "a", Sink: config.SinkRecord},
	}})

	_, body := httpGet(t, srv.URL+"/events")
	var er types.EventsResponse
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(er.Events) != 2 || er.Events[0].Event != "a" || er.Events[0].Listeners != 2 || er.Events[1].Listeners != 1 {
		t.Fatalf("unexpected events: %+v", er.Events)
	}

	_, body = httpGet(t, srv.URL+"/subscriptions")
	var sr types.SubscriptionsResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(sr.Subscriptions) != 3 || sr.Subscriptions[2].Event != "a" || sr.Subscriptions[2].Callback != "record" {
		t.Fatalf("unexpected subscriptions: %+v", sr.Subscriptions)
	}
}

// TestE2E_NonUTF8EventName verifies that an event name holding arbitrary
// bytes is delivered like any other.
func TestE2E_NonUTF8EventName(t *testing.T) {
	srv, a := newServer(t, config.Config{})
	called := 0
	a.Registry().Subscribe("order\xff", registry.Func(func(ctx context.Context, args registry.Args) error {
		called++
		return nil
	}))

	resp, body := httpPostJSON(t, srv.URL+"/events/order%FF", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", resp.StatusCode, body)
	}
	if called != 1 {
		t.Fatalf("expected callback to run once, ran %d times", called)
	}
	resp, _ = httpPostJSON(t, srv.URL+"/events/%FE%FF", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unsubscribed raw event: expected 200, got %d", resp.StatusCode)
	}
}
