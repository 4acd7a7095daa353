package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args Args
}

// trace returns a callback appending (name, args) to calls.
func trace(calls *[]call, name string) Callback {
	return Func(func(ctx context.Context, args Args) error {
		*calls = append(*calls, call{name: name, args: args})
		return nil
	})
}

func TestNotify_OrderPlacedScenario(t *testing.T) {
	r := New()
	var calls []call
	r.Subscribe("order_placed", trace(&calls, "log_order"))
	r.Subscribe("order_placed", trace(&calls, "email_customer"))
	r.Subscribe("order_shipped", trace(&calls, "unrelated"))

	err := r.Notify(context.Background(), "order_placed", Args{"order_id": 42, "customer": "alice"})
	require.NoError(t, err)

	want := Args{"order_id": 42, "customer": "alice"}
	require.Len(t, calls, 2)
	assert.Equal(t, "log_order", calls[0].name)
	assert.Equal(t, want, calls[0].args)
	assert.Equal(t, "email_customer", calls[1].name)
	assert.Equal(t, want, calls[1].args)
}

func TestNotify_NoListeners(t *testing.T) {
	r := New()
	var calls []call
	r.Subscribe("a", trace(&calls, "a"))

	require.NoError(t, r.Notify(context.Background(), "b", nil))
	assert.Empty(t, calls)
}

func TestNotify_NilArgsDeliveredEmpty(t *testing.T) {
	r := New()
	var got Args
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		got = args
		return nil
	}))

	require.NoError(t, r.Notify(context.Background(), "e", nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNotify_UnsubscribedNotInvoked(t *testing.T) {
	r := New()
	var calls []call
	cb := trace(&calls, "c")
	r.Subscribe("e", cb)
	r.Unsubscribe("e", cb)

	require.NoError(t, r.Notify(context.Background(), "e", Args{}))
	assert.Empty(t, calls)
}

func TestNotify_EachCallbackGetsOwnArgs(t *testing.T) {
	r := New()
	var seen []Args
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		args["added"] = true
		delete(args, "k")
		return nil
	}))
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		seen = append(seen, args)
		return nil
	}))

	in := Args{"k": "v"}
	require.NoError(t, r.Notify(context.Background(), "e", in))
	require.Len(t, seen, 1)
	assert.Equal(t, Args{"k": "v"}, seen[0])
	assert.Equal(t, Args{"k": "v"}, in)
}

func TestNotify_FirstErrorAbortsPass(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	var calls []call
	r.Subscribe("e", trace(&calls, "first"))
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error { return boom }))
	r.Subscribe("e", trace(&calls, "third"))

	err := r.Notify(context.Background(), "e", nil)
	require.Error(t, err)
	assert.Same(t, boom, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "first", calls[0].name)
}

func TestNotify_PanicPropagates(t *testing.T) {
	r := New()
	var calls []call
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error { panic("callback panic") }))
	r.Subscribe("e", trace(&calls, "after"))

	assert.PanicsWithValue(t, "callback panic", func() {
		_ = r.Notify(context.Background(), "e", nil)
	})
	assert.Empty(t, calls)
}

func TestNotify_PassesContext(t *testing.T) {
	type key struct{}
	r := New()
	var got any
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		got = ctx.Value(key{})
		return nil
	}))

	ctx := context.WithValue(context.Background(), key{}, "v")
	require.NoError(t, r.Notify(ctx, "e", nil))
	assert.Equal(t, "v", got)
}

// Mutations from inside a callback do not affect the pass in progress.
func TestNotify_SnapshotUnsubscribeDuringPass(t *testing.T) {
	r := New()
	var calls []call
	second := trace(&calls, "second")
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		calls = append(calls, call{name: "first"})
		r.Unsubscribe("e", second)
		return nil
	}))
	r.Subscribe("e", second)

	require.NoError(t, r.Notify(context.Background(), "e", nil))
	require.Len(t, calls, 2)
	assert.Equal(t, "second", calls[1].name)

	calls = nil
	require.NoError(t, r.Notify(context.Background(), "e", nil))
	require.Len(t, calls, 1)
	assert.Equal(t, "first", calls[0].name)
}

func TestNotify_SnapshotSubscribeDuringPass(t *testing.T) {
	r := New()
	var calls []call
	late := trace(&calls, "late")
	r.Subscribe("e", Func(func(ctx context.Context, args Args) error {
		calls = append(calls, call{name: "first"})
		r.Subscribe("e", late)
		return nil
	}))

	require.NoError(t, r.Notify(context.Background(), "e", nil))
	require.Len(t, calls, 1)

	calls = nil
	require.NoError(t, r.Notify(context.Background(), "e", nil))
	require.Len(t, calls, 2)
	assert.Equal(t, "late", calls[1].name)
}

func TestNotify_Reentrant(t *testing.T) {
	r := New()
	var calls []call
	r.Subscribe("inner", trace(&calls, "inner"))
	r.Subscribe("outer", Func(func(ctx context.Context, args Args) error {
		return r.Notify(ctx, "inner", args)
	}))

	require.NoError(t, r.Notify(context.Background(), "outer", Args{"n": 1}))
	require.Len(t, calls, 1)
	assert.Equal(t, Args{"n": 1}, calls[0].args)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := New()
	var mu sync.Mutex
	count := 0
	counter := Func(func(ctx context.Context, args Args) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	r.Subscribe("e", counter)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				cb := noop()
				r.Subscribe("e", cb)
				_ = r.Notify(context.Background(), "e", Args{"j": j})
				r.Unsubscribe("e", cb)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 8*50, count)
}

func TestNotify_NonUTF8Event(t *testing.T) {
	r := New(WithName("utf8-test"))
	var calls []call
	r.Subscribe("order\xff", trace(&calls, "raw"))

	require.NotPanics(t, func() {
		require.NoError(t, r.Notify(context.Background(), "order\xff", Args{"k": "v"}))
	})
	require.Len(t, calls, 1)
	assert.Equal(t, "raw", calls[0].name)

	// unsubscribed raw bytes are fine too
	require.NotPanics(t, func() {
		require.NoError(t, r.Notify(context.Background(), "\xfe\xff", nil))
	})
}
