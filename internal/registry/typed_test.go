package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderPlaced struct {
	OrderID  int    `arg:"order_id"`
	Customer string `arg:"customer"`
}

func TestTyped_DecodesArgs(t *testing.T) {
	r := New()
	var got orderPlaced
	r.Subscribe("order_placed", Typed(func(ctx context.Context, ev orderPlaced) error {
		got = ev
		return nil
	}))

	require.NoError(t, r.Notify(context.Background(), "order_placed", Args{"order_id": 42, "customer": "alice"}))
	assert.Equal(t, orderPlaced{OrderID: 42, Customer: "alice"}, got)
}

func TestTyped_AcceptsJSONNumbers(t *testing.T) {
	var got orderPlaced
	cb := Typed(func(ctx context.Context, ev orderPlaced) error {
		got = ev
		return nil
	})

	require.NoError(t, cb.Call(context.Background(), Args{"order_id": float64(7), "customer": "bob"}))
	assert.Equal(t, 7, got.OrderID)
}

func TestTyped_UnknownArgumentFails(t *testing.T) {
	called := false
	cb := Typed(func(ctx context.Context, ev orderPlaced) error {
		called = true
		return nil
	})

	err := cb.Call(context.Background(), Args{"order_id": 1, "customer": "c", "extra": true})
	require.Error(t, err)
	assert.True(t, IsArgsMismatch(err))
	assert.False(t, called)
}

func TestTyped_MissingArgumentFails(t *testing.T) {
	cb := Typed(func(ctx context.Context, ev orderPlaced) error { return nil })

	err := cb.Call(context.Background(), Args{"order_id": 1})
	require.Error(t, err)

	var am *ArgsMismatchError
	require.True(t, errors.As(err, &am))
	assert.Contains(t, am.Target, "orderPlaced")
}

func TestTyped_MismatchAbortsNotify(t *testing.T) {
	r := New()
	var calls []call
	r.Subscribe("e", Typed(func(ctx context.Context, ev orderPlaced) error { return nil }))
	r.Subscribe("e", trace(&calls, "after"))

	err := r.Notify(context.Background(), "e", Args{"unexpected": 1})
	require.Error(t, err)
	assert.True(t, IsArgsMismatch(err))
	assert.Empty(t, calls)
}

func TestTyped_CallbackErrorReturned(t *testing.T) {
	boom := errors.New("boom")
	cb := Typed(func(ctx context.Context, ev orderPlaced) error { return boom })

	err := cb.Call(context.Background(), Args{"order_id": 1, "customer": "c"})
	assert.Same(t, boom, err)
	assert.False(t, IsArgsMismatch(err))
}

func TestTyped_Nil(t *testing.T) {
	assert.Nil(t, Typed[orderPlaced](nil))
}
