package types

// Subscription describes one registered (event, callback) pair.
type Subscription struct {
	// Stable subscription handle.
	// example: 3f0c6a52-5c1f-4bb6-9d3c-9a1f0e2f7b11
	ID string `json:"id" example:"3f0c6a52-5c1f-4bb6-9d3c-9a1f0e2f7b11"`
	// Event name the callback is subscribed to.
	// example: order_placed
	Event string `json:"event" example:"order_placed"`
	// Short description of the callback.
	// example: log
	Callback string `json:"callback" example:"log"`
	// Registration time (unix seconds).
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
}

// EventSummary is one subscribed event and its number of listeners.
type EventSummary struct {
	// example: order_placed
	Event string `json:"event" example:"order_placed"`
	// example: 2
	Listeners int `json:"listeners" example:"2"`
}

// Notification is one delivery captured by the record sink.
type Notification struct {
	// example: order_placed
	Event string `json:"event" example:"order_placed"`
	// Named arguments delivered with the notification.
	Args map[string]any `json:"args"`
	// Delivery time (unix milliseconds).
	// example: 1700000000000
	AtUnixMilli int64 `json:"at_unix_ms" example:"1700000000000"`
}
