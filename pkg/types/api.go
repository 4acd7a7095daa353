package types

// EventsResponse is returned by GET /events.
type EventsResponse struct {
	Events []EventSummary `json:"events"`
}

// SubscriptionsResponse is returned by GET /subscriptions.
type SubscriptionsResponse struct {
	Subscriptions []Subscription `json:"subscriptions"`
}

// NotifyResponse is returned by POST /events/{event} once every listener ran.
type NotifyResponse struct {
	// example: order_placed
	Event string `json:"event" example:"order_placed"`
	// Number of callbacks subscribed when the notification started.
	// example: 2
	Listeners int `json:"listeners" example:"2"`
}

// NotificationsResponse is returned by GET /notifications.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
