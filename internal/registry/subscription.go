package registry

import "time"

// Event names a category of occurrence.
type Event string

// Subscription is one registered (event, callback) pair. The ID is assigned at
// registration and stays valid as a handle for Remove.
type Subscription struct {
	ID       string
	Event    Event
	Callback Callback
	Created  time.Time
}

// matches reports whether s is the (event, cb) pair.
func (s *Subscription) matches(event Event, cb Callback) bool {
	return s.Event == event && sameCallback(s.Callback, cb)
}

// CallbackName describes the subscribed callback for listings.
func (s *Subscription) CallbackName() string { return callbackName(s.Callback) }
