// Package registry provides an in-process publish/subscribe registry. Callers
// subscribe callbacks to named events and a publisher later notifies every
// callback registered for an event, forwarding a set of named arguments.
// It is structured into small files by concern:
//
//   - registry.go: Registry type, constructor, Subscribe/On/Unsubscribe/Remove.
//   - notify.go: Notify and the per-pass snapshot.
//   - subscription.go: Subscription handle.
//   - callback.go: Callback interface, Func adapter and identity rules.
//   - args.go: Args (named arguments) and typed accessors.
//   - typed.go: Typed adapter decoding Args into a struct.
//   - errors.go: error types and helpers (IsArgsMismatch, ErrMissingArg).
//   - metrics.go: Prometheus collectors.
//   - options.go: constructor options.
//
// Delivery is synchronous and follows registration order. The first callback
// error aborts the pass and is returned unchanged; panics are not recovered.
// Notify works on a snapshot taken when it starts, so callbacks may subscribe
// or unsubscribe (on this or any Registry) without affecting the pass in
// progress.
//
// A Registry is safe for concurrent use. There is no package-level registry;
// construct one with New and pass it to the code that needs it.
package registry
