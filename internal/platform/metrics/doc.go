// Package metrics records Prometheus metrics for the billing stores and
// serves them, together with a health probe, over HTTP.
//
// The store decorators wrap any store implementation and count every call by
// store, operation and outcome. The outcome is the error kind reported by
// store.KindOf, or "invalid" for domain validation failures.
package metrics
