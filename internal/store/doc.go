// Package store defines the repository contracts for subscribers, the service
// catalog and invoices, together with the data-access error taxonomy shared
// by every implementation. The interfaces keep callers independent of the
// SQL statements and driver behind them.
package store
