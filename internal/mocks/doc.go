// Package mocks provides centralized mock implementations for testing.
//
// The billing mocks keep their records in memory and follow the store
// contracts: duplicate phone numbers, service names and links fail with
// store.ErrDuplicateEntry, writes against missing IDs fail with
// store.ErrEntryNotFound, and deleting subscribers or services removes their
// links and invoices. Every method can be overridden through its Fn field.
//
// Usage:
//
//	billing := mocks.NewBilling()
//	billing.Invoices.PayFn = func(ctx context.Context, id int64) (bool, error) {
//	    return false, store.ErrDataAccess
//	}
//
//	seeder := seed.New(billing.Subscribers, billing.Services, billing.Invoices, nil)
package mocks
