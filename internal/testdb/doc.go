// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests using it carry the integration build tag and are skipped when no
// database URL is configured:
//
//	//go:build integration
//
//	func TestSomething(t *testing.T) {
//		db := testdb.GetTestDBWithT(t)
//		testdb.Reset(t, db)
//		...
//	}
//
// The schema is created from the migrations embedded in the postgres package,
// so tests always run against the same DDL as the application.
package testdb
