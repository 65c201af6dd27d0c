// Package postgres provides the PostgreSQL implementations of the store
// interfaces defined in internal/store. It owns the SQL statements, the
// embedded schema migrations and the mapping of PostgreSQL error codes onto
// the store error taxonomy.
package postgres
