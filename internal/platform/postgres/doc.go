// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. All database errors are passed through MapError so the
// rest of the application only ever sees the store package's sentinel
// errors.
package postgres
