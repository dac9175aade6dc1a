// Package postgres implements the internal/store interfaces on
// PostgreSQL. It maps driver errors into the store error tree and uses
// single-statement upserts for the learned-food and day-log writes.
package postgres
