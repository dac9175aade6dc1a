// Package store defines the persistence interfaces for users, learned
// foods and daily calorie totals, plus the shared error tree and the
// transaction helper. Implementations live in internal/platform/postgres.
package store
