// Package config loads and validates the service configuration from
// environment variables and an optional config file. It also holds the
// resolver heuristics as named settings so the matching thresholds can be
// tuned without code changes.
package config
