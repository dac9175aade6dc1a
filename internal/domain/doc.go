// Package domain contains the core entities of the food-logging system:
// users, their private learned-food records, the transient candidate and
// resolution types produced by the matching pipeline, parsed quantities,
// and the per-day calorie aggregate.
//
// Entities validate themselves; persistence and matching logic live in the
// store and foodmatch packages respectively.
package domain
