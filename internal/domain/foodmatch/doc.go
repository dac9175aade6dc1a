// Package foodmatch implements the pure food-matching pipeline: name
// normalization, local (learned-food) matching, calorie extraction from raw
// nutrition records, robust aggregation of noisy external candidates,
// confidence scoring, and quantity/unit parsing.
//
// Everything in this package is deterministic and side-effect free; network
// retrieval and persistence are injected around it by the service layer.
// All tunable heuristics live in Params so they can be adjusted and tested
// independently.
package foodmatch
