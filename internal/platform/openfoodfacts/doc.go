// Package openfoodfacts provides the HTTP client for the Open Food Facts
// nutrition database. It implements the candidate retriever consumed by the
// resolution service: text search plus a barcode point lookup, both mapped
// into the reduced raw-record shape the calorie extractor understands.
//
// The external database is best-effort by contract. Network failures,
// timeouts and malformed payloads degrade to empty results and are logged,
// never surfaced as errors; the resolution pipeline treats an empty result
// the same as "nothing found".
package openfoodfacts
