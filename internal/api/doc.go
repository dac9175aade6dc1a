// Package api exposes the food logging core over HTTP: account endpoints,
// learned food management, the multi-turn logging conversation and daily
// calorie totals. Handlers translate HTTP requests into service calls and
// map service errors back to status codes without leaking internals.
package api
