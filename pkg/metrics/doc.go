// Package metrics exposes prometheus request metrics for the HTTP API.
//
// Requests are labelled by the gorilla/mux route template rather than the raw
// path, so ids never become label values.
package metrics
