// Package httputil provides the outbound HTTP client used to talk to the
// PlantUML rendering service.
//
// # Overview
//
// [Client] wraps an [http.Client] with a request timeout, default headers,
// a response size limit and status-code mapping:
//
//   - 200: success
//   - 400: [ErrBadRequest] (the service could not decode or render the token)
//   - 404: [ErrNotFound]
//   - anything else, and transport failures: [ErrNetwork]
//
// # No Retries
//
// Requests are sent exactly once. A token is a pure function of the diagram
// source, so resending an identical request that the service rejected yields
// the same failure. Errors are surfaced to the caller instead.
//
// Every request reports to [observability.HTTP] hooks.
package httputil
