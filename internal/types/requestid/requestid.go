// Package requestid carries per-request identifiers through contexts and HTTP
// headers.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestID is a unique identifier for a request.
type RequestID string

const HeaderKey = "X-Request-ID"

// maxLength bounds identifiers accepted from clients.
const maxLength = 128

type contextKey int

// requestIDContextKey is the key for [RequestID] in Contexts. Clients use
// NewContext and FromContext instead of using this key directly.
var requestIDContextKey contextKey

// Generate generates a new request ID.
func Generate() RequestID {
	return RequestID(uuid.NewString())
}

// FromRequest returns the request ID supplied by the client in the
// [HeaderKey] header, or a freshly generated one if the header is missing or
// too long.
func FromRequest(r *http.Request) RequestID {
	if id := r.Header.Get(HeaderKey); id != "" && len(id) <= maxLength {
		return RequestID(id)
	}
	return Generate()
}

// FromContext returns the RequestID value stored in ctx, if any.
func FromContext(ctx context.Context) (RequestID, bool) {
	id, exists := ctx.Value(requestIDContextKey).(RequestID)
	return id, exists
}

// NewContext returns a new Context that carries value requestID.
func NewContext(ctx context.Context, requestID RequestID) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}
