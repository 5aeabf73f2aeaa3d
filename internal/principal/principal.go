// Package principal carries the implicit caller identity through a request.
package principal

import (
	"context"

	"github.com/google/uuid"
)

// Principal identifies the caller of a forum operation.
type Principal string

const (
	// Anonymous is used when no identity has been attached to the context.
	Anonymous Principal = "anonymous"

	// Header carries the principal on API requests made by a remote client.
	Header = "X-Forum-Principal"
)

type contextKey string

const principalContextKey = contextKey("principal")

// New returns a fresh random principal.
func New() Principal {
	return Principal(uuid.NewString())
}

// Parse validates a stored principal string. Anything that is not a UUID,
// other than Anonymous, is rejected.
func Parse(s string) (Principal, bool) {
	if s == string(Anonymous) {
		return Anonymous, true
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return Principal(s), true
}

// String returns the textual form of the principal.
func (p Principal) String() string {
	return string(p)
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// FromContext returns the principal stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalContextKey).(Principal); ok && p != "" {
		return p
	}
	return Anonymous
}
