package auth

import (
	"context"
	"time"
)

// RevocationList remembers token ids (jti) that were signed out or rotated.
// Entries only need to outlive the token they revoke.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
