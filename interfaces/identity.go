package interfaces

import "context"

// IdentityService resolves the user-identifying email for this run. The
// resolved value is immutable for the lifetime of the process.
type IdentityService interface {
	ResolveEmail(ctx context.Context) (string, error)
}
