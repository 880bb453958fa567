package ports

import "context"

// SessionHandle is an issued anonymous session: the opaque bearer token a
// terminal persists across reloads, plus the stable session user id the
// token resolves to.
type SessionHandle struct {
	Token         string `json:"token"`
	SessionUserID string `json:"session_user_id"`
}

// SessionProvider issues and revokes anonymous sessions. Sessions carry no
// personal data; they exist only as a stable handle to attach a binding to.
type SessionProvider interface {
	// CreateOrResume returns a live session. When priorToken still refers to
	// a live session it is resumed; otherwise a fresh session is minted.
	// Safe to call when a session already exists.
	CreateOrResume(ctx context.Context, priorToken string) (SessionHandle, error)
	// Invalidate revokes the session behind token. Revoking an already-dead
	// token is a no-op.
	Invalidate(ctx context.Context, token string) error
	// Lookup returns the session user id for a live token, or
	// domain.ErrNotAuthenticated when the token is invalid or revoked.
	Lookup(ctx context.Context, token string) (string, error)
}
