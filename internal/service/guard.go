package service

import "context"

// Owned is implemented by records that belong to a single user.
type Owned interface {
	OwnerID() string
}

// Guard answers the two access questions every protected operation asks:
// who is calling, and do they own the record.
type Guard struct {
	sessions *SessionService
}

func NewGuard(sessions *SessionService) *Guard {
	return &Guard{sessions: sessions}
}

// RequireAuth returns the user id behind handle or ErrUnauthenticated.
func (g *Guard) RequireAuth(ctx context.Context, handle string) (string, error) {
	return g.sessions.CurrentUser(ctx, handle)
}

// AuthorizeOwner returns ErrNotFoundOrForbidden unless record belongs to
// userID. Missing and foreign records are indistinguishable.
func AuthorizeOwner(record Owned, userID string) error {
	if record == nil || userID == "" {
		return ErrNotFoundOrForbidden
	}
	if record.OwnerID() != userID {
		return ErrNotFoundOrForbidden
	}
	return nil
}
