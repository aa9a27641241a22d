package storage

import (
	"context"

	"github.com/iudanet/clickvault/internal/models"
)

// IdentityStorage defines interface for identity persistence
type IdentityStorage interface {
	// CreateIdentity atomically creates a new identity keyed by identity_key.
	// The insert itself is the uniqueness check (check-and-put): callers must
	// never pre-check existence, that would open a race window.
	// Returns ErrIdentityExists if the key is already taken.
	CreateIdentity(ctx context.Context, identity *models.Identity) error

	// GetIdentity retrieves identity by identity_key
	// Returns ErrIdentityNotFound if identity doesn't exist
	GetIdentity(ctx context.Context, identityKey string) (*models.Identity, error)
}
