package storage

import (
	"context"

	"github.com/iudanet/clickvault/internal/models"
)

// VaultStorage defines interface for vault entry persistence.
// Every operation is scoped by owner key; implementations must never
// return or touch entries of another owner.
type VaultStorage interface {
	// UpsertEntry creates or overwrites the entry keyed by (owner, site).
	// The single write is the commit point: no partial state on failure.
	UpsertEntry(ctx context.Context, entry *models.VaultEntry) error

	// GetEntry retrieves one entry by (owner, site)
	// Returns ErrEntryNotFound if entry doesn't exist
	GetEntry(ctx context.Context, ownerKey, site string) (*models.VaultEntry, error)

	// ListEntries retrieves all entries owned by ownerKey, ordered by site
	// Returns empty slice if no entries found
	ListEntries(ctx context.Context, ownerKey string) ([]*models.VaultEntry, error)
}
