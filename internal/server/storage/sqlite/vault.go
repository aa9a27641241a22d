package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/clickvault/internal/models"
	"github.com/iudanet/clickvault/internal/server/storage"
)

// UpsertEntry creates or overwrites the vault entry keyed by (owner, site).
// Один INSERT ... ON CONFLICT - единственная точка коммита, частичных
// записей при ошибке не остается.
func (s *Storage) UpsertEntry(ctx context.Context, entry *models.VaultEntry) error {
	query := `
		INSERT INTO vault_entries (owner_key, site, encrypted_secret, username, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_key, site) DO UPDATE SET
			encrypted_secret = excluded.encrypted_secret,
			username = excluded.username,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.OwnerKey,
		entry.Site,
		entry.Secret,
		entry.Username,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert vault entry: %w", err)
	}

	return nil
}

// GetEntry retrieves one vault entry by (owner, site)
func (s *Storage) GetEntry(ctx context.Context, ownerKey, site string) (*models.VaultEntry, error) {
	query := `
		SELECT owner_key, site, encrypted_secret, username, created_at, updated_at
		FROM vault_entries
		WHERE owner_key = ? AND site = ?
	`

	entry := &models.VaultEntry{}

	err := s.db.QueryRowContext(ctx, query, ownerKey, site).Scan(
		&entry.OwnerKey,
		&entry.Site,
		&entry.Secret,
		&entry.Username,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get vault entry: %w", err)
	}

	return entry, nil
}

// ListEntries retrieves all vault entries owned by ownerKey, ordered by site
func (s *Storage) ListEntries(ctx context.Context, ownerKey string) ([]*models.VaultEntry, error) {
	query := `
		SELECT owner_key, site, encrypted_secret, username, created_at, updated_at
		FROM vault_entries
		WHERE owner_key = ?
		ORDER BY site
	`

	rows, err := s.db.QueryContext(ctx, query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query vault entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.VaultEntry, 0)
	for rows.Next() {
		entry := &models.VaultEntry{}
		if err := rows.Scan(
			&entry.OwnerKey,
			&entry.Site,
			&entry.Secret,
			&entry.Username,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vault entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vault entries: %w", err)
	}

	return entries, nil
}
