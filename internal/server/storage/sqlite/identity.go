package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/clickvault/internal/models"
	"github.com/iudanet/clickvault/internal/server/storage"
)

// CreateIdentity atomically creates a new identity record.
// Уникальность identity_key обеспечивает сам INSERT через UNIQUE constraint:
// никакой отдельной проверки существования (read-then-write race).
func (s *Storage) CreateIdentity(ctx context.Context, identity *models.Identity) error {
	query := `
		INSERT INTO identities (id, identity_key, password_hash, image_url, image_width, image_height, click_map, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		identity.ID,
		identity.IdentityKey,
		identity.PasswordHash,
		identity.ImageURL,
		identity.ImageWidth,
		identity.ImageHeight,
		identity.ClickMap,
		identity.CreatedAt,
	)

	if err != nil {
		// Проверяем на duplicate identity_key
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrIdentityExists
		}
		return fmt.Errorf("failed to insert identity: %w", err)
	}

	return nil
}

// GetIdentity retrieves identity by identity_key
func (s *Storage) GetIdentity(ctx context.Context, identityKey string) (*models.Identity, error) {
	query := `
		SELECT id, identity_key, password_hash, image_url, image_width, image_height, click_map, created_at
		FROM identities
		WHERE identity_key = ?
	`

	identity := &models.Identity{}

	err := s.db.QueryRowContext(ctx, query, identityKey).Scan(
		&identity.ID,
		&identity.IdentityKey,
		&identity.PasswordHash,
		&identity.ImageURL,
		&identity.ImageWidth,
		&identity.ImageHeight,
		&identity.ClickMap,
		&identity.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}
