// Package storage определяет клиентский кеш сессии
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/clickvault/pkg/api"
)

// ErrSessionNotFound indicates that no cached session exists
var ErrSessionNotFound = errors.New("session not found")

// Session - кешированная клиентская сессия: session token и reference
// изображение владельца, чтобы login/verify экраны могли рисоваться офлайн
type Session struct {
	IdentityKey string      `json:"identity_key"`
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	ImageURL    string      `json:"image_url"`
	ImageWidth  int         `json:"image_width"`
	ImageHeight int         `json:"image_height"`
	Points      []api.Point `json:"points,omitempty"` // локально выбранный click-map (только до первого login)
}

// SessionStorage defines interface for client-side session persistence
type SessionStorage interface {
	// SaveSession stores the current session, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the current session
	// Returns ErrSessionNotFound if no session is cached
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the cached session (logout)
	// Returns ErrSessionNotFound if no session is cached
	DeleteSession(ctx context.Context) error
}
