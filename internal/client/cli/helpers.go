package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/clickvault/internal/client/storage"
	"github.com/iudanet/clickvault/pkg/api"
)

// parsePoint разбирает строку вида "x,y" в точку
func parsePoint(input string) (api.Point, error) {
	parts := strings.SplitN(input, ",", 2)
	if len(parts) != 2 {
		return api.Point{}, fmt.Errorf("expected x,y format, got %q", input)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return api.Point{}, fmt.Errorf("invalid x coordinate %q", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return api.Point{}, fmt.Errorf("invalid y coordinate %q", parts[1])
	}
	return api.Point{X: x, Y: y}, nil
}

// readPoints запрашивает последовательность click-point координат.
// Пустая строка завершает ввод.
func (a *App) readPoints() ([]api.Point, error) {
	var points []api.Point
	for {
		input, err := a.io.ReadInput(fmt.Sprintf("Point %d (x,y or empty to finish): ", len(points)+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read point: %w", err)
		}
		if input == "" {
			break
		}
		p, err := parsePoint(input)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("at least one point is required")
	}
	return points, nil
}

// requireSession возвращает кешированную сессию с валидным токеном
func (a *App) requireSession(ctx context.Context) (*storage.Session, error) {
	session, err := a.store.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'clickvault login' first")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("session expired. Please run 'clickvault login' again")
	}
	return session, nil
}
