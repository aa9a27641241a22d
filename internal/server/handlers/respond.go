package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/clickvault/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// IdentityKeyContextKey - ключ для identity_key из session token
const IdentityKeyContextKey contextKey = "identity_key"

// GetIdentityKey извлекает identity_key из контекста запроса
// (устанавливается AuthMiddleware из subject валидного токена)
func GetIdentityKey(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(IdentityKeyContextKey).(string)
	return key, ok
}

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendDependencyError переводит сбой внешней зависимости (store, image
// провайдер) в статус: таймаут - 504, все остальное - 502.
// Детали ошибки остаются в логах, наружу уходит generic сообщение.
func sendDependencyError(logger *slog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		sendError(logger, w, "dependency timeout", http.StatusGatewayTimeout)
		return
	}
	sendError(logger, w, "dependency unavailable", http.StatusBadGateway)
}

// invalidCredentials - единый 401 ответ для неизвестной identity, неверного
// пароля и неверных координат. Формы ответов совпадают намеренно: различимые
// сообщения позволяли бы перечислять зарегистрированные identity.
func invalidCredentials(logger *slog.Logger, w http.ResponseWriter) {
	sendError(logger, w, "invalid credentials", http.StatusUnauthorized)
}
