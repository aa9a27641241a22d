package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/clickvault/internal/clickmap"
	"github.com/iudanet/clickvault/internal/crypto"
	"github.com/iudanet/clickvault/internal/models"
	"github.com/iudanet/clickvault/internal/server/storage"
	"github.com/iudanet/clickvault/internal/validation"
	"github.com/iudanet/clickvault/pkg/api"
)

// VaultHandler обрабатывает операции с vault записями.
// Все методы стоят за AuthMiddleware: владелец всегда берется из subject
// session token, owner из запроса не принимается ни в каком виде.
type VaultHandler struct {
	logger     *slog.Logger
	identities storage.IdentityStorage
	vault      storage.VaultStorage
	encKey     []byte
	depTimeout time.Duration
}

// NewVaultHandler создает новый handler для vault операций
func NewVaultHandler(
	logger *slog.Logger,
	identities storage.IdentityStorage,
	vault storage.VaultStorage,
	encKey []byte,
	depTimeout time.Duration,
) *VaultHandler {
	return &VaultHandler{
		logger:     logger,
		identities: identities,
		vault:      vault,
		encKey:     encKey,
		depTimeout: depTimeout,
	}
}

// Store обрабатывает POST /vault
// Шифрует секрет и делает upsert по (subject, site):
// повторный store того же site перезаписывает запись
func (h *VaultHandler) Store(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerKey, ok := GetIdentityKey(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity key not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.VaultStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode vault store request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSite(req.Site); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Secret == "" {
		sendError(h.logger, w, "secret cannot be empty", http.StatusBadRequest)
		return
	}

	encrypted, err := crypto.Encrypt([]byte(req.Secret), h.encKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encrypt secret", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	entry := &models.VaultEntry{
		OwnerKey:  ownerKey,
		Site:      req.Site,
		Secret:    encrypted,
		Username:  req.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	storeCtx, cancel := context.WithTimeout(ctx, h.depTimeout)
	defer cancel()

	if err := h.vault.UpsertEntry(storeCtx, entry); err != nil {
		h.logger.ErrorContext(ctx, "failed to upsert vault entry",
			slog.String("owner", ownerKey),
			slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "vault entry stored",
		slog.String("owner", ownerKey),
		slog.String("site", req.Site))

	resp := api.VaultStoreResponse{
		Message: "vault entry stored",
		Site:    req.Site,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Retrieve обрабатывает GET /vault/{site}
// Возвращает расшифрованный секрет вместе с reference изображением и
// click-map владельца - клиенту этого достаточно, чтобы заново отрисовать
// аутентификационный экран
func (h *VaultHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerKey, ok := GetIdentityKey(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity key not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	site := r.PathValue("site")
	if err := validation.ValidateSite(site); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx, h.depTimeout)
	defer cancel()

	entry, err := h.vault.GetEntry(storeCtx, ownerKey, site)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			sendError(h.logger, w, "entry not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get vault entry", slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	secret, err := crypto.Decrypt(entry.Secret, h.encKey)
	if err != nil {
		// Поврежденный ciphertext - внутренний сбой, логируем с деталями,
		// наружу только generic ответ
		h.logger.ErrorContext(ctx, "failed to decrypt vault secret",
			slog.String("owner", ownerKey),
			slog.String("site", site),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	identity, err := h.identities.GetIdentity(storeCtx, ownerKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get owner identity", slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	points, err := h.decodeOwnerClickMap(identity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode owner click map",
			slog.String("owner", ownerKey),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "vault entry retrieved",
		slog.String("owner", ownerKey),
		slog.String("site", site))

	resp := api.VaultEntryResponse{
		Message:  "vault entry",
		Site:     entry.Site,
		Secret:   string(secret),
		Username: entry.Username,
		ImageURL: identity.ImageURL,
		Points:   toAPIPoints(points),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// List обрабатывает GET /vault
// Возвращает summary записей владельца session token: site и username,
// без секретов. Запрос в store всегда ограничен owner ключом.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerKey, ok := GetIdentityKey(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "identity key not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx, h.depTimeout)
	defer cancel()

	entries, err := h.vault.ListEntries(storeCtx, ownerKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list vault entries",
			slog.String("owner", ownerKey),
			slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	summaries := make([]api.VaultSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, api.VaultSummary{
			Site:     entry.Site,
			Username: entry.Username,
		})
	}

	resp := api.VaultListResponse{
		Message: "vault entries",
		Entries: summaries,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// decodeOwnerClickMap расшифровывает click-map владельца записи
func (h *VaultHandler) decodeOwnerClickMap(identity *models.Identity) ([]clickmap.Point, error) {
	plain, err := crypto.Decrypt(identity.ClickMap, h.encKey)
	if err != nil {
		return nil, err
	}
	return clickmap.Decode(plain)
}
