package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/clickvault/internal/clickmap"
	"github.com/iudanet/clickvault/internal/crypto"
	"github.com/iudanet/clickvault/internal/images"
	"github.com/iudanet/clickvault/internal/models"
	"github.com/iudanet/clickvault/internal/server/storage"
	"github.com/iudanet/clickvault/internal/validation"
	"github.com/iudanet/clickvault/pkg/api"
)

// AuthHandler обрабатывает регистрацию и двухфакторный вход
type AuthHandler struct {
	logger     *slog.Logger
	identities storage.IdentityStorage
	provider   images.Provider
	jwtConfig  JWTConfig
	encKey     []byte
	tolerance  int
	metric     clickmap.Metric
	depTimeout time.Duration
}

// NewAuthHandler создает новый handler для регистрации и входа
func NewAuthHandler(
	logger *slog.Logger,
	identities storage.IdentityStorage,
	provider images.Provider,
	jwtConfig JWTConfig,
	encKey []byte,
	tolerance int,
	metric clickmap.Metric,
	depTimeout time.Duration,
) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		identities: identities,
		provider:   provider,
		jwtConfig:  jwtConfig,
		encKey:     encKey,
		tolerance:  tolerance,
		metric:     metric,
		depTimeout: depTimeout,
	}
}

// RegisterImage обрабатывает GET /register/image?hint=...
// Lookup шаг регистрации: выдает candidate изображение с границами.
// Ничего не пишет - сбой провайдера здесь не может испортить состояние.
func (h *AuthHandler) RegisterImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.depTimeout)
	defer cancel()

	hint := r.URL.Query().Get("hint")

	img, err := h.provider.FetchCandidateImage(ctx, hint)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch candidate image", slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "candidate image fetched", slog.String("hint", hint))

	resp := api.ImageResponse{
		Message: "candidate image",
		URL:     img.URL,
		Width:   img.Width,
		Height:  img.Height,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Register обрабатывает POST /register
// Регистрация новой identity: primary password + click-map на изображении
// из /register/image. Вся валидация и криптография - до единственной записи
// в store; сам INSERT условный и отсекает дубликаты без гонки.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация входа
	if err := validation.ValidateIdentityKey(req.IdentityKey); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateImageURL(req.ImageURL); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	points := toClickPoints(req.Points)
	if err := validation.ValidateClickMap(points, req.ImageWidth, req.ImageHeight); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Хешируем primary password
	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Сериализуем и шифруем click-map
	encoded, err := clickmap.Encode(points)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	encryptedMap, err := crypto.Encrypt(encoded, h.encKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encrypt click map", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	identity := &models.Identity{
		ID:           uuid.New().String(),
		IdentityKey:  req.IdentityKey,
		PasswordHash: passwordHash,
		ImageURL:     req.ImageURL,
		ImageWidth:   req.ImageWidth,
		ImageHeight:  req.ImageHeight,
		ClickMap:     encryptedMap,
		CreatedAt:    time.Now(),
	}

	// Единственная точка коммита: conditional insert по identity_key
	storeCtx, cancel := context.WithTimeout(ctx, h.depTimeout)
	defer cancel()

	if err := h.identities.CreateIdentity(storeCtx, identity); err != nil {
		if errors.Is(err, storage.ErrIdentityExists) {
			h.logger.WarnContext(ctx, "identity already exists", slog.String("identity_key", req.IdentityKey))
			sendError(h.logger, w, "identity already registered", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create identity", slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "identity registered",
		slog.String("identity_key", req.IdentityKey),
		slog.Int("points", len(points)))

	resp := api.RegisterResponse{
		Message:  "identity registered successfully",
		ImageURL: req.ImageURL,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /login
// Линейная state machine с ранними выходами:
// lookup -> primary verify -> decrypt/decode reference -> match -> token.
// Неизвестная identity, неверный пароль и неверные координаты дают один и
// тот же 401 ответ (см. invalidCredentials).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateIdentityKey(req.IdentityKey); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		sendError(h.logger, w, "password is required", http.StatusBadRequest)
		return
	}

	// Шаг 1: lookup
	storeCtx, cancel := context.WithTimeout(ctx, h.depTimeout)
	defer cancel()

	identity, err := h.identities.GetIdentity(storeCtx, req.IdentityKey)
	if err != nil {
		if errors.Is(err, storage.ErrIdentityNotFound) {
			h.logger.WarnContext(ctx, "login failed: identity not found", slog.String("identity_key", req.IdentityKey))
			invalidCredentials(h.logger, w)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get identity", slog.Any("error", err))
		sendDependencyError(h.logger, w, err)
		return
	}

	// Шаг 2: primary verify
	ok, err := crypto.VerifyPassword(req.Password, identity.PasswordHash)
	if err != nil {
		// Поврежденная запись хеша - внутренний сбой, не ошибка пользователя
		h.logger.ErrorContext(ctx, "failed to verify password",
			slog.String("identity_key", req.IdentityKey),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("identity_key", req.IdentityKey))
		invalidCredentials(h.logger, w)
		return
	}

	// Шаг 3: decrypt + decode reference click-map
	// Сбой здесь означает поврежденную запись или чужой ключ шифрования:
	// это внутренний сбой, наружу уходит generic 500, не "wrong coordinates"
	reference, err := h.decodeReference(identity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to decode reference click map",
			slog.String("identity_key", req.IdentityKey),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Шаг 4: cardinality + match
	if !clickmap.Matches(toClickPoints(req.Points), reference, h.tolerance, h.metric) {
		h.logger.WarnContext(ctx, "login failed: click map mismatch", slog.String("identity_key", req.IdentityKey))
		invalidCredentials(h.logger, w)
		return
	}

	// Шаг 5: issue token
	token, expiresIn, err := GenerateSessionToken(h.jwtConfig, identity.IdentityKey)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate session token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "login successful", slog.String("identity_key", identity.IdentityKey))

	resp := api.TokenResponse{
		Message:     "login successful",
		AccessToken: token,
		ExpiresIn:   expiresIn,
		ImageURL:    identity.ImageURL,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// decodeReference расшифровывает и десериализует сохраненный click-map
func (h *AuthHandler) decodeReference(identity *models.Identity) ([]clickmap.Point, error) {
	plain, err := crypto.Decrypt(identity.ClickMap, h.encKey)
	if err != nil {
		return nil, err
	}
	return clickmap.Decode(plain)
}

// toClickPoints конвертирует wire точки во внутренние
func toClickPoints(in []api.Point) []clickmap.Point {
	out := make([]clickmap.Point, len(in))
	for i, p := range in {
		out[i] = clickmap.Point{X: p.X, Y: p.Y}
	}
	return out
}

// toAPIPoints конвертирует внутренние точки в wire формат
func toAPIPoints(in []clickmap.Point) []api.Point {
	out := make([]api.Point, len(in))
	for i, p := range in {
		out[i] = api.Point{X: p.X, Y: p.Y}
	}
	return out
}
