package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/clickvault/internal/clickmap"
	"github.com/iudanet/clickvault/internal/crypto"
	"github.com/iudanet/clickvault/internal/models"
	"github.com/iudanet/clickvault/internal/server/storage"
	"github.com/iudanet/clickvault/pkg/api"
)

// mockVaultStorage is a mock implementation of VaultStorage for testing
type mockVaultStorage struct {
	entries     map[string]*models.VaultEntry // owner|site -> entry
	upsertError error
	getError    error
	listError   error
}

func newMockVaultStorage() *mockVaultStorage {
	return &mockVaultStorage{entries: make(map[string]*models.VaultEntry)}
}

func (m *mockVaultStorage) key(owner, site string) string {
	return owner + "|" + site
}

func (m *mockVaultStorage) UpsertEntry(ctx context.Context, entry *models.VaultEntry) error {
	if m.upsertError != nil {
		return m.upsertError
	}
	m.entries[m.key(entry.OwnerKey, entry.Site)] = entry
	return nil
}

func (m *mockVaultStorage) GetEntry(ctx context.Context, ownerKey, site string) (*models.VaultEntry, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	entry, ok := m.entries[m.key(ownerKey, site)]
	if !ok {
		return nil, storage.ErrEntryNotFound
	}
	return entry, nil
}

func (m *mockVaultStorage) ListEntries(ctx context.Context, ownerKey string) ([]*models.VaultEntry, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var result []*models.VaultEntry
	for _, entry := range m.entries {
		if entry.OwnerKey == ownerKey {
			result = append(result, entry)
		}
	}
	return result, nil
}

func newTestVaultHandler(t *testing.T, identities *mockIdentityStorage, vault *mockVaultStorage, encKey []byte) *VaultHandler {
	t.Helper()
	return NewVaultHandler(testLogger(), identities, vault, encKey, time.Second)
}

// seedOwner кладет identity с валидным зашифрованным click-map
func seedOwner(t *testing.T, identities *mockIdentityStorage, encKey []byte, key string) {
	t.Helper()
	encoded, err := clickmap.Encode([]clickmap.Point{{X: 2, Y: 3}, {X: 8, Y: 1}})
	require.NoError(t, err)
	encrypted, err := crypto.Encrypt(encoded, encKey)
	require.NoError(t, err)

	identities.identities[key] = &models.Identity{
		ID:          "id-" + key,
		IdentityKey: key,
		ImageURL:    "https://images.example.com/photo.jpg",
		ImageWidth:  1080,
		ImageHeight: 720,
		ClickMap:    encrypted,
		CreatedAt:   time.Now(),
	}
}

func authedRequest(method, target string, body []byte, ownerKey string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), IdentityKeyContextKey, ownerKey)
	return r.WithContext(ctx)
}

func TestVaultHandler_Store_Success(t *testing.T) {
	encKey := testEncKey(t)
	identities := newMockIdentityStorage()
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, identities, vault, encKey)

	body, _ := json.Marshal(api.VaultStoreRequest{
		Site:     "github.com",
		Secret:   "site-password",
		Username: "dev@example.com",
	})
	w := httptest.NewRecorder()
	h.Store(w, authedRequest(http.MethodPost, "/vault", body, "u1"))

	require.Equal(t, http.StatusCreated, w.Code)

	// Секрет лежит в store только зашифрованным
	stored := vault.entries["u1|github.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, []byte("site-password"), stored.Secret)

	plain, err := crypto.Decrypt(stored.Secret, encKey)
	require.NoError(t, err)
	assert.Equal(t, "site-password", string(plain))
}

func TestVaultHandler_Store_OwnerFromToken(t *testing.T) {
	encKey := testEncKey(t)
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, newMockIdentityStorage(), vault, encKey)

	// Owner в теле запроса не существует как поле: владелец всегда subject
	body := []byte(`{"site":"github.com","secret":"s3cret","owner_key":"attacker"}`)
	w := httptest.NewRecorder()
	h.Store(w, authedRequest(http.MethodPost, "/vault", body, "victim"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, vault.entries["victim|github.com"])
	assert.Nil(t, vault.entries["attacker|github.com"])
}

func TestVaultHandler_Store_Validation(t *testing.T) {
	h := newTestVaultHandler(t, newMockIdentityStorage(), newMockVaultStorage(), testEncKey(t))

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "empty site", body: `{"site":"","secret":"x"}`},
		{name: "empty secret", body: `{"site":"github.com","secret":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Store(w, authedRequest(http.MethodPost, "/vault", []byte(tt.body), "u1"))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestVaultHandler_Store_NoIdentityInContext(t *testing.T) {
	h := newTestVaultHandler(t, newMockIdentityStorage(), newMockVaultStorage(), testEncKey(t))

	body := []byte(`{"site":"github.com","secret":"x"}`)
	r := httptest.NewRequest(http.MethodPost, "/vault", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Store(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVaultHandler_Store_StoreDown(t *testing.T) {
	vault := newMockVaultStorage()
	vault.upsertError = errors.New("disk failure")
	h := newTestVaultHandler(t, newMockIdentityStorage(), vault, testEncKey(t))

	body := []byte(`{"site":"github.com","secret":"x"}`)
	w := httptest.NewRecorder()
	h.Store(w, authedRequest(http.MethodPost, "/vault", body, "u1"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func retrieveRequest(site, owner string) *http.Request {
	r := authedRequest(http.MethodGet, "/vault/"+site, nil, owner)
	r.SetPathValue("site", site)
	return r
}

func TestVaultHandler_Retrieve_Success(t *testing.T) {
	encKey := testEncKey(t)
	identities := newMockIdentityStorage()
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, identities, vault, encKey)

	seedOwner(t, identities, encKey, "u1")

	encrypted, err := crypto.Encrypt([]byte("site-password"), encKey)
	require.NoError(t, err)
	vault.entries["u1|github.com"] = &models.VaultEntry{
		OwnerKey: "u1",
		Site:     "github.com",
		Secret:   encrypted,
		Username: "dev@example.com",
	}

	w := httptest.NewRecorder()
	h.Retrieve(w, retrieveRequest("github.com", "u1"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.VaultEntryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "github.com", resp.Site)
	assert.Equal(t, "site-password", resp.Secret)
	assert.Equal(t, "dev@example.com", resp.Username)
	// Вместе с секретом приходит reference изображение и click-map владельца
	assert.Equal(t, "https://images.example.com/photo.jpg", resp.ImageURL)
	assert.Equal(t, []api.Point{{X: 2, Y: 3}, {X: 8, Y: 1}}, resp.Points)
}

func TestVaultHandler_Retrieve_NotFound(t *testing.T) {
	encKey := testEncKey(t)
	identities := newMockIdentityStorage()
	h := newTestVaultHandler(t, identities, newMockVaultStorage(), encKey)
	seedOwner(t, identities, encKey, "u1")

	w := httptest.NewRecorder()
	h.Retrieve(w, retrieveRequest("unknown.com", "u1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaultHandler_Retrieve_ForeignEntryInvisible(t *testing.T) {
	encKey := testEncKey(t)
	identities := newMockIdentityStorage()
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, identities, vault, encKey)
	seedOwner(t, identities, encKey, "alice")

	encrypted, err := crypto.Encrypt([]byte("bob-secret"), encKey)
	require.NoError(t, err)
	vault.entries["bob|github.com"] = &models.VaultEntry{
		OwnerKey: "bob",
		Site:     "github.com",
		Secret:   encrypted,
	}

	// Чужая запись для alice неотличима от несуществующей
	w := httptest.NewRecorder()
	h.Retrieve(w, retrieveRequest("github.com", "alice"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaultHandler_Retrieve_CorruptedSecret(t *testing.T) {
	encKey := testEncKey(t)
	identities := newMockIdentityStorage()
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, identities, vault, encKey)
	seedOwner(t, identities, encKey, "u1")

	vault.entries["u1|github.com"] = &models.VaultEntry{
		OwnerKey: "u1",
		Site:     "github.com",
		Secret:   []byte("not-a-ciphertext-at-all"),
	}

	w := httptest.NewRecorder()
	h.Retrieve(w, retrieveRequest("github.com", "u1"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVaultHandler_List(t *testing.T) {
	encKey := testEncKey(t)
	vault := newMockVaultStorage()
	h := newTestVaultHandler(t, newMockIdentityStorage(), vault, encKey)

	encrypted, err := crypto.Encrypt([]byte("s"), encKey)
	require.NoError(t, err)
	vault.entries["u1|github.com"] = &models.VaultEntry{OwnerKey: "u1", Site: "github.com", Secret: encrypted, Username: "dev"}
	vault.entries["u2|other.com"] = &models.VaultEntry{OwnerKey: "u2", Site: "other.com", Secret: encrypted}

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/vault", nil, "u1"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.VaultListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "github.com", resp.Entries[0].Site)
	assert.Equal(t, "dev", resp.Entries[0].Username)

	// Summary не содержит секретов
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestVaultHandler_List_Empty(t *testing.T) {
	h := newTestVaultHandler(t, newMockIdentityStorage(), newMockVaultStorage(), testEncKey(t))

	w := httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/vault", nil, "u1"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.VaultListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Entries)
}
