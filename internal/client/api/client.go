// Package api реализует HTTP клиент к ClickVault серверу
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/clickvault/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RegisterImage запрашивает candidate reference изображение
func (c *Client) RegisterImage(ctx context.Context, hint string) (*api.ImageResponse, error) {
	path := "/register/image"
	if hint != "" {
		path += "?hint=" + url.QueryEscape(hint)
	}
	var resp api.ImageResponse
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("register image request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует новую identity
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет двухфакторный вход: пароль + click-map
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// VaultStore сохраняет секрет сайта
func (c *Client) VaultStore(ctx context.Context, token string, req api.VaultStoreRequest) (*api.VaultStoreResponse, error) {
	var resp api.VaultStoreResponse
	if err := c.doRequest(ctx, http.MethodPost, "/vault", token, req, &resp); err != nil {
		return nil, fmt.Errorf("vault store request failed: %w", err)
	}
	return &resp, nil
}

// VaultGet получает расшифрованный секрет сайта
func (c *Client) VaultGet(ctx context.Context, token, site string) (*api.VaultEntryResponse, error) {
	var resp api.VaultEntryResponse
	if err := c.doRequest(ctx, http.MethodGet, "/vault/"+url.PathEscape(site), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("vault get request failed: %w", err)
	}
	return &resp, nil
}

// VaultList получает список записей vault
func (c *Client) VaultList(ctx context.Context, token string) (*api.VaultListResponse, error) {
	var resp api.VaultListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/vault", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("vault list request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос и декодирует JSON конверт ответа
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
