package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL - публичный Unsplash API
const DefaultBaseURL = "https://api.unsplash.com"

// UnsplashClient получает случайное изображение через Unsplash API
type UnsplashClient struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewUnsplashClient создает клиент Unsplash
// baseURL переопределяется в тестах, timeout ограничивает каждый запрос
func NewUnsplashClient(baseURL, accessKey string, timeout time.Duration) *UnsplashClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &UnsplashClient{
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// randomPhoto - ровно те поля ответа /photos/random, которые нам нужны
type randomPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FetchCandidateImage запрашивает случайное изображение у Unsplash.
// queryHint (опционально) сужает тематику выдачи.
func (c *UnsplashClient) FetchCandidateImage(ctx context.Context, queryHint string) (*Image, error) {
	reqURL := c.baseURL + "/photos/random"
	if queryHint != "" {
		reqURL += "?query=" + url.QueryEscape(queryHint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image provider request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read image provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image provider returned status %d", resp.StatusCode)
	}

	var photo randomPhoto
	if err := json.Unmarshal(body, &photo); err != nil {
		return nil, fmt.Errorf("failed to decode image provider response: %w", err)
	}

	if photo.URLs.Regular == "" || photo.Width <= 0 || photo.Height <= 0 {
		return nil, fmt.Errorf("image provider returned incomplete image data")
	}

	return &Image{
		URL:    photo.URLs.Regular,
		Width:  photo.Width,
		Height: photo.Height,
	}, nil
}
