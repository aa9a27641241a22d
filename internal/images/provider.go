// Package images интегрирует внешний image-провайдер, выдающий candidate
// reference изображения для PCCP. Провайдер участвует только в регистрации
// и lookup изображения: его сбои никогда не трогают identity или vault
// состояние (вызов всегда предшествует любой записи).
package images

import "context"

// Image - candidate reference изображение с его пиксельными границами
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Provider defines interface for fetching candidate reference images
type Provider interface {
	// FetchCandidateImage returns a candidate image for the given query hint.
	// Implementations must honor ctx cancellation/deadline.
	FetchCandidateImage(ctx context.Context, queryHint string) (*Image, error)
}
