// Package api содержит wire-типы HTTP API, общие для сервера и клиента.
// Все ответы - маленький JSON конверт: message либо error, плюс данные.
package api

// Point - координата клика в пиксельном пространстве изображения
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ImageResponse представляет candidate reference изображение для регистрации
type ImageResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`    // локатор изображения
	Width   int    `json:"width"`  // границы в пикселях
	Height  int    `json:"height"`
}

// RegisterRequest представляет запрос на регистрацию новой identity
type RegisterRequest struct {
	IdentityKey string  `json:"identity_key"` // уникальный ключ идентичности
	Password    string  `json:"password"`     // primary password
	ImageURL    string  `json:"image_url"`    // reference изображение из /register/image
	ImageWidth  int     `json:"image_width"`  // границы изображения от провайдера
	ImageHeight int     `json:"image_height"`
	Points      []Point `json:"points"` // упорядоченный click-map
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"` // echo reference изображения
}

// LoginRequest представляет двухфакторный запрос на вход
type LoginRequest struct {
	IdentityKey string  `json:"identity_key"`
	Password    string  `json:"password"`
	Points      []Point `json:"points"` // воспроизведенный click-map
}

// TokenResponse представляет ответ с session token
type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"` // JWT, subject = identity_key
	ExpiresIn   int64  `json:"expires_in"`   // время жизни в секундах
	ImageURL    string `json:"image_url"`    // reference изображение для повторного рендера
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
