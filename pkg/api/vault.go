package api

// VaultStoreRequest представляет запрос на сохранение секрета сайта.
// Владелец не передается: он всегда берется из session token.
type VaultStoreRequest struct {
	Site     string `json:"site"`               // локатор сайта
	Secret   string `json:"secret"`             // секрет сайта (пароль)
	Username string `json:"username,omitempty"` // отображаемый username (опционально)
}

// VaultStoreResponse представляет ответ на сохранение
type VaultStoreResponse struct {
	Message string `json:"message"`
	Site    string `json:"site"`
}

// VaultEntryResponse представляет расшифрованную запись vault.
// Вместе с секретом возвращается reference изображение и click-map
// владельца, чтобы клиент мог заново отрисовать аутентификационный экран.
type VaultEntryResponse struct {
	Message  string  `json:"message"`
	Site     string  `json:"site"`
	Secret   string  `json:"secret"`
	Username string  `json:"username,omitempty"`
	ImageURL string  `json:"image_url"`
	Points   []Point `json:"points"`
}

// VaultSummary - элемент списка записей vault (без секретов)
type VaultSummary struct {
	Site     string `json:"site"`
	Username string `json:"username,omitempty"`
}

// VaultListResponse представляет список записей владельца session token
type VaultListResponse struct {
	Message string         `json:"message"`
	Entries []VaultSummary `json:"entries"`
}
