package models

import "time"

// VaultEntry представляет один сохраненный секрет сайта.
// Композитный ключ (OwnerKey, Site): повторный store перезаписывает запись.
// Записи принадлежат исключительно identity из OwnerKey, кросс-доступа нет.
type VaultEntry struct {
	OwnerKey  string    `json:"owner_key"` // identity_key владельца
	Site      string    `json:"site"`      // локатор сайта
	Secret    []byte    `json:"-"`         // зашифрованный секрет (AES-GCM blob)
	Username  string    `json:"username"`  // отображаемый username на сайте (опционально)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
