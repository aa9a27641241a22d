package models

import "time"

// Identity представляет зарегистрированную учетную запись
type Identity struct {
	ID           string    `json:"id"`            // UUID записи
	IdentityKey  string    `json:"identity_key"`  // уникальный ключ идентичности (partition key обеих таблиц)
	PasswordHash string    `json:"password_hash"` // Argon2id PHC запись
	ImageURL     string    `json:"image_url"`     // reference изображение для PCCP
	ImageWidth   int       `json:"image_width"`   // границы изображения в пикселях
	ImageHeight  int       `json:"image_height"`
	ClickMap     []byte    `json:"-"`          // зашифрованный click-map (AES-GCM blob)
	CreatedAt    time.Time `json:"created_at"` // время регистрации
}
