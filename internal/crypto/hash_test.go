package crypto

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashPassword(t *testing.T) {
	record, err := HashPassword("Secret123")
	require.NoError(t, err)

	// Self-contained PHC формат с параметрами внутри записи
	assert.True(t, strings.HasPrefix(record, "$argon2id$v=19$m=65536,t=1,p=4$"))
	parts := strings.Split(record, "$")
	require.Len(t, parts, 6)
	assert.NotEmpty(t, parts[4]) // salt
	assert.NotEmpty(t, parts[5]) // digest
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	// Соль генерируется на каждый вызов: одинаковый пароль дает разные записи
	first, err := HashPassword("Secret123")
	require.NoError(t, err)
	second, err := HashPassword("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	record, err := HashPassword("Secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		record   string
		want     bool
		wantErr  bool
	}{
		{
			name:     "correct password",
			password: "Secret123",
			record:   record,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "Secret124",
			record:   record,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			record:   record,
			wantErr:  true,
		},
		{
			name:     "malformed record",
			password: "Secret123",
			record:   "not-a-phc-record",
			wantErr:  true,
		},
		{
			name:     "unsupported algorithm",
			password: "Secret123",
			record:   "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
			wantErr:  true,
		},
		{
			name:     "zero cost parameter",
			password: "Secret123",
			record:   "$argon2id$v=19$m=0,t=1,p=4$c2FsdA$ZGlnZXN0",
			wantErr:  true,
		},
		{
			name:     "bad salt encoding",
			password: "Secret123",
			record:   "$argon2id$v=19$m=65536,t=1,p=4$%%%$ZGlnZXN0",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword(tt.password, tt.record)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerifyPassword_ParamsFromRecord(t *testing.T) {
	// Запись с нестандартными (но валидными) параметрами t=2, p=1:
	// verify обязан читать их из записи, не из констант
	const password = "Secret123"
	salt := []byte("saltsaltsaltsalt")

	digest := argon2.IDKey([]byte(password), salt, 2, 8*1024, 1, 32)
	record := fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		8*1024, 2, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	ok, err := VerifyPassword(password, record)
	require.NoError(t, err)
	assert.True(t, ok)
}
