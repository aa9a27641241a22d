package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKey(t *testing.T) {
	validKey := base64.StdEncoding.EncodeToString(make([]byte, KeySize))

	tests := []struct {
		name    string
		input   string
		errMsg  string
		wantErr bool
	}{
		{
			name:  "valid key",
			input: validKey,
		},
		{
			name:    "empty key",
			input:   "",
			wantErr: true,
			errMsg:  "encryption key is not configured",
		},
		{
			name:    "invalid base64",
			input:   "not-base64!!!",
			wantErr: true,
			errMsg:  "failed to decode encryption key",
		},
		{
			name:    "wrong length",
			input:   base64.StdEncoding.EncodeToString(make([]byte, 16)),
			wantErr: true,
			errMsg:  "encryption key must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := LoadKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, KeySize)
		})
	}
}

func TestGenerateKeyBase64(t *testing.T) {
	encoded, err := GenerateKeyBase64()
	require.NoError(t, err)

	// Сгенерированный ключ должен загружаться обратно
	key, err := LoadKey(encoded)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	// Два вызова дают разные ключи
	second, err := GenerateKeyBase64()
	require.NoError(t, err)
	assert.NotEqual(t, encoded, second)
}
