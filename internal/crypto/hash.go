package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для хеширования primary password
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного digest в байтах
	Argon2KeyLen = 32
	// PasswordSaltSize - размер соли в байтах
	PasswordSaltSize = 16
)

// HashPassword хеширует пароль через Argon2id и возвращает self-contained
// запись в PHC формате:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 digest>
//
// Соль генерируется заново на каждый вызов, поэтому два вызова для одного
// пароля дают разные записи. Параметры встроены в запись и при проверке
// читаются из нее, а не из констант.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	salt := make([]byte, PasswordSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	record := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		Argon2Memory,
		Argon2Time,
		Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return record, nil
}

// VerifyPassword проверяет пароль против PHC записи из HashPassword.
// Digest пересчитывается под параметрами и солью из записи и сравнивается
// в constant time (subtle.ConstantTimeCompare), без short-circuit сравнения.
func VerifyPassword(password, record string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("password cannot be empty")
	}

	salt, digest, memory, time, threads, err := parseRecord(record)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

// parseRecord разбирает PHC запись на соль, digest и параметры
func parseRecord(record string) (salt, digest []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(record, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record")
	}
	if parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, fmt.Errorf("unsupported hash algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: %w", err)
	}
	if memory == 0 || time == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: zero cost parameter")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: bad salt: %w", err)
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: bad digest: %w", err)
	}
	if len(salt) == 0 || len(digest) == 0 {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed password record: empty salt or digest")
	}

	return salt, digest, memory, time, threads, nil
}
