// clickvault-genkey печатает новый AES-256 ключ в Base64.
// Ключ генерируется один раз офлайн и передается серверу через
// CLICKVAULT_ENCRYPTION_KEY: сервер намеренно не умеет генерировать ключ
// сам, чтобы рестарт не осиротил ранее зашифрованные записи.
package main

import (
	"fmt"
	"os"

	"github.com/iudanet/clickvault/internal/crypto"
)

func main() {
	key, err := crypto.GenerateKeyBase64()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(key)
}
