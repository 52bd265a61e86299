// Package wallet resolves the swapping wallet's public key from the environment.
package wallet

import (
	"errors"
	"fmt"
	"os"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

const (
	EnvPublicKey  = "SOLANA_PUBLIC_KEY"
	EnvPrivateKey = "SOLANA_PRIVATE_KEY_BASE58"
)

// UserPublicKey prefers SOLANA_PUBLIC_KEY and falls back to deriving the key
// from SOLANA_PRIVATE_KEY_BASE58. A .env file is loaded first if present.
func UserPublicKey() (solana.PublicKey, error) {
	_ = godotenv.Load() // best-effort
	if s := os.Getenv(EnvPublicKey); s != "" {
		key, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("%s: %w", EnvPublicKey, err)
		}
		return key, nil
	}
	if b58 := os.Getenv(EnvPrivateKey); b58 != "" {
		priv, err := solana.PrivateKeyFromBase58(b58)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("%s: %w", EnvPrivateKey, err)
		}
		return priv.PublicKey(), nil
	}
	return solana.PublicKey{}, errors.New(EnvPublicKey + " or " + EnvPrivateKey + " not set")
}
