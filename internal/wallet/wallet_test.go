package wallet

import (
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

func TestUserPublicKeyFromPublicKey(t *testing.T) {
	w := solana.NewWallet()
	t.Setenv(EnvPublicKey, w.PublicKey().String())
	t.Setenv(EnvPrivateKey, "")

	key, err := UserPublicKey()
	if err != nil {
		t.Fatalf("expected key, got error: %v", err)
	}
	if !key.Equals(w.PublicKey()) {
		t.Fatalf("expected public key %s, got %s", w.PublicKey(), key)
	}
}

func TestUserPublicKeyFromPrivateKey(t *testing.T) {
	w := solana.NewWallet()
	t.Setenv(EnvPublicKey, "")
	t.Setenv(EnvPrivateKey, w.PrivateKey.String())

	key, err := UserPublicKey()
	if err != nil {
		t.Fatalf("expected key, got error: %v", err)
	}
	if !key.Equals(w.PublicKey()) {
		t.Fatalf("expected public key %s, got %s", w.PublicKey(), key)
	}
}

func TestUserPublicKeyInvalid(t *testing.T) {
	t.Setenv(EnvPublicKey, "not-a-key")
	if _, err := UserPublicKey(); err == nil {
		t.Fatalf("expected error for invalid public key")
	}
}

func TestUserPublicKeyMissing(t *testing.T) {
	t.Setenv(EnvPublicKey, "")
	t.Setenv(EnvPrivateKey, "")
	if _, err := UserPublicKey(); err == nil {
		t.Fatalf("expected error when env missing")
	}
}
