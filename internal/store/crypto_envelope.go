package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const envelopeVersion = 1

// ErrWrongPassphrase is returned when a sealed session cannot be opened,
// either because the passphrase differs or because the file was altered.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session file")

// kdfParams are the scrypt cost parameters, stored next to the ciphertext so
// they can be raised without breaking existing files.
type kdfParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

var defaultKDF = kdfParams{N: 1 << 15, R: 8, P: 1}

// envelope is the on-disk form of a sealed session. The salt doubles as
// additional authenticated data.
type envelope struct {
	Version    int       `json:"version"`
	KDF        kdfParams `json:"kdf"`
	Salt       []byte    `json:"salt"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

func (p kdfParams) aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return chacha20poly1305.NewX(key)
}

// seal encrypts plaintext under a key derived from passphrase.
func seal(passphrase string, plaintext []byte, kdf kdfParams) ([]byte, error) {
	env := envelope{Version: envelopeVersion, KDF: kdf, Salt: make([]byte, 16)}
	if _, err := rand.Read(env.Salt); err != nil {
		return nil, err
	}
	aead, err := kdf.aead(passphrase, env.Salt)
	if err != nil {
		return nil, err
	}
	env.Nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(env.Nonce); err != nil {
		return nil, err
	}
	env.Ciphertext = aead.Seal(nil, env.Nonce, plaintext, env.Salt)
	return json.Marshal(env)
}

// open reverses seal.
func open(passphrase string, sealed []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return nil, ErrWrongPassphrase
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported session file version %d", env.Version)
	}
	aead, err := env.KDF.aead(passphrase, env.Salt)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
