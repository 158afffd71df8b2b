// Package cryptox implements the symmetric at-rest obfuscation codec used by
// the key-value store.
//
// The scheme is a fixed one for compatibility with already-persisted data:
// the key is the SHA-256 digest of an application secret, a fresh random
// 16-byte IV is drawn per encryption, and each plaintext byte is XOR-combined
// with the corresponding key byte and IV byte (both cycled). The IV is
// prepended to the ciphertext and the whole blob is base64-encoded.
//
// This is NOT authenticated encryption and offers weak diffusion; treat it as
// lightweight obfuscation, not confidentiality. Changing the algorithm would
// make every previously stored value undecryptable, so any upgrade needs a
// storage migration, not a drop-in swap.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

const ivSize = 16

// ErrMalformedCiphertext is returned by Decrypt when the input is not valid
// base64 or is too short to contain an IV.
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Codec encrypts and decrypts UTF-8 text to/from a single base64 blob.
type Codec struct {
	key [sha256.Size]byte
}

// NewCodec derives the XOR key from the given application secret.
func NewCodec(secret string) *Codec {
	return &Codec{key: sha256.Sum256([]byte(secret))}
}

// Encrypt returns base64(iv || ciphertext) for the given plaintext. A fresh
// random IV is generated per call, so encrypting the same text twice yields
// different blobs.
func (c *Codec) Encrypt(text string) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating iv: %w", err)
	}

	plaintext := []byte(text)
	out := make([]byte, ivSize+len(plaintext))
	copy(out, iv)
	for i, b := range plaintext {
		out[ivSize+i] = b ^ c.key[i%len(c.key)] ^ iv[i%ivSize]
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It returns ErrMalformedCiphertext (wrapped) if
// the blob is not valid base64 or decodes to fewer than 16 bytes.
func (c *Codec) Decrypt(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < ivSize {
		return "", fmt.Errorf("%w: blob shorter than iv", ErrMalformedCiphertext)
	}

	iv := raw[:ivSize]
	ciphertext := raw[ivSize:]
	plaintext := make([]byte, len(ciphertext))
	for i, b := range ciphertext {
		plaintext[i] = b ^ c.key[i%len(c.key)] ^ iv[i%ivSize]
	}

	return string(plaintext), nil
}
