// Package ikecrypto provides concrete, real-cryptography implementations
// of the iketransform.Crypter and iketransform.Signer capabilities, and a
// reference IKEv2 key derivation. None of this is consumed by the core;
// it exists for tests, examples, and the CLI, the same relationship the
// teacher's pkg/crypto has to its protocol layers.
package ikecrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// CBC key sizes, matching IKEv2's ENCR_AES_CBC transform IDs.
const (
	CBC128KeySize = 16
	CBC256KeySize = 32
)

var (
	// ErrInvalidKeySize reports a key that is neither 16 nor 32 bytes.
	ErrInvalidKeySize = errors.New("ikecrypto: AES-CBC key must be 16 or 32 bytes")
	// ErrInvalidIVSize reports an IV whose length isn't the AES block size.
	ErrInvalidIVSize = errors.New("ikecrypto: IV must be 16 bytes")
	// ErrNotBlockAligned reports ciphertext/plaintext not a multiple of the block size.
	ErrNotBlockAligned = errors.New("ikecrypto: data is not a multiple of the AES block size")
)

// CBCCrypter implements iketransform.Crypter using AES-CBC, matching
// IKEv2's ENCR_AES_CBC (RFC 7296 Section 3.3.2).
type CBCCrypter struct {
	block cipher.Block
}

// NewCBCCrypter constructs a CBCCrypter from a 128- or 256-bit AES key.
func NewCBCCrypter(key []byte) (*CBCCrypter, error) {
	if len(key) != CBC128KeySize && len(key) != CBC256KeySize {
		return nil, ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &CBCCrypter{block: block}, nil
}

// BlockSize implements iketransform.Crypter.
func (c *CBCCrypter) BlockSize() int {
	return c.block.BlockSize()
}

// Encrypt implements iketransform.Crypter. data must already be padded to
// a multiple of the block size; iv must be one block long.
func (c *CBCCrypter) Encrypt(data, iv []byte) ([]byte, error) {
	if len(iv) != c.block.BlockSize() {
		return nil, ErrInvalidIVSize
	}
	if len(data)%c.block.BlockSize() != 0 {
		return nil, ErrNotBlockAligned
	}
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, data)
	return out, nil
}

// Decrypt implements iketransform.Crypter.
func (c *CBCCrypter) Decrypt(data, iv []byte) ([]byte, error) {
	if len(iv) != c.block.BlockSize() {
		return nil, ErrInvalidIVSize
	}
	if len(data)%c.block.BlockSize() != 0 {
		return nil, ErrNotBlockAligned
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(out, data)
	return out, nil
}
