package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/viper"

	"github.com/lucifiery/ikev2/pkg/ikecrypto"
	"github.com/lucifiery/ikev2/pkg/iketransform"
)

// resolveTransforms builds the Crypter/Signer pair used to (de)protect an
// Encryption payload from the --key/--signer-key flags. When a flag is
// unset it generates a random key and prints a notice naming the flag and
// the key length (the key itself is not printed), so a single invocation
// is still self-consistent.
func resolveTransforms() (iketransform.Crypter, iketransform.Signer, error) {
	key, err := resolveKeyFlag("key", ikecrypto.CBC256KeySize)
	if err != nil {
		return nil, nil, err
	}
	signerKey, err := resolveKeyFlag("signer-key", ikecrypto.CBC256KeySize)
	if err != nil {
		return nil, nil, err
	}

	crypter, err := ikecrypto.NewCBCCrypter(key)
	if err != nil {
		return nil, nil, err
	}
	signer, err := ikecrypto.NewHMACSigner(signerKey, ikecrypto.Truncated128)
	if err != nil {
		return nil, nil, err
	}
	return crypter, signer, nil
}

func resolveKeyFlag(flag string, randomLen int) ([]byte, error) {
	hexKey := viper.GetString(flag)
	if hexKey == "" {
		fmt.Printf("no --%s given, generating a random %d-byte key\n", flag, randomLen)
		return randomBytes(randomLen), nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("ikecodec: --%s is not valid hex: %w", flag, err)
	}
	return key, nil
}
