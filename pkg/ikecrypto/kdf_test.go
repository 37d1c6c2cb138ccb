package ikecrypto

import "testing"

func TestDeriveKeysProducesDistinctNonEmptyKeys(t *testing.T) {
	sharedSecret := []byte("diffie-hellman shared secret g^ir")
	nonceI := []byte("initiator nonce")
	nonceR := []byte("responder nonce")

	k, err := DeriveKeys(sharedSecret, nonceI, nonceR, 32, 32)
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}

	keys := [][]byte{k.SKd, k.SKai, k.SKar, k.SKei, k.SKer, k.SKpi, k.SKpr}
	for i, a := range keys {
		if len(a) == 0 {
			t.Fatalf("key %d is empty", i)
		}
		for j, b := range keys {
			if i != j && len(a) == len(b) && string(a) == string(b) {
				t.Fatalf("keys %d and %d are identical", i, j)
			}
		}
	}
}

func TestDeriveKeysIsDeterministic(t *testing.T) {
	sharedSecret := []byte("shared secret")
	nonceI := []byte("ni")
	nonceR := []byte("nr")

	k1, err := DeriveKeys(sharedSecret, nonceI, nonceR, 16, 16)
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}
	k2, err := DeriveKeys(sharedSecret, nonceI, nonceR, 16, 16)
	if err != nil {
		t.Fatalf("DeriveKeys: %v", err)
	}
	if string(k1.SKd) != string(k2.SKd) || string(k1.SKei) != string(k2.SKei) {
		t.Fatal("DeriveKeys is not deterministic given identical inputs")
	}
}
