package iketypes

import "testing"

func TestPayloadTypeString(t *testing.T) {
	cases := []struct {
		p    PayloadType
		want string
	}{
		{NoPayload, "NO_PAYLOAD"},
		{SecurityAssociation, "SA"},
		{KeyExchange, "KE"},
		{Nonce, "Ni/Nr"},
		{Encrypted, "SK"},
		{PayloadType(200), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.p.String(); got != c.want {
			t.Errorf("PayloadType(%d).String() = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestExchangeTypeString(t *testing.T) {
	cases := []struct {
		e    ExchangeType
		want string
	}{
		{ExchangeUndefined, "UNDEFINED"},
		{ExchangeIKESAInit, "IKE_SA_INIT"},
		{ExchangeIKEAuth, "IKE_AUTH"},
		{ExchangeCreateChildSA, "CREATE_CHILD_SA"},
		{ExchangeInformational, "INFORMATIONAL"},
		{ExchangeType(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.e.String(); got != c.want {
			t.Errorf("ExchangeType(%d).String() = %q, want %q", c.e, got, c.want)
		}
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	errs := []error{ErrInvalidState, ErrParse, ErrVerify, ErrNotSupported, ErrNotFound, ErrFailed}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && a == b {
				t.Fatalf("sentinel errors %d and %d are the same value", i, j)
			}
		}
	}
}
