package ikepayload

import "testing"

func TestIDVerifyChecksAddressFamily(t *testing.T) {
	cases := []struct {
		name    string
		idType  IDType
		data    []byte
		wantErr bool
	}{
		{"ipv4-correct", IDIPv4Addr, make([]byte, 4), false},
		{"ipv4-wrong-length", IDIPv4Addr, make([]byte, 6), true},
		{"ipv6-correct", IDIPv6Addr, make([]byte, 16), false},
		{"ipv6-wrong-length", IDIPv6Addr, make([]byte, 4), true},
		{"fqdn-any-length", IDFQDN, []byte("host.example.com"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id := NewIDi()
			id.IDType = c.idType
			id.Data = c.data
			err := id.Verify()
			if c.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !c.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
