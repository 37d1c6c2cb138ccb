// Package iketypes holds the small shared vocabulary of the IKEv2 message
// encoding core: exchange types, payload types, and the status-kind errors
// every other package in this module returns.
package iketypes

// ExchangeType identifies the IKEv2 exchange a message belongs to.
// See RFC 7296 Section 3.1.
type ExchangeType uint8

const (
	// ExchangeUndefined is the zero value; a Message starts here before
	// its exchange type is assigned.
	ExchangeUndefined ExchangeType = 0

	// ExchangeIKESAInit negotiates cryptographic algorithms, exchanges
	// nonces, and does a Diffie-Hellman exchange.
	ExchangeIKESAInit ExchangeType = 34

	// ExchangeIKEAuth authenticates the previous messages and exchanges
	// identities and certificates.
	ExchangeIKEAuth ExchangeType = 35

	// ExchangeCreateChildSA creates new Child SAs or rekeys the IKE SA.
	ExchangeCreateChildSA ExchangeType = 36

	// ExchangeInformational carries control messages (delete, notify,
	// keepalive) over an established IKE SA.
	ExchangeInformational ExchangeType = 37
)

// String returns a human-readable exchange type name.
func (e ExchangeType) String() string {
	switch e {
	case ExchangeUndefined:
		return "UNDEFINED"
	case ExchangeIKESAInit:
		return "IKE_SA_INIT"
	case ExchangeIKEAuth:
		return "IKE_AUTH"
	case ExchangeCreateChildSA:
		return "CREATE_CHILD_SA"
	case ExchangeInformational:
		return "INFORMATIONAL"
	default:
		return "UNKNOWN"
	}
}
