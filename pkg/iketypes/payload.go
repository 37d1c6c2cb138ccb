package iketypes

// PayloadType identifies the kind of an IKEv2 payload record.
// See RFC 7296 Section 3.2, Table 2.
type PayloadType uint8

const (
	// NoPayload is the next-type sentinel terminating a payload chain.
	NoPayload PayloadType = 0

	// Header is a pseudo-type: it never appears on the wire as a payload,
	// but drives the wire codec's parser the same way every other type
	// does (it is the fixed starting point of every parse).
	Header PayloadType = 1

	SecurityAssociation  PayloadType = 33
	KeyExchange          PayloadType = 34
	IdentificationI      PayloadType = 35
	IdentificationR      PayloadType = 36
	Certificate          PayloadType = 37
	CertificateRequest   PayloadType = 38
	Authentication       PayloadType = 39
	Nonce                PayloadType = 40
	Notify               PayloadType = 41
	Delete               PayloadType = 42
	VendorID             PayloadType = 43
	TrafficSelectorI     PayloadType = 44
	TrafficSelectorR     PayloadType = 45
	Encrypted            PayloadType = 46
	Configuration        PayloadType = 47
	ExtensibleAuth       PayloadType = 48
)

// String returns the RFC 7296 Table 2 name for the payload type.
func (p PayloadType) String() string {
	switch p {
	case NoPayload:
		return "NO_PAYLOAD"
	case Header:
		return "HEADER"
	case SecurityAssociation:
		return "SA"
	case KeyExchange:
		return "KE"
	case IdentificationI:
		return "IDi"
	case IdentificationR:
		return "IDr"
	case Certificate:
		return "CERT"
	case CertificateRequest:
		return "CERTREQ"
	case Authentication:
		return "AUTH"
	case Nonce:
		return "Ni/Nr"
	case Notify:
		return "N"
	case Delete:
		return "D"
	case VendorID:
		return "V"
	case TrafficSelectorI:
		return "TSi"
	case TrafficSelectorR:
		return "TSr"
	case Encrypted:
		return "SK"
	case Configuration:
		return "CP"
	case ExtensibleAuth:
		return "EAP"
	default:
		return "UNKNOWN"
	}
}
