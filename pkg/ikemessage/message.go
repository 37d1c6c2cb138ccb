// Package ikemessage implements the Message container (spec.md Section
// 4.E): the IKEv2 message's metadata, ordered payload list, the static
// rule table, and the generate/parse state machine built on top of
// packages ikewire and iketransform.
package ikemessage

import (
	"net"

	"github.com/pion/logging"

	"github.com/lucifiery/ikev2/pkg/iketransform"
	"github.com/lucifiery/ikev2/pkg/iketypes"
	"github.com/lucifiery/ikev2/pkg/ikewire"
)

// State identifies where a Message sits in its generate/parse lifecycle
// (spec.md Section 4.E "State machine").
type State int

const (
	// StateCreated is the initial state of every Message.
	StateCreated State = iota
	// StatePayloadsAdded is entered on the first AddPayload call.
	StatePayloadsAdded
	// StateGenerated is entered once Generate has produced a packet.
	StateGenerated
	// StateHeaderParsed is entered once ParseHeader succeeds.
	StateHeaderParsed
	// StateBodyParsed is entered once ParseBody succeeds.
	StateBodyParsed
)

// Config configures a Message's ambient concerns.
type Config struct {
	// LoggerFactory for creating this Message's logger. If nil, logging
	// is disabled.
	LoggerFactory logging.LoggerFactory
}

// Message holds the metadata, payload list, and generate/parse state for
// one IKEv2 message (spec.md Section 3 "Message").
type Message struct {
	config Config
	log    logging.LeveledLogger

	majorVersion uint8
	minorVersion uint8
	exchangeType iketypes.ExchangeType
	isRequest    bool
	messageID    uint32
	ikeSAID      *IKESAID

	source      net.Addr
	destination net.Addr

	payloads     []ikewire.Payload
	firstPayload iketypes.PayloadType

	packet []byte // cached/borrowed serialized buffer
	parser *ikewire.Parser

	state State
}

// New constructs an empty Message at version 2.0, exchange type
// undefined, state Created.
func New(config Config) *Message {
	m := &Message{
		config:       config,
		majorVersion: ikewire.MessageVersion,
		exchangeType: iketypes.ExchangeUndefined,
		firstPayload: iketypes.NoPayload,
	}
	if config.LoggerFactory != nil {
		m.log = config.LoggerFactory.NewLogger("ikemessage")
	}
	return m
}

// ExchangeType returns the message's exchange type.
func (m *Message) ExchangeType() iketypes.ExchangeType { return m.exchangeType }

// SetExchangeType assigns the message's exchange type.
func (m *Message) SetExchangeType(t iketypes.ExchangeType) { m.exchangeType = t }

// IsRequest reports whether the message is a request (vs. a response).
func (m *Message) IsRequest() bool { return m.isRequest }

// SetRequest sets the request/response flag.
func (m *Message) SetRequest(request bool) { m.isRequest = request }

// MessageID returns the message id.
func (m *Message) MessageID() uint32 { return m.messageID }

// SetMessageID assigns the message id.
func (m *Message) SetMessageID(id uint32) { m.messageID = id }

// IKESAID returns the assigned IKE SA id, or nil if unassigned.
func (m *Message) IKESAID() *IKESAID { return m.ikeSAID }

// SetIKESAID assigns the IKE SA id, cloning it.
func (m *Message) SetIKESAID(id IKESAID) {
	cloned := id.Clone()
	m.ikeSAID = &cloned
}

// Source returns the source endpoint.
func (m *Message) Source() net.Addr { return m.source }

// SetSource assigns the source endpoint.
func (m *Message) SetSource(addr net.Addr) { m.source = addr }

// Destination returns the destination endpoint.
func (m *Message) Destination() net.Addr { return m.destination }

// SetDestination assigns the destination endpoint.
func (m *Message) SetDestination(addr net.Addr) { m.destination = addr }

// FirstPayload returns the type of the first payload, or NoPayload if
// the sequence is empty.
func (m *Message) FirstPayload() iketypes.PayloadType { return m.firstPayload }

// State returns the message's current lifecycle state.
func (m *Message) State() State { return m.state }

// Payloads returns the current payload list. Callers must not retain
// pointers into the returned slice beyond the Message's own lifetime.
func (m *Message) Payloads() []ikewire.Payload {
	out := make([]ikewire.Payload, len(m.payloads))
	copy(out, m.payloads)
	return out
}

// payloadIterator is a forward, single-pass iterator over a Message's
// payload list (spec.md Section 4.E "iterator over the current payload
// list").
type payloadIterator struct {
	payloads []ikewire.Payload
	pos      int
}

// CreatePayloadIterator returns a forward, single-pass iterator over m's
// current payload list.
func (m *Message) CreatePayloadIterator() *payloadIterator {
	return &payloadIterator{payloads: m.payloads}
}

// Next returns the next payload, or (nil, false) once exhausted.
func (it *payloadIterator) Next() (ikewire.Payload, bool) {
	if it.pos >= len(it.payloads) {
		return nil, false
	}
	p := it.payloads[it.pos]
	it.pos++
	return p, true
}

// AddPayload appends p to the message's payload list, chaining the
// previous tail's next-type link to p's type (spec.md Section 3
// invariant 1). Valid from StateCreated or StatePayloadsAdded.
func (m *Message) AddPayload(p ikewire.Payload) error {
	if m.state != StateCreated && m.state != StatePayloadsAdded {
		return invalidStateErrorf("add-payload", errWrongState)
	}
	if n := len(m.payloads); n > 0 {
		m.payloads[n-1].SetNextType(p.Type())
	} else {
		m.firstPayload = p.Type()
	}
	p.SetNextType(iketypes.NoPayload)
	m.payloads = append(m.payloads, p)
	m.state = StatePayloadsAdded

	if m.log != nil {
		m.log.Debugf("ikev2: added payload of type %s to message", p.Type())
	}
	return nil
}

// Release destroys every owned payload and the cached packet buffer.
// Valid from any state; idempotent.
func (m *Message) Release() {
	for _, p := range m.payloads {
		p.Release()
	}
	m.payloads = nil
	m.packet = nil
	m.parser = nil
	m.ikeSAID = nil
}

// Verify checks, for every entry in the current rule, that the payload
// list's membership satisfies its min/max occurrence bounds (spec.md
// Section 4.E "verify()"). Unknown-to-the-rule payload types present in
// the list are not themselves rejected here; that check already happened
// during the decrypt pass for inbound messages.
func (m *Message) Verify() error {
	rule, err := GetMessageRule(m.exchangeType, m.isRequest)
	if err != nil {
		return err
	}
	for _, entry := range rule.SupportedPayloads {
		count := 0
		for _, p := range m.payloads {
			if p.Type() == entry.PayloadType {
				count++
			}
		}
		if count > entry.MaxOccurrence {
			return notSupportedErrorf("verify", errTooManyOccurrences(entry.PayloadType, count, entry.MaxOccurrence))
		}
		if count < entry.MinOccurrence {
			return notSupportedErrorf("verify", errTooFewOccurrences(entry.PayloadType, count, entry.MinOccurrence))
		}
	}
	return nil
}

// relinkChain rewrites every payload's next-type link to match its
// position in payloads, terminating the last element with NoPayload.
// Needed after the encrypt pass reorders the outer list: the incremental
// chaining AddPayload performed no longer reflects the final order.
//
// An Encryption payload is skipped: its own next-type field already
// carries the type of the first payload inside its encrypted body (set
// by EncryptionPayload.AddPayload), a different role than "next payload
// in the outer sequence" that every other payload's next-type plays.
// Invariant 4 guarantees it is always last, so there is never an outer
// successor to link it to anyway.
func relinkChain(payloads []ikewire.Payload) {
	for i, p := range payloads {
		if _, ok := p.(*iketransform.EncryptionPayload); ok {
			continue
		}
		if i+1 < len(payloads) {
			p.SetNextType(payloads[i+1].Type())
		} else {
			p.SetNextType(iketypes.NoPayload)
		}
	}
}

// Generate builds the wire packet for this message (spec.md Section 4.E
// "generate(crypter, signer) -> packet"): runs the encrypt pass, builds
// the header, links and emits the combined sequence, splices the MAC if
// the tail is an Encryption payload, and returns a cloned buffer.
func (m *Message) Generate(crypter iketransform.Crypter, signer iketransform.Signer) ([]byte, error) {
	if m.log != nil {
		m.log.Debugf("ikev2: generating message, contains %d payload(s)", len(m.payloads))
	}

	if m.state != StateCreated && m.state != StatePayloadsAdded {
		return nil, invalidStateErrorf("generate", errWrongState)
	}
	if m.exchangeType == iketypes.ExchangeUndefined {
		if m.log != nil {
			m.log.Errorf("ikev2: exchange type is not defined")
		}
		return nil, invalidStateErrorf("generate", errExchangeUndefined)
	}
	if m.source == nil || m.destination == nil {
		if m.log != nil {
			m.log.Errorf("ikev2: source/destination not defined")
		}
		return nil, invalidStateErrorf("generate", errEndpointsUnset)
	}
	if m.ikeSAID == nil {
		return nil, invalidStateErrorf("generate", errIKESAIDUnset)
	}

	if err := m.encryptPass(crypter, signer); err != nil {
		if m.log != nil {
			m.log.Errorf("ikev2: could not encrypt payloads: %v", err)
		}
		return nil, err
	}

	header := &ikewire.Header{
		InitiatorSPI: m.ikeSAID.InitiatorSPI,
		ResponderSPI: m.ikeSAID.ResponderSPI,
		MajorVersion: m.majorVersion,
		MinorVersion: m.minorVersion,
		Exchange:     m.exchangeType,
		Response:     !m.isRequest,
		Initiator:    m.ikeSAID.Initiator,
		MessageID:    m.messageID,
	}

	relinkChain(m.payloads)
	if len(m.payloads) > 0 {
		header.NextPayload = m.payloads[0].Type()
	} else {
		header.NextPayload = iketypes.NoPayload
	}

	fielders := make([]ikewire.Fielder, 0, len(m.payloads)+1)
	fielders = append(fielders, header)
	for _, p := range m.payloads {
		fielders = append(fielders, p)
	}

	buf, err := ikewire.Generate(fielders...)
	if err != nil {
		return nil, err
	}
	ikewire.PatchTotalLength(buf)

	if n := len(m.payloads); n > 0 {
		if tail, ok := m.payloads[n-1].(*iketransform.EncryptionPayload); ok {
			if err := tail.BuildSignature(buf); err != nil {
				return nil, err
			}
		}
	}

	m.packet = append([]byte(nil), buf...)
	m.state = StateGenerated

	if m.log != nil {
		m.log.Debugf("ikev2: message generated successfully, %d octets", len(buf))
	}
	return append([]byte(nil), buf...), nil
}

// encryptPass implements spec.md Section 4.E generate() step 1: if the
// rule does not require encrypted content, it is a no-op. Otherwise every
// payload in the outer list is classified against the rule and, if
// must_be_encrypted, moved into a new Encryption payload; every payload
// is classified, not merely the first one found (spec.md Section 9
// corrects the original's early-break behavior).
func (m *Message) encryptPass(crypter iketransform.Crypter, signer iketransform.Signer) error {
	rule, err := GetMessageRule(m.exchangeType, m.isRequest)
	if err != nil {
		return err
	}
	if !rule.EncryptedContent {
		return nil
	}

	all := m.payloads
	m.payloads = nil

	var enc *iketransform.EncryptionPayload
	for _, p := range all {
		entry, lookupErr := GetSupportedPayloadEntry(rule, p.Type())
		mustEncrypt := lookupErr == nil && entry.MustBeEncrypted
		if mustEncrypt {
			if enc == nil {
				enc = iketransform.NewEncryptionPayload()
				if m.log != nil {
					enc.SetLogger(m.log)
				}
			}
			enc.AddPayload(p)
		} else {
			m.payloads = append(m.payloads, p)
		}
	}

	if enc != nil {
		enc.SetTransforms(crypter, signer)
		if err := enc.Encrypt(); err != nil {
			return err
		}
		m.payloads = append(m.payloads, enc)
	}
	return nil
}

// ParseHeader parses only the fixed 28-octet header from data, populating
// the message's metadata fields and first_payload (spec.md Section 4.E
// "parse_header()"). Must be called exactly once, before ParseBody.
func (m *Message) ParseHeader(data []byte) error {
	if m.log != nil {
		m.log.Debugf("ikev2: parsing header of message")
	}
	if m.state != StateCreated {
		return invalidStateErrorf("parse-header", errWrongState)
	}

	parser := ikewire.NewParser(data)
	header, err := parser.ParseHeader()
	if err != nil {
		if m.log != nil {
			m.log.Errorf("ikev2: header could not be parsed: %v", err)
		}
		return err
	}
	if err := header.Verify(); err != nil {
		return err
	}

	m.majorVersion = header.MajorVersion
	m.minorVersion = header.MinorVersion
	m.exchangeType = header.Exchange
	m.isRequest = !header.Response
	m.messageID = header.MessageID
	m.ikeSAID = &IKESAID{
		InitiatorSPI: header.InitiatorSPI,
		ResponderSPI: header.ResponderSPI,
		Initiator:    header.Initiator,
	}
	m.firstPayload = header.NextPayload

	m.packet = data
	m.parser = parser
	m.state = StateHeaderParsed
	return nil
}

// protectedPayload pairs a flattened payload with whether it was found
// inside the Encryption payload, used to cross-check must_be_encrypted.
type protectedPayload struct {
	payload   ikewire.Payload
	encrypted bool
}

// ParseBody parses the payload chain starting at first_payload, then runs
// the decrypt pass: the Encryption payload (if any) must be last and
// permitted by the rule; its MAC is verified, its body decrypted, and its
// inner payloads spliced into the outer list in its place. Finally Verify
// checks multiplicity (spec.md Section 4.E "parse_body()").
func (m *Message) ParseBody(crypter iketransform.Crypter, signer iketransform.Signer) error {
	if m.state != StateHeaderParsed {
		return invalidStateErrorf("parse-body", errWrongState)
	}

	next := m.firstPayload
	for next != iketypes.NoPayload {
		payload, nextType, err := m.parser.ParseNext(next)
		if err != nil {
			return err
		}
		if err := payload.Verify(); err != nil {
			return err
		}
		m.payloads = append(m.payloads, payload)
		// An Encryption payload's next-type names the first payload inside
		// its encrypted body, not an outer successor, so the outer chain
		// ends with it.
		if payload.Type() == iketypes.Encrypted {
			break
		}
		next = nextType
	}

	rule, err := GetMessageRule(m.exchangeType, m.isRequest)
	if err != nil {
		if m.log != nil {
			m.log.Errorf("ikev2: no message rule for current message type")
		}
		return err
	}

	var flattened []protectedPayload
	for i, p := range m.payloads {
		if p.Type() != iketypes.Encrypted {
			flattened = append(flattened, protectedPayload{payload: p, encrypted: false})
			continue
		}

		if !rule.EncryptedContent {
			if m.log != nil {
				m.log.Errorf("ikev2: encrypted payload not allowed for this message type")
			}
			return failedErrorf("parse-body", errEncryptedNotAllowed)
		}
		if i != len(m.payloads)-1 {
			if m.log != nil {
				m.log.Errorf("ikev2: encrypted payload is not the last one")
			}
			return failedErrorf("parse-body", errEncryptedNotLast)
		}

		enc := p.(*iketransform.EncryptionPayload)
		if m.log != nil {
			enc.SetLogger(m.log)
		}
		enc.SetTransforms(crypter, signer)
		if err := enc.VerifySignature(m.packet); err != nil {
			if m.log != nil {
				m.log.Errorf("ikev2: encryption payload signature invalid")
			}
			return err
		}
		if err := enc.Decrypt(); err != nil {
			if m.log != nil {
				m.log.Errorf("ikev2: parsing decrypted encryption payload failed")
			}
			return err
		}
		for _, inner := range enc.InnerPayloads() {
			flattened = append(flattened, protectedPayload{payload: inner, encrypted: true})
		}
	}

	result := make([]ikewire.Payload, 0, len(flattened))
	for _, pp := range flattened {
		entry, err := GetSupportedPayloadEntry(rule, pp.payload.Type())
		if err != nil {
			if m.log != nil {
				m.log.Errorf("ikev2: payload type %s not allowed", pp.payload.Type())
			}
			return notSupportedErrorf("parse-body", err)
		}
		if entry.MustBeEncrypted != pp.encrypted {
			if m.log != nil {
				m.log.Errorf("ikev2: payload type %s should be %s",
					pp.payload.Type(), protectionWord(entry.MustBeEncrypted))
			}
			return notSupportedErrorf("parse-body", errProtectionMismatch(pp.payload.Type()))
		}
		result = append(result, pp.payload)
	}

	m.payloads = result
	if len(m.payloads) > 0 {
		m.firstPayload = m.payloads[0].Type()
	} else {
		m.firstPayload = iketypes.NoPayload
	}

	if err := m.Verify(); err != nil {
		return err
	}
	m.state = StateBodyParsed
	return nil
}

func protectionWord(mustBeEncrypted bool) string {
	if mustBeEncrypted {
		return "encrypted"
	}
	return "not encrypted"
}
