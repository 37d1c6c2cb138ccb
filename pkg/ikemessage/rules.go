package ikemessage

import "github.com/lucifiery/ikev2/pkg/iketypes"

// SupportedPayloadEntry is one payload entry within a MessageRule
// (spec.md Section 3 "Rule table").
type SupportedPayloadEntry struct {
	PayloadType     iketypes.PayloadType
	MinOccurrence   int
	MaxOccurrence   int
	MustBeEncrypted bool
}

// MessageRule names which payloads a given (exchange type, direction) may
// carry, and whether that combination requires an Encryption envelope
// (spec.md Section 3 "Rule table").
type MessageRule struct {
	ExchangeType      iketypes.ExchangeType
	IsRequest         bool
	EncryptedContent  bool
	SupportedPayloads []SupportedPayloadEntry
}

const maxOccurrence = 1<<31 - 1

var ikeSAInitIPayloads = []SupportedPayloadEntry{
	{iketypes.SecurityAssociation, 1, 1, false},
	{iketypes.KeyExchange, 1, 1, false},
	{iketypes.Nonce, 1, 1, false},
}

var ikeSAInitRPayloads = []SupportedPayloadEntry{
	{iketypes.SecurityAssociation, 1, 1, false},
	{iketypes.KeyExchange, 1, 1, false},
	{iketypes.Nonce, 1, 1, false},
}

var ikeAuthIPayloads = []SupportedPayloadEntry{
	{iketypes.IdentificationI, 1, 1, true},
	{iketypes.Certificate, 0, 1, true},
	{iketypes.CertificateRequest, 0, 1, true},
	{iketypes.IdentificationR, 0, 1, true},
	{iketypes.Authentication, 1, 1, true},
	{iketypes.SecurityAssociation, 1, 1, true},
	{iketypes.TrafficSelectorI, 1, 1, true},
	{iketypes.TrafficSelectorR, 1, 1, true},
}

var ikeAuthRPayloads = []SupportedPayloadEntry{
	{iketypes.Certificate, 0, 1, true},
	{iketypes.IdentificationR, 0, 1, true},
	{iketypes.Authentication, 1, 1, true},
	{iketypes.SecurityAssociation, 1, 1, true},
	{iketypes.TrafficSelectorI, 1, 1, true},
	{iketypes.TrafficSelectorR, 1, 1, true},
}

// createChildSAPayloads is shared by both directions of CREATE_CHILD_SA:
// the original message_rules[] table does not cover this exchange type,
// restored here per spec_full.md Section C using the same supported-
// payload-entry shape the original applies to IKE_AUTH.
var createChildSAPayloads = []SupportedPayloadEntry{
	{iketypes.SecurityAssociation, 1, 1, true},
	{iketypes.Nonce, 1, 1, true},
	{iketypes.KeyExchange, 0, 1, true},
	{iketypes.TrafficSelectorI, 0, 1, true},
	{iketypes.TrafficSelectorR, 0, 1, true},
	{iketypes.Notify, 0, maxOccurrence, true},
}

// informationalPayloads is shared by both directions of INFORMATIONAL,
// restored the same way as createChildSAPayloads.
var informationalPayloads = []SupportedPayloadEntry{
	{iketypes.Notify, 0, maxOccurrence, true},
	{iketypes.Delete, 0, maxOccurrence, true},
	{iketypes.VendorID, 0, maxOccurrence, true},
}

// messageRules is the static rule table (spec.md Section 3), ported from
// the original's message_rules[] and extended per spec_full.md Section C
// to cover CREATE_CHILD_SA and INFORMATIONAL.
var messageRules = []MessageRule{
	{iketypes.ExchangeIKESAInit, true, false, ikeSAInitIPayloads},
	{iketypes.ExchangeIKESAInit, false, false, ikeSAInitRPayloads},
	{iketypes.ExchangeIKEAuth, true, true, ikeAuthIPayloads},
	{iketypes.ExchangeIKEAuth, false, true, ikeAuthRPayloads},
	{iketypes.ExchangeCreateChildSA, true, true, createChildSAPayloads},
	{iketypes.ExchangeCreateChildSA, false, true, createChildSAPayloads},
	{iketypes.ExchangeInformational, true, true, informationalPayloads},
	{iketypes.ExchangeInformational, false, true, informationalPayloads},
}

// GetMessageRule returns the rule matching (exchangeType, isRequest), or
// iketypes.ErrNotFound if none matches.
func GetMessageRule(exchangeType iketypes.ExchangeType, isRequest bool) (*MessageRule, error) {
	for i := range messageRules {
		r := &messageRules[i]
		if r.ExchangeType == exchangeType && r.IsRequest == isRequest {
			return r, nil
		}
	}
	return nil, iketypes.ErrNotFound
}

// GetSupportedPayloadEntry returns rule's entry for payloadType, or
// iketypes.ErrNotFound if the rule does not name that type.
func GetSupportedPayloadEntry(rule *MessageRule, payloadType iketypes.PayloadType) (*SupportedPayloadEntry, error) {
	for i := range rule.SupportedPayloads {
		e := &rule.SupportedPayloads[i]
		if e.PayloadType == payloadType {
			return e, nil
		}
	}
	return nil, iketypes.ErrNotFound
}
