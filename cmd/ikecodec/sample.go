package main

import (
	"crypto/rand"
	"fmt"
	"net"

	"github.com/pion/logging"

	"github.com/lucifiery/ikev2/pkg/ikemessage"
	"github.com/lucifiery/ikev2/pkg/ikepayload"
	"github.com/lucifiery/ikev2/pkg/iketransform"
	"github.com/lucifiery/ikev2/pkg/iketypes"
)

var (
	loopbackSrc, _ = net.ResolveUDPAddr("udp", "127.0.0.1:500")
	loopbackDst, _ = net.ResolveUDPAddr("udp", "127.0.0.1:4500")
)

// newSampleMessage builds either a plain IKE_SA_INIT request (SA, KE,
// Nonce) or, with auth=true, an IKE_AUTH request whose identity/auth/SA/
// traffic-selector payloads must be carried inside an Encryption payload.
func newSampleMessage(auth bool, logFactory logging.LoggerFactory) (*ikemessage.Message, error) {
	m := ikemessage.New(ikemessage.Config{LoggerFactory: logFactory})
	m.SetIKESAID(ikemessage.IKESAID{InitiatorSPI: 0x0102030405060708, Initiator: true})
	m.SetSource(loopbackSrc)
	m.SetDestination(loopbackDst)
	m.SetMessageID(0)
	m.SetRequest(true)

	if !auth {
		m.SetExchangeType(iketypes.ExchangeIKESAInit)

		sa := ikepayload.NewSA()
		proposal := &ikepayload.Proposal{Number: 1, ProtocolID: 1, NumTransforms: 1, Transforms: sampleTransforms()}
		sa.AddProposal(proposal)
		if err := m.AddPayload(sa); err != nil {
			return nil, err
		}

		ke := ikepayload.NewKE()
		ke.DHGroupNum = 14
		ke.KeyData = randomBytes(256)
		if err := m.AddPayload(ke); err != nil {
			return nil, err
		}

		nonce := ikepayload.NewNonce()
		nonce.Data = randomBytes(32)
		if err := m.AddPayload(nonce); err != nil {
			return nil, err
		}
		return m, nil
	}

	m.SetExchangeType(iketypes.ExchangeIKEAuth)

	idi := ikepayload.NewIDi()
	idi.IDType = ikepayload.IDFQDN
	idi.Data = []byte("initiator.example.com")
	if err := m.AddPayload(idi); err != nil {
		return nil, err
	}

	authPayload := ikepayload.NewAuth()
	authPayload.Method = ikepayload.AuthSharedKeyMIC
	authPayload.Data = randomBytes(32)
	if err := m.AddPayload(authPayload); err != nil {
		return nil, err
	}

	sa := ikepayload.NewSA()
	proposal := &ikepayload.Proposal{Number: 1, ProtocolID: 3, NumTransforms: 1, Transforms: sampleTransforms()}
	sa.AddProposal(proposal)
	if err := m.AddPayload(sa); err != nil {
		return nil, err
	}

	tsi := ikepayload.NewTSi()
	tsi.AddSelector(&ikepayload.TrafficSelector{
		Type: ikepayload.TSIPv4AddrRange, IPProtoID: 0,
		StartPort: 0, EndPort: 65535,
		StartAddr: []byte{10, 0, 0, 1}, EndAddr: []byte{10, 0, 0, 1},
	})
	if err := m.AddPayload(tsi); err != nil {
		return nil, err
	}

	tsr := ikepayload.NewTSr()
	tsr.AddSelector(&ikepayload.TrafficSelector{
		Type: ikepayload.TSIPv4AddrRange, IPProtoID: 0,
		StartPort: 0, EndPort: 65535,
		StartAddr: []byte{10, 0, 0, 2}, EndAddr: []byte{10, 0, 0, 2},
	})
	if err := m.AddPayload(tsr); err != nil {
		return nil, err
	}

	return m, nil
}

func sampleTransforms() []byte {
	return randomBytes(8)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

func describeMessage(m *ikemessage.Message) string {
	out := fmt.Sprintf("exchange=%s request=%v message-id=%d first-payload=%s\n",
		m.ExchangeType(), m.IsRequest(), m.MessageID(), m.FirstPayload())
	it := m.CreatePayloadIterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		out += fmt.Sprintf("  payload %s (next=%s)\n", p.Type(), p.NextType())
		if enc, isEnc := p.(*iketransform.EncryptionPayload); isEnc {
			inner := enc.CreatePayloadIterator()
			for ip, iok := inner.Next(); iok; ip, iok = inner.Next() {
				out += fmt.Sprintf("    inner payload %s\n", ip.Type())
			}
		}
	}
	return out
}
