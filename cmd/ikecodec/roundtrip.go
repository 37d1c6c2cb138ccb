package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucifiery/ikev2/pkg/ikemessage"
	"github.com/lucifiery/ikev2/pkg/iketransform"
	"github.com/lucifiery/ikev2/pkg/iketypes"
)

var roundtripAuth bool

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Generate a sample message, parse it back, and report whether the payload sequence round-trips",
	Run: func(cmd *cobra.Command, args []string) {
		logFactory, err := newLoggerFactory()
		if err != nil {
			log.Fatal(err)
		}

		var crypter iketransform.Crypter
		var signer iketransform.Signer
		if roundtripAuth {
			crypter, signer, err = resolveTransforms()
			if err != nil {
				log.Fatal(err)
			}
		}

		sent, err := newSampleMessage(roundtripAuth, logFactory)
		if err != nil {
			log.Fatalf("ikecodec: building sample message: %v", err)
		}
		packet, err := sent.Generate(crypter, signer)
		if err != nil {
			log.Fatalf("ikecodec: generate: %v", err)
		}

		received := ikemessage.New(ikemessage.Config{LoggerFactory: logFactory})
		if err := received.ParseHeader(packet); err != nil {
			log.Fatalf("ikecodec: parse-header: %v", err)
		}
		if err := received.ParseBody(crypter, signer); err != nil {
			log.Fatalf("ikecodec: parse-body: %v", err)
		}

		if roundtripMatches(sent, received) {
			fmt.Printf("roundtrip OK: %d octets, metadata and payload sequence match\n", len(packet))
		} else {
			fmt.Println("roundtrip MISMATCH: parsed message does not match what was generated")
		}
		fmt.Print(describeMessage(received))
	},
}

// roundtripMatches compares the metadata and flattened payload type
// sequence of a sent message against what was parsed back. A byte-exact
// packet comparison is not meaningful here: generate and parse operate on
// a Message in mutually exclusive states, so the check instead verifies
// that every payload the sender added survives encoding, transmission,
// and decoding in the same order.
func roundtripMatches(sent, received *ikemessage.Message) bool {
	if sent.ExchangeType() != received.ExchangeType() {
		return false
	}
	if sent.IsRequest() != received.IsRequest() {
		return false
	}
	if sent.MessageID() != received.MessageID() {
		return false
	}

	sentTypes := flattenedPayloadTypes(sent)
	receivedTypes := flattenedPayloadTypes(received)
	if len(sentTypes) != len(receivedTypes) {
		return false
	}
	for i := range sentTypes {
		if sentTypes[i] != receivedTypes[i] {
			return false
		}
	}
	return true
}

func flattenedPayloadTypes(m *ikemessage.Message) []iketypes.PayloadType {
	var out []iketypes.PayloadType
	it := m.CreatePayloadIterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if enc, isEnc := p.(*iketransform.EncryptionPayload); isEnc {
			inner := enc.CreatePayloadIterator()
			for ip, iok := inner.Next(); iok; ip, iok = inner.Next() {
				out = append(out, ip.Type())
			}
			continue
		}
		out = append(out, p.Type())
	}
	return out
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
	roundtripCmd.Flags().BoolVar(&roundtripAuth, "auth", false, "roundtrip an encrypted IKE_AUTH request instead of IKE_SA_INIT")
	viper.BindPFlags(roundtripCmd.Flags())
}
