package main

import (
	"encoding/hex"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucifiery/ikev2/pkg/iketransform"
)

var generateAuth bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a sample IKE_SA_INIT or (with --auth) IKE_AUTH request and print it as hex",
	Run: func(cmd *cobra.Command, args []string) {
		logFactory, err := newLoggerFactory()
		if err != nil {
			log.Fatal(err)
		}

		m, err := newSampleMessage(generateAuth, logFactory)
		if err != nil {
			log.Fatalf("ikecodec: building sample message: %v", err)
		}

		// IKE_SA_INIT never carries an Encryption payload, so transforms
		// only need resolving (and --key/--signer-key only need reading)
		// when building an IKE_AUTH request.
		var crypter iketransform.Crypter
		var signer iketransform.Signer
		if generateAuth {
			crypter, signer, err = resolveTransforms()
			if err != nil {
				log.Fatal(err)
			}
		}

		packet, err := m.Generate(crypter, signer)
		if err != nil {
			log.Fatalf("ikecodec: generate: %v", err)
		}

		fmt.Println(hex.EncodeToString(packet))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateAuth, "auth", false, "build an encrypted IKE_AUTH request instead of IKE_SA_INIT")
	viper.BindPFlags(generateCmd.Flags())
}
