package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucifiery/ikev2/pkg/ikemessage"
)

var parseCmd = &cobra.Command{
	Use:   "parse <hexfile>",
	Short: "Parse a hex-encoded packet and print its header and payload list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logFactory, err := newLoggerFactory()
		if err != nil {
			log.Fatal(err)
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("ikecodec: reading %s: %v", args[0], err)
		}
		packet, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			log.Fatalf("ikecodec: %s does not contain valid hex: %v", args[0], err)
		}

		m := ikemessage.New(ikemessage.Config{LoggerFactory: logFactory})
		if err := m.ParseHeader(packet); err != nil {
			log.Fatalf("ikecodec: parse-header: %v", err)
		}

		crypter, signer, err := resolveTransforms()
		if err != nil {
			log.Fatal(err)
		}
		if err := m.ParseBody(crypter, signer); err != nil {
			log.Fatalf("ikecodec: parse-body: %v", err)
		}

		fmt.Print(describeMessage(m))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	viper.BindPFlags(parseCmd.Flags())
}
