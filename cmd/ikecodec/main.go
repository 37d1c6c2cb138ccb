// ikecodec is a demonstration and verification harness for the IKEv2
// message codec in pkg/ikemessage. It is not part of the codec's public
// API; all command-line parsing, sub-command dispatch, config-file
// loading, and environment-variable overrides are handled in this
// package via Cobra and Viper.
//
// Usage:
//
//	ikecodec generate [--auth] [--key hex] [--signer-key hex]
//	ikecodec parse <hexfile> [--key hex] [--signer-key hex]
//	ikecodec roundtrip [--auth] [--key hex] [--signer-key hex]
package main

func main() {
	Execute()
}
