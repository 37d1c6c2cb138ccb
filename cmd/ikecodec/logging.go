package main

import (
	"fmt"
	"strings"

	"github.com/pion/logging"
	"github.com/spf13/viper"
)

// newLoggerFactory builds a pion LoggerFactory from the --log-level flag.
func newLoggerFactory() (logging.LoggerFactory, error) {
	factory := logging.NewDefaultLoggerFactory()
	level, err := parseLogLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	factory.DefaultLogLevel = level
	return factory, nil
}

func parseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(s) {
	case "disabled", "":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return 0, fmt.Errorf("ikecodec: unrecognized log level %q", s)
	}
}
