// Package main provides the CLI entry point for xparse.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("xparse failed")
		os.Exit(1)
	}
}
