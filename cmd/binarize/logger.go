package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// binLog is the sub-logger for the tool, tagged module=binarize. It is
// replaced by setupLogger once the output and level are known.
var binLog zerolog.Logger = log.With().Str("module", "binarize").Logger()

// setupLogger routes logs to w in human-readable form at the named level.
func setupLogger(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	binLog = log.With().Str("module", "binarize").Logger()
	return nil
}
