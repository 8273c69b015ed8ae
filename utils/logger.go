package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a timestamped logger tagged with the component name.
func NewLogger(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// OpenLogFile opens path for appending. The caller closes the returned file.
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}
