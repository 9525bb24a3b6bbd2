package carbon

import "github.com/rs/zerolog"

// logger is the package logger. It discards everything until SetLogger is
// called by the embedding binary.
var logger = zerolog.Nop()

// SetLogger replaces the package logger. It must be called before any
// Calculator is used concurrently.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "carbon").Logger()
}
