package voice

import (
	"context"
	"errors"
)

// SlowSpeedThreshold: requested speeds below this select the engine's slow
// synthesis mode.
const SlowSpeedThreshold = 0.8

var (
	// ErrEngineUnavailable means no synthesis engine is configured.
	ErrEngineUnavailable = errors.New("speech engine unavailable")
	// ErrUnsupportedLanguage means the language is outside en/hi/mr. The
	// classifier cannot produce such a value; engines re-check anyway.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Engine is the boundary to an external text-to-speech engine.
type Engine interface {
	Synthesize(ctx context.Context, text string, lang Language, slow bool) ([]byte, error)
	Name() string
}
