package voice

import (
	"context"
	"log/slog"
	"time"
)

// Result is the outcome of one audio-response cycle. Audio is nil when
// synthesis was skipped or failed; the request itself never errors.
type Result struct {
	Audio    []byte
	Language Language
	CacheHit bool
}

// Service composes sanitizer, classifier, cache and engine into the
// request/response cycle.
type Service struct {
	engine  Engine
	cache   *AudioCache
	timeout time.Duration
}

// NewService creates the audio-response service. engine may be nil, in which
// case every request degrades to a no-audio result. cache may be nil for a
// default in-memory cache.
func NewService(engine Engine, cache *AudioCache, synthTimeout time.Duration) *Service {
	if cache == nil {
		cache, _ = NewAudioCache(AudioCacheConfig{}, nil)
	}
	if synthTimeout <= 0 {
		synthTimeout = 60 * time.Second
	}
	return &Service{engine: engine, cache: cache, timeout: synthTimeout}
}

// GenerateAudioResponse sanitizes rawText, resolves the target language,
// and returns cached or freshly synthesized audio. Text shorter than the
// minimum gate is skipped without touching the engine. Every failure is
// logged and degraded to a no-audio result; callers always get a usable
// Result.
func (s *Service) GenerateAudioResponse(ctx context.Context, rawText, languagePreference string, speed float64) Result {
	if speed <= 0 {
		speed = 1.0
	}

	text := Sanitize(rawText)
	if !Speakable(text) {
		return Result{Language: fallbackLanguage(languagePreference)}
	}

	lang := resolveLanguage(text, languagePreference)

	if s.engine == nil {
		slog.Warn("speech synthesis skipped", "error", ErrEngineUnavailable)
		return Result{Language: lang}
	}

	key := CacheKey(text, lang, speed)
	slow := speed < SlowSpeedThreshold

	audio, hit, err := s.cache.GetOrSynthesize(ctx, key, s.timeout, func(ctx context.Context) ([]byte, error) {
		return s.engine.Synthesize(ctx, text, lang, slow)
	})
	if err != nil {
		slog.Error("speech synthesis failed",
			"engine", s.engine.Name(),
			"language", lang,
			"error", err,
		)
		return Result{Language: lang}
	}

	return Result{Audio: audio, Language: lang, CacheHit: hit}
}

// resolveLanguage honors an explicit preference and classifies otherwise. An
// unsupported preference is passed through; the engine's validation turns it
// into a degraded no-audio result.
func resolveLanguage(text, preference string) Language {
	if preference != "" && preference != AutoDetect {
		return Language(preference)
	}
	return Classify(text)
}

// fallbackLanguage is reported when synthesis is skipped before the
// classifier runs.
func fallbackLanguage(preference string) Language {
	if preference != "" && preference != AutoDetect {
		return Language(preference)
	}
	return English
}
