package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/yojanasetu/voicebackend/internal/api/handlers"
	"github.com/yojanasetu/voicebackend/internal/api/middleware"
	"github.com/yojanasetu/voicebackend/internal/auth"
	"github.com/yojanasetu/voicebackend/internal/cache"
	"github.com/yojanasetu/voicebackend/internal/config"
	"github.com/yojanasetu/voicebackend/internal/embedding"
	"github.com/yojanasetu/voicebackend/internal/history"
	"github.com/yojanasetu/voicebackend/internal/llm"
	"github.com/yojanasetu/voicebackend/internal/queue"
	"github.com/yojanasetu/voicebackend/internal/rag"
	"github.com/yojanasetu/voicebackend/internal/transcribe"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
	"github.com/yojanasetu/voicebackend/internal/voice"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
	llmGW llm.Gateway
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		llmGW: llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	voiceSvc := buildVoiceService(rt.cfg.Voice, rt.redis)

	var transcribeSvc *transcribe.Service
	if rt.cfg.Transcribe.APIKey != "" {
		transcribeSvc = transcribe.NewService(rt.cfg.Transcribe)
	}

	answers := cache.NewCache(rt.redis)
	embedSvc := embedding.NewService(rt.llmGW, rt.cfg.LLM.EmbeddingModel)
	vs := vectorstore.NewPgVectorStore(rt.db)
	ragPipeline := rag.NewPipeline(rt.llmGW, embedSvc, vs, answers, rt.cfg.LLM.DefaultModel)

	turns := history.NewStore(rt.db)
	queueClient := queue.NewClient(rt.cfg.Redis)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		voiceH := handlers.NewVoiceHandler(voiceSvc, transcribeSvc)
		r.Route("/voice", func(r chi.Router) {
			r.Post("/tts", voiceH.TTS)
			r.Post("/transcribe", voiceH.Transcribe)
		})

		queryH := handlers.NewQueryHandler(ragPipeline, voiceSvc, turns)
		r.Post("/query", queryH.Query)

		docH := handlers.NewDocumentHandler(queueClient)
		r.Post("/documents", docH.Upload)

		historyH := handlers.NewHistoryHandler(turns)
		r.Get("/history", historyH.List)
	})

	return r
}

// buildVoiceService assembles the TTS service. Disabled synthesis still
// returns a service so the query path can report languages without audio.
func buildVoiceService(cfg config.VoiceConfig, rdb *redis.Client) *voice.Service {
	audioCache, err := voice.NewAudioCache(voice.AudioCacheConfig{
		MaxEntries: cfg.CacheMaxEntries,
		RedisTTL:   cfg.CacheTTL,
	}, rdb)
	if err != nil {
		slog.Error("failed to create audio cache, using defaults", "error", err)
		audioCache = nil
	}

	var engine voice.Engine
	if cfg.Enabled {
		engine = voice.NewGoogleTranslateEngine(voice.GoogleTranslateConfig{
			BaseURL: cfg.EngineBaseURL,
		})
	}

	return voice.NewService(engine, audioCache, cfg.SynthesisTimeout)
}
