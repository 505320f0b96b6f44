package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/yojanasetu/voicebackend/internal/cache"
	"github.com/yojanasetu/voicebackend/internal/config"
	"github.com/yojanasetu/voicebackend/internal/database"
	"github.com/yojanasetu/voicebackend/internal/embedding"
	"github.com/yojanasetu/voicebackend/internal/llm"
	"github.com/yojanasetu/voicebackend/internal/queue"
	"github.com/yojanasetu/voicebackend/internal/queue/workers"
	"github.com/yojanasetu/voicebackend/internal/rag"
	"github.com/yojanasetu/voicebackend/internal/vectorstore"
	"github.com/yojanasetu/voicebackend/internal/voice"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database required for ingestion worker", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	gw := llm.NewGateway(cfg.LLM)
	embedSvc := embedding.NewService(gw, cfg.LLM.EmbeddingModel)
	vs := vectorstore.NewPgVectorStore(db)
	answers := cache.NewCache(rdb)
	pipeline := rag.NewPipeline(gw, embedSvc, vs, answers, cfg.LLM.DefaultModel)

	audioCache, err := voice.NewAudioCache(voice.AudioCacheConfig{
		MaxEntries: cfg.Voice.CacheMaxEntries,
		RedisTTL:   cfg.Voice.CacheTTL,
	}, rdb)
	if err != nil {
		slog.Error("failed to create audio cache", "error", err)
		os.Exit(1)
	}

	var engine voice.Engine
	if cfg.Voice.Enabled {
		engine = voice.NewGoogleTranslateEngine(voice.GoogleTranslateConfig{
			BaseURL: cfg.Voice.EngineBaseURL,
		})
	}
	voiceSvc := voice.NewService(engine, audioCache, cfg.Voice.SynthesisTimeout)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	ingestWorker := workers.NewIngestWorker(pipeline)
	registry.Register(queue.TypeDocumentIngest, asynq.HandlerFunc(ingestWorker.ProcessTask))

	prewarmWorker := workers.NewPrewarmWorker(voiceSvc)
	registry.Register(queue.TypeVoicePrewarm, asynq.HandlerFunc(prewarmWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
