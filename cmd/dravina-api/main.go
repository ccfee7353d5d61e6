package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dravina/dravina-agent/internal/adapters/dataset"
	httpadapter "github.com/dravina/dravina-agent/internal/adapters/http"
	"github.com/dravina/dravina-agent/internal/adapters/llm"
	firestorestore "github.com/dravina/dravina-agent/internal/adapters/storage/firestore"
	"github.com/dravina/dravina-agent/internal/adapters/storage/memstore"
	"github.com/dravina/dravina-agent/internal/app/advisor"
	memorysvc "github.com/dravina/dravina-agent/internal/app/memory"
	"github.com/dravina/dravina-agent/internal/app/tools"
	"github.com/dravina/dravina-agent/internal/config"
	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/recorder"
)

func main() {
	configPath := flag.String("config", os.Getenv("DRAVINA_CONFIG"), "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	// Reasoning engine: mock or Gemini
	var engine domain.ReasoningEngine
	if cfg.Engine.UseMock {
		log.Println("[ENGINE] Using mock reasoning engine")
		engine = llm.NewMockEngine()
	} else {
		log.Printf("[ENGINE] Using Gemini (%s)", cfg.Engine.ModelName)
		geminiCfg := llm.GeminiConfig{
			APIKey:    cfg.Engine.APIKey,
			ModelName: cfg.Engine.ModelName,
		}
		if cfg.Mode == config.ModeGCP {
			geminiCfg.ProjectID = cfg.Engine.GCPProjectID
			geminiCfg.Location = cfg.Engine.GCPLocation
		}
		engine, err = llm.NewGeminiEngine(ctx, geminiCfg)
		if err != nil {
			log.Fatalf("error initializing Gemini engine: %v", err)
		}
	}

	// Dataset provider: published buckets or the embedded sample
	var provider domain.DatasetProvider
	if cfg.Dataset.FundsURL != "" || cfg.Dataset.DetailsURL != "" {
		log.Println("[DATA] Using HTTP dataset provider")
		httpProvider := dataset.NewHTTPProvider(
			cfg.Dataset.FundsURL,
			cfg.Dataset.DetailsURL,
			cfg.Dataset.CommoditiesURL,
		)
		refresher := dataset.NewRefresher(ctx, httpProvider)
		if err := refresher.Register(cfg.Dataset.RefreshCron); err != nil {
			log.Fatalf("error registering dataset refresh: %v", err)
		}
		refresher.Start()
		defer refresher.Stop()
		provider = httpProvider
	} else {
		log.Println("[DATA] Using embedded sample dataset")
		provider = dataset.NewStaticProvider()
	}

	// Memory storage: Firestore or in-memory
	var store domain.MemoryStore
	switch cfg.Storage.Backend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.Engine.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.Engine.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		defer fsStore.Close()
		store = fsStore
	default:
		log.Println("[STORE] Using in-memory storage")
		store = memstore.NewStore()
	}

	// Session recorder: SQLite when configured
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Recorder.SQLitePath != "" {
		sqlRec, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing sqlite recorder: %v", err)
		}
		defer sqlRec.Close()
		rec = sqlRec
		log.Printf("[RECORDER] Recording sessions to %s", cfg.Recorder.SQLitePath)
	}

	registry := tools.NewRegistry(
		tools.NewCategoriesTool(),
		tools.NewSearchTool(provider),
		tools.NewFundInfoTool(provider),
		tools.NewCommodityTool(provider),
	)

	memoryService := memorysvc.NewService(store, advisor.TerminalMarker)
	advisorService := advisor.NewService(engine, registry, memoryService, rec)

	handler := httpadapter.NewServer(advisorService, memoryService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		log.Println("Dravina API listening on port:", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
