package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portal_final_backend/internal/consultation"
	"portal_final_backend/internal/consultation/catalog"
	"portal_final_backend/internal/consultation/extract"
	"portal_final_backend/internal/consultation/geo"
	"portal_final_backend/internal/consultation/handler"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/orchestrator"
	"portal_final_backend/internal/consultation/service"
	apphttp "portal_final_backend/internal/http"
	"portal_final_backend/internal/http/router"
	"portal_final_backend/platform/config"
	"portal_final_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Catalog Store (C1)
	// ========================================================================

	communities, loadSummary, err := catalog.LoadWorkbook(cfg.GetCatalogWorkbookPath())
	if err != nil {
		log.Error("failed to load catalog workbook", "error", err)
		panic("failed to load catalog workbook: " + err.Error())
	}
	log.Info("catalog loaded", "rows_loaded", loadSummary.RowsLoaded, "rows_skipped", loadSummary.RowsSkipped)
	for _, reason := range loadSummary.Errors {
		log.Warn("catalog row skipped", "reason", reason)
	}
	store := catalog.NewStore(communities)

	// ========================================================================
	// Geo (C2, C3)
	// ========================================================================

	locations, err := geo.LoadLocationResolver(cfg.GetLocalityTablePath())
	if err != nil {
		log.Error("failed to load locality table", "error", err)
		panic("failed to load locality table: " + err.Error())
	}

	geocoder := geo.NewGeocoder(geo.NewNominatimResolver(), cfg.GetGeocodeLRUSize(), cfg.GetGeocodeRatePerSecond(), log)

	// ========================================================================
	// LLM Client (C4), Extractor (C5)
	// ========================================================================

	llmConfigured := cfg.GetLLMAPIKey() != ""
	if !llmConfigured {
		log.Warn("LLM_API_KEY not configured; extraction and AI ranking will fail at request time")
	}

	llmClient, err := llm.NewClient(ctx, llm.Config{
		APIKey:      cfg.GetLLMAPIKey(),
		BaseURL:     cfg.GetLLMBaseURL(),
		Model:       cfg.GetLLMModel(),
		CallTimeout: cfg.GetLLMCallTimeout(),
		RetryDelays: cfg.GetLLMRetryDelays(),
	}, log)
	if err != nil {
		log.Error("failed to initialize LLM client", "error", err)
		panic("failed to initialize LLM client: " + err.Error())
	}

	extractor := extract.NewExtractor(llmClient, locations)

	// ========================================================================
	// Pipeline Orchestrator (C6-C11)
	// ========================================================================

	orch := orchestrator.New(store, extractor, geocoder, llmClient, orchestrator.Config{
		BudgetTolerance:     cfg.GetBudgetTolerance(),
		ShortlistSize:       cfg.GetShortlistSize(),
		OverallBudget:       cfg.GetOverallBudget(),
		InputTokenPriceUSD:  cfg.GetInputTokenPriceUSD(),
		OutputTokenPriceUSD: cfg.GetOutputTokenPriceUSD(),
	}, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	svc := service.New(store, orch, nil)
	h := handler.New(svc)
	consultationModule := consultation.NewModule(h)

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        catalogHealthChecker{store: store},
		LLMConfigured: llmConfigured,
		Modules:       []apphttp.Module{consultationModule},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// catalogHealthChecker reports the catalog store as the readiness signal
// for GET /api/health: an empty store means the workbook never loaded
// (§6).
type catalogHealthChecker struct {
	store *catalog.Store
}

func (c catalogHealthChecker) Ping(ctx context.Context) error {
	if len(c.store.All()) == 0 {
		return errors.New("catalog store is empty")
	}
	return nil
}
