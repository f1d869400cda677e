package main

import (
	"context"
	"net/http"

	webAdapter "finpulse/internal/adapters/web"
	"finpulse/internal/ai"
	"finpulse/internal/app"
	"finpulse/internal/config"
	"finpulse/internal/core"
	"finpulse/internal/db"
	"finpulse/internal/export"
	"finpulse/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err, "config")
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		logger.Fatal(err, "logger")
	}
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err, "database")
	}
	defer pool.Close()

	invoiceService := core.NewInvoiceService(pool)

	var zoho *export.Client
	if cfg.SyncConfigured() {
		zoho = export.NewClient(cfg.ZohoAPIBase, cfg.ZohoOAuthToken, cfg.ZohoOrgID)
	} else {
		log.Warn().Msg("ZOHO_OAUTH_TOKEN / ZOHO_ORG_ID not set, outbound sync disabled")
	}

	var agent ai.AgentService
	if cfg.OpenAIAPIKey != "" {
		agent = ai.NewAgent(cfg.OpenAIAPIKey)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, invoice extraction disabled")
	}

	svc := app.NewAppService(invoiceService, zoho, agent)
	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		logger.Fatal(err, "server")
	}
}
