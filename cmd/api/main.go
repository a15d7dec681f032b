package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"listingcopy/internal/copywriter"
	"listingcopy/internal/http/handlers"
	httpapi "listingcopy/internal/http/httpapi"
	"listingcopy/internal/infra"
	"listingcopy/internal/infra/credentials"
	"listingcopy/internal/infra/geoip"
	"listingcopy/internal/providers/gemini"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
	}
	defer func() {
		_ = resolver.Close()
	}()

	client, err := gemini.NewClient(gemini.Options{
		Credentials: credentials.NewStore(),
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		Logger:      infra.Component(logger, "gemini"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}
	if _, ok := os.LookupEnv("GEMINI_API_KEY"); !ok {
		logger.Warn().Msg("GEMINI_API_KEY is not set; generation requests will fail until it is")
	}

	service := copywriter.NewService(client, infra.Component(logger, "copywriter"))
	app := handlers.NewApp(service, cfg, infra.Component(logger, "http"))
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  resolver.Lookup(),
	})
	server := infra.NewHTTPServer(cfg, router, infra.Component(logger, "server"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("model", client.Model()).Msg("gemini client ready")
	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
