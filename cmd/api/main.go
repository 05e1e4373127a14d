package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/auth"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/infra/google"
	mw "server/internal/middleware"
	"server/internal/siteconfig"
	"server/internal/store"
	"server/internal/tryon"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	st := store.New(dbpool, logger, cfg.ConfigTimeout)
	site := siteconfig.NewManager(st, logger)
	site.Bootstrap(ctx)

	builder := tryon.NewBuilder(tryon.Options{
		StandardAPIKey: cfg.GeminiAPIKey,
		ProAPIKey:      cfg.GeminiProAPIKey,
		BaseURL:        cfg.GeminiBaseURL,
		Logger:         &logger,
	})
	provider := auth.NewProvider(auth.ProviderOptions{
		APIKey:  cfg.FirebaseAPIKey,
		BaseURL: cfg.IdentityBaseURL,
	})
	verifier := google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID)
	svc := auth.NewService(cfg.AdminEmails)

	var lookup mw.CountryLookup
	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(logger, st, site, builder, provider, verifier, svc, cfg.JWTSecret)
	router := httpapi.NewRouter(httpapi.Options{
		App:            app,
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		DefaultLocale:  "en",
		CountryLookup:  lookup,
		TryonPerMinute: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
