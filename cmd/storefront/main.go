package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mmbm-clothing/storefront/internal/cart"
	"github.com/mmbm-clothing/storefront/internal/catalog"
	"github.com/mmbm-clothing/storefront/internal/config"
	storeHttp "github.com/mmbm-clothing/storefront/internal/handler/http"
	"github.com/mmbm-clothing/storefront/internal/imaging"
	"github.com/mmbm-clothing/storefront/internal/messaging"
	"github.com/mmbm-clothing/storefront/internal/order"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := catalog.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}
	log.Info().Int("products", len(store.List())).Msg("Catalog loaded")

	sessions := cart.NewSessions(cfg.Cart.SessionTTL)
	defer sessions.Close()

	channel, err := messaging.NewWhatsApp(cfg.WhatsApp.Phone)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure hand-off channel")
	}

	composer := order.NewComposer(channel)

	catalogHandler := storeHttp.NewCatalogHandler(store)
	cartHandler := storeHttp.NewCartHandler(store, sessions)
	checkoutHandler := storeHttp.NewCheckoutHandler(sessions, composer)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(storeHttp.SessionMiddleware)

		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		checkoutHandler.RegisterRoutes(r)

		if cfg.Imaging.Endpoint != "" {
			remover := imaging.NewRemover(cfg.Imaging.Endpoint, cfg.Imaging.Timeout)
			storeHttp.NewLogoHandler(remover).RegisterRoutes(r)
		} else {
			log.Warn().Msg("IMAGING_ENDPOINT not set; logo tool disabled")
		}
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("Storefront stopped gracefully.")
}
