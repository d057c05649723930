package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/clipboard"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/page"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/rss"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/app"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/buildinfo"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/config"
	"github.com/Guilhem-Bonnet/Episode-Browser/internal/ports"
)

func main() {
	def := config.Default()
	addr := flag.String("addr", def.Addr, "Adresse d'écoute (ex: 127.0.0.1:8080)")
	dbPath := flag.String("db", def.DBPath, "Chemin SQLite (ex: epb.db)")
	hash := flag.String("hash", def.InitialHash, "Fragment initial (ex: #soso_no_frieren::0-2)")
	flag.Parse()

	cfg := def
	cfg.Addr, cfg.DBPath, cfg.InitialHash = *addr, *dbPath, *hash

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "epb-server").Logger()
	log.Logger = logger

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	history, err := app.ParseHistoryMode(cfg.BulkHistory)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	logger.Info().Interface("build", buildinfo.Current()).Str("db", cfg.DBPath).Msg("starting")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open db")
	}
	defer func() { _ = db.Close() }()

	shows, err := cfg.Shows()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load shows")
	}
	registry, err := app.NewShowRegistry(shows)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid show registry")
	}

	bus := memorybus.New()
	defer bus.Close()

	cache := app.NewFeedCache(logger.With().Str("component", "feed-cache").Logger(), registry, rss.NewSource(cfg.FetchTimeout)).
		WithMaxFetches(cfg.MaxFetches)
	watched := app.LoadWatchedStore(ctx, logger.With().Str("component", "watched").Logger(), sqlite.NewKVRepository(db.SQL))

	var clip ports.Clipboard = &clipboard.Memory{}
	if cfg.Clipboard == config.ClipboardSystem {
		if clipboard.Available() {
			clip = clipboard.System{}
		} else {
			logger.Warn().Msg("system clipboard unavailable, falling back to memory")
		}
	}

	p := page.New(cfg.InitialHash)
	opts := app.DefaultSyncOptions()
	opts.TickInterval = cfg.TickInterval
	opts.BulkHistory = history
	session := app.NewSyncLoop(logger.With().Str("component", "sync").Logger(), cache, watched, p, p, clip, bus, opts)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Prefetch {
		go func() {
			if err := cache.Prefetch(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("prefetch interrupted")
			}
		}()
	}

	// Chargement initial (équivalent du load de la page).
	go func() {
		if err := session.Load(shutdownCtx); err != nil {
			logger.Warn().Err(err).Str("hash", cfg.InitialHash).Msg("initial load failed")
		}
	}()
	go session.Run(shutdownCtx)

	srv := httpapi.NewServer(logger, session, cache, bus, p)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("session", session.ID()).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
