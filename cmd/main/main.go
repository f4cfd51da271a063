package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "net/http/pprof"

	"planboard-service/internal/config"
	"planboard-service/internal/plan/cache"
	planHnd "planboard-service/internal/plan/handler"
	"planboard-service/internal/plan/source"
	serverhttp "planboard-service/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.TablesFile).Msg("load tables")
	}

	deps := planHnd.Deps{Cfg: cfg, Tables: tables, Logger: logger}
	if cfg.SourceURL != "" {
		c := cache.New(cfg.CacheTTL)
		p := source.NewURLProvider(cfg.SourceURL, cfg.SourceHeader)
		deps.Source = source.NewCachedSource(p, c, "plan")
		logger.Info().Str("url", cfg.SourceURL).Dur("ttl", cfg.CacheTTL).Msg("source configured")
	}

	r := serverhttp.NewRouter(deps, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
