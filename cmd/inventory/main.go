package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	catalogapp "github.com/dwikikusuma/shoping-cart/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/shoping-cart/internal/catalog/http"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/infra/memory"
	"github.com/dwikikusuma/shoping-cart/pkg/config"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
	"github.com/dwikikusuma/shoping-cart/pkg/shutdown"
)

//go:embed db.json
var defaultSeed []byte

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "inventory", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	seed, err := loadSeed(cfg.InventorySeed)
	if err != nil {
		log.Error("seed load failed", slog.Any("err", err), slog.String("path", cfg.InventorySeed))
		os.Exit(1)
	}
	log.Info("inventory seeded", slog.Int("products", len(seed.Products)), slog.Int("stock", len(seed.Stock)))

	svc := catalogapp.NewService(memory.NewProductRepo(seed))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	cataloghttp.NewServer(svc, log).Routes(r)

	addr := fmt.Sprintf(":%d", cfg.InventoryPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("inventory stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

// loadSeed reads path when set and falls back to the embedded db.json.
func loadSeed(path string) (memory.Seed, error) {
	var src io.Reader = bytes.NewReader(defaultSeed)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return memory.Seed{}, err
		}
		defer f.Close()
		src = f
	}
	return memory.DecodeSeed(src)
}
