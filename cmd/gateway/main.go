package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	cartgrpc "github.com/dwikikusuma/shoping-cart/internal/cart/grpc"
	carthttp "github.com/dwikikusuma/shoping-cart/internal/cart/http"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/infra/inventoryhttp"
	viewapp "github.com/dwikikusuma/shoping-cart/internal/view/app"
	viewhttp "github.com/dwikikusuma/shoping-cart/internal/view/http"
	"github.com/dwikikusuma/shoping-cart/pkg/config"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
	"github.com/dwikikusuma/shoping-cart/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "gateway",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	conn, err := grpc.DialContext(ctx, cfg.StorefrontGRPCAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Error("storefront dial failed", slog.Any("err", err), slog.String("addr", cfg.StorefrontGRPCAddr))
		os.Exit(1)
	}
	defer conn.Close()

	cart := cartgrpc.NewClient(conn)
	cartServer := carthttp.NewServer(cart, cart, log)
	inventory := inventoryhttp.NewClient(cfg.InventoryURL, cfg.InventoryTimeout)
	viewServer := viewhttp.NewServer(viewapp.NewView(inventory, cart), log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		switch conn.GetState() {
		case connectivity.TransientFailure, connectivity.Shutdown:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
	cartServer.Routes(r)
	viewServer.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
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
		log.Info("http server starting", slog.String("addr", addr), slog.String("storefront", cfg.StorefrontGRPCAddr))
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

		cartServer.CloseStreams()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
