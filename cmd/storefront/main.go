package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	cartapp "github.com/dwikikusuma/shoping-cart/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/shoping-cart/internal/cart/grpc"
	carthttp "github.com/dwikikusuma/shoping-cart/internal/cart/http"
	"github.com/dwikikusuma/shoping-cart/internal/cart/notify"
	"github.com/dwikikusuma/shoping-cart/internal/catalog/infra/inventoryhttp"
	viewapp "github.com/dwikikusuma/shoping-cart/internal/view/app"
	viewhttp "github.com/dwikikusuma/shoping-cart/internal/view/http"
	"github.com/dwikikusuma/shoping-cart/pkg/config"
	"github.com/dwikikusuma/shoping-cart/pkg/logger"
	"github.com/dwikikusuma/shoping-cart/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg.Cart)
	if err != nil {
		log.Error("cart store open failed", slog.Any("err", err), slog.String("backend", cfg.Cart.Backend))
		os.Exit(1)
	}
	defer closeStore()

	// A slot that cannot be read stops startup instead of being overwritten by
	// the first mutation.
	initial, err := store.Load(ctx)
	if err != nil {
		log.Error("cart slot load failed", slog.Any("err", err), slog.String("slot", cfg.Cart.Slot))
		os.Exit(1)
	}
	log.Info("cart restored", slog.String("backend", cfg.Cart.Backend), slog.Int("items", len(initial)))

	inventory := inventoryhttp.NewClient(cfg.InventoryURL, cfg.InventoryTimeout)

	cartSvc := cartapp.NewService(inventory, notify.NewLog(log),
		cartapp.WithCart(initial),
		cartapp.WithChangeHook(cartapp.PersistTo(store)),
		cartapp.WithLogger(log),
	)
	local := cartapp.NewLocal(cartSvc)

	cartServer := carthttp.NewServer(local, local, log)
	viewServer := viewhttp.NewServer(viewapp.NewView(inventory, local), log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	cartServer.Routes(r)
	viewServer.Routes(r)

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	cartgrpc.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(local, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		cartServer.CloseStreams()
		cartSvc.Close()

		if !shutdown.Graceful(10*time.Second, grpcServer.GracefulStop, grpcServer.Stop) {
			log.Warn("graceful stop timeout, forcing stop")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("storefront stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
