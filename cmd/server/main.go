package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/gizigo/product-console/internal/app/product/catalog"
	contracts "github.com/gizigo/product-console/internal/app/product/contracts"
	"github.com/gizigo/product-console/internal/app/product/queries/get_product"
	"github.com/gizigo/product-console/internal/app/product/repo"
	"github.com/gizigo/product-console/internal/app/product/usecases/create_product"
	"github.com/gizigo/product-console/internal/app/product/usecases/delete_product"
	"github.com/gizigo/product-console/internal/app/product/usecases/toggle_status"
	"github.com/gizigo/product-console/internal/app/product/usecases/update_product"
	"github.com/gizigo/product-console/internal/config"
	"github.com/gizigo/product-console/internal/pkg/clock"
	"github.com/gizigo/product-console/internal/pkg/datauri"
	"github.com/gizigo/product-console/internal/pkg/logger"
	httpproduct "github.com/gizigo/product-console/internal/transport/http/product"
)

type closableStore interface {
	contracts.Store
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		zlog.Info("shutdown signal received")
		cancel()
	}()

	clk := clock.RealClock{}

	// A missing store is not fatal: every operation reports it as unavailable.
	var store contracts.Store
	if s, err := openStore(ctx, cfg, clk, zlog); err != nil {
		zlog.Error("product store unavailable", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	} else {
		store = s
		defer func() {
			if err := s.Close(); err != nil {
				zlog.Warn("close product store", zap.Error(err))
			}
		}()
	}

	encoder := datauri.NewEncoder()
	cmds := httpproduct.Commands{
		Create: create_product.NewInteractor(store, encoder, clk, zlog),
		Update: update_product.NewInteractor(store, encoder, zlog),
		Toggle: toggle_status.NewInteractor(store, zlog),
		Delete: delete_product.NewInteractor(store, zlog),
	}
	qrys := httpproduct.Queries{
		Get: get_product.NewHandler(store),
	}

	newController := func() *catalog.Controller { return catalog.NewController(store, zlog) }
	shared := newController()
	if err := shared.Open(ctx); err != nil {
		zlog.Error("catalog sync failed", zap.Error(err))
	}
	defer shared.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	httpproduct.NewHandler(cmds, qrys, shared, newController, zlog).Register(e.Group("/api/products"))

	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.Address), zap.String("backend", cfg.StoreBackend))
		if err := e.Start(cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("http serve", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
		_ = e.Close()
	}

	zlog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Configuration, clk clock.Clock, zlog *zap.Logger) (closableStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repo.NewMemoryStore(clk), nil
	case config.BackendSpanner:
		if cfg.SpannerDatabase == "" {
			return nil, errors.New("SPANNER_DATABASE is required for the spanner backend")
		}
		return repo.OpenSpanner(ctx, cfg.SpannerDatabase, cfg.PollInterval(), zlog)
	default:
		if cfg.FirebaseProjectID == "" {
			return nil, errors.New("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
		return repo.OpenFirestore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath, cfg.Collection, zlog)
	}
}
