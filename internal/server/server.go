package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/profilenet/backend/internal/archive"
	"github.com/profilenet/backend/internal/events"
	"github.com/profilenet/backend/internal/runner"
	mid "github.com/profilenet/backend/internal/server/middleware"
	"github.com/profilenet/backend/internal/util"
	"github.com/profilenet/backend/pkg/contentid"
	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/engine/httpclient"
	"github.com/profilenet/backend/pkg/engine/mock"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/store"
	"github.com/profilenet/backend/pkg/store/kv"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := kv.OpenBadger(
		util.GetEnvString("STORE_PATH", "./data"),
		util.GetEnvBool("STORE_IN_MEMORY", false),
	)
	if err != nil {
		logger.Fatal("Failed to open store backend", "err", err)
	}
	defer backend.Close()

	st := store.New(backend)
	if err := st.Load(); err != nil {
		logger.Fatal("Failed to load store snapshot", "err", err)
	}

	var eng engine.Client
	switch util.GetEnvString("ENGINE_ADAPTER", "mock") {
	case "http":
		client, err := httpclient.NewEngineHTTPClient(httpclient.NewEngineHTTPClientParams{
			BaseURL: util.GetEnv("ENGINE_URL"),
			ApiKey:  util.GetEnv("ENGINE_API_KEY"),
		})
		if err != nil {
			logger.Fatal("Failed to create engine client", "err", err)
		}
		eng = client
	default:
		eng = mock.NewEngine()
	}

	var publisher *events.Publisher
	if util.GetEnv("RABBITMQ_HOST") != "" {
		publisher, err = events.Init(ctx)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", "err", err)
		}
		defer publisher.Close()
	}

	arch, err := archive.New(ctx)
	if err != nil {
		logger.Fatal("Failed to create request archive", "err", err)
	}

	pollInterval := time.Duration(util.GetEnvInt("MONITOR_INTERVAL_SECONDS", 5)) * time.Second
	runner.New(st, eng, publisher, pollInterval).Start(ctx)

	app := &mid.App{
		Store:      st,
		Engine:     eng,
		Events:     publisher,
		Archive:    arch,
		ContentIDs: contentid.New(),
		APIKey:     util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}

	if err := st.Save(); err != nil {
		logger.Error("Failed to persist store on shutdown", "err", err)
	}
}
