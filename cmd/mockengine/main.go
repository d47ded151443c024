// mockengine serves the simulated analysis engine over the same HTTP
// protocol the real deployment speaks, so the API server can be pointed
// at it with ENGINE_ADAPTER=http during development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/profilenet/backend/internal/util"
	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/engine/mock"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/logger/console"
	"github.com/profilenet/backend/pkg/wire"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Prefix: "engine",
		Debug:  util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := mock.NewEngine()

	e := echo.New()
	e.Use(middleware.Recover())

	e.POST("/api/analysis/start", func(c echo.Context) error {
		req := new(wire.StartAnalysisRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, wire.StartAnalysisResponse{
				Message:   "Invalid request body",
				ErrorCode: engine.CodeInvalidRequest,
			})
		}
		resp, err := eng.Start(c.Request().Context(), req)
		if err != nil {
			return engineError(c, err, func(engErr *engine.Error) any {
				return wire.StartAnalysisResponse{
					Message:   engErr.Message,
					ErrorCode: engErr.Code,
				}
			})
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.POST("/api/analysis/stop", func(c echo.Context) error {
		req := new(wire.StopAnalysisRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, wire.StopAnalysisResponse{
				Message:   "Invalid request body",
				ErrorCode: engine.CodeInvalidRequest,
			})
		}
		resp, err := eng.Stop(c.Request().Context(), req)
		if err != nil {
			return engineError(c, err, func(engErr *engine.Error) any {
				return wire.StopAnalysisResponse{
					Message:   engErr.Message,
					ErrorCode: engErr.Code,
				}
			})
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/api/analysis/:id/monitoring", func(c echo.Context) error {
		resp, err := eng.Monitoring(c.Request().Context(), c.Param("id"))
		if err != nil {
			return engineError(c, err, func(engErr *engine.Error) any {
				return wire.MonitoringResponse{
					Message:   engErr.Message,
					ErrorCode: engErr.Code,
				}
			})
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/api/analysis/:id/results", func(c echo.Context) error {
		resp, err := eng.Results(c.Request().Context(), c.Param("id"))
		if err != nil {
			return engineError(c, err, func(engErr *engine.Error) any {
				return wire.ResultsResponse{
					Message:   engErr.Message,
					ErrorCode: engErr.Code,
				}
			})
		}
		return c.JSON(http.StatusOK, resp)
	})

	e.POST("/api/analysis/node-detail", func(c echo.Context) error {
		req := new(wire.NodeDetailRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		resp, err := eng.NodeDetail(c.Request().Context(), req)
		if err != nil {
			return engineError(c, err, func(engErr *engine.Error) any {
				return map[string]string{"error": engErr.Message}
			})
		}
		return c.JSON(http.StatusOK, resp)
	})

	go func() {
		port := util.GetEnvString("ENGINE_PORT", "8090")
		logger.Info("Starting mock engine", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down mock engine", "err", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown mock engine", "err", err)
	}
}

// engineError writes an engine.Error as the matching HTTP status with
// the envelope the body builder produces.
func engineError(c echo.Context, err error, body func(*engine.Error) any) error {
	var engErr *engine.Error
	if !errors.As(err, &engErr) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	status := http.StatusBadRequest
	if engErr.Code == engine.CodeNotFound {
		status = http.StatusNotFound
	}
	return c.JSON(status, body(engErr))
}
