package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/middleware"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/store"
)

func appContext(c echo.Context) *middleware.AppContext {
	return c.(*middleware.AppContext)
}

// persist writes the store snapshot after a successful mutation.
// A failed write is logged but does not fail the request; the in-memory
// state is already updated and the next successful save catches up.
func persist(c echo.Context) {
	if err := appContext(c).App.Store.Save(); err != nil {
		logger.Error("Failed to persist store snapshot", "err", err)
	}
}

// storeError maps store failures onto the standard JSON error reply.
func storeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	logger.Error("Store operation failed", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
