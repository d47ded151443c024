package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/util"
)

// GetMonitoringHandler proxies the engine's live progress view for a
// project. Folding progress into the run logs is the poller's job;
// this endpoint is read-only.
func GetMonitoringHandler(c echo.Context) error {
	id := c.Param("id")
	app := appContext(c).App

	if _, err := app.Store.GetProject(id); err != nil {
		return storeError(c, err)
	}

	resp, err := app.Engine.Monitoring(c.Request().Context(), id)
	if err != nil {
		return c.JSON(util.EngineErrorStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}
