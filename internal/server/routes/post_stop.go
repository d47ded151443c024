package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/events"
	"github.com/profilenet/backend/internal/server/util"
	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/logger"
	"github.com/profilenet/backend/pkg/wire"
)

// StopAnalysisHandler cancels a running analysis. The engine is told
// first; local state only changes once the engine confirmed the stop.
func StopAnalysisHandler(c echo.Context) error {
	type stopAnalysisResponse struct {
		Message string                  `json:"message"`
		Project *common.AnalysisProject `json:"project,omitempty"`
	}

	id := c.Param("id")
	app := appContext(c).App
	ctx := c.Request().Context()

	project, err := app.Store.GetProject(id)
	if err != nil {
		return storeError(c, err)
	}
	if project.Status != common.StatusAnalyzing {
		return c.JSON(http.StatusConflict, stopAnalysisResponse{
			Message: "Project is not analyzing",
		})
	}

	if _, err := app.Engine.Stop(ctx, &wire.StopAnalysisRequest{ID: id}); err != nil {
		logger.Error("Engine rejected stop request", "project", id, "err", err)
		return c.JSON(util.EngineErrorStatus(err), stopAnalysisResponse{
			Message: err.Error(),
		})
	}

	if err := app.Store.StopAnalysis(id); err != nil {
		return storeError(c, err)
	}
	persist(c)

	app.Events.Publish(events.TopicStopped, events.Event{
		ProjectID: id,
		Status:    string(common.StatusAvailable),
	})

	updated, err := app.Store.GetProject(id)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, stopAnalysisResponse{
		Message: "Analysis stopped successfully",
		Project: &updated,
	})
}
