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

// StartAnalysisHandler converts the project tree to an engine request
// and submits it. The store only moves to analyzing after the engine
// accepted the run; an engine failure leaves the project untouched.
func StartAnalysisHandler(c echo.Context) error {
	type startAnalysisBody struct {
		ID         string              `param:"id" validate:"required"`
		Data       []common.DataDomain `json:"data" validate:"required,min=1"`
		StartDate  string              `json:"start_date" validate:"required"`
		EndDate    string              `json:"end_date" validate:"required"`
		AutoUpdate bool                `json:"autoUpdate"`
	}

	type startAnalysisResponse struct {
		Message string                  `json:"message"`
		Project *common.AnalysisProject `json:"project,omitempty"`
		Logs    []common.AnalysisLog    `json:"logs,omitempty"`
	}

	data := new(startAnalysisBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, startAnalysisResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, startAnalysisResponse{
			Message: "Invalid request body",
		})
	}

	for _, d := range data.Data {
		if _, ok := common.DomainLabels[d.Domain]; !ok {
			return c.JSON(http.StatusBadRequest, startAnalysisResponse{
				Message: "Unknown data domain: " + d.Domain,
			})
		}
		if _, ok := common.TypeLabels[d.Type]; !ok {
			return c.JSON(http.StatusBadRequest, startAnalysisResponse{
				Message: "Unknown media type: " + d.Type,
			})
		}
	}

	user := appContext(c).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, startAnalysisResponse{
			Message: "Unauthorized",
		})
	}

	app := appContext(c).App
	ctx := c.Request().Context()

	project, err := app.Store.GetProject(data.ID)
	if err != nil {
		return storeError(c, err)
	}
	if project.Status != common.StatusAvailable {
		return c.JSON(http.StatusConflict, startAnalysisResponse{
			Message: "Project must pass save validation before analysis",
		})
	}

	// The conversion sees the run scope the caller picked, not whatever
	// scope was saved on the project earlier.
	project.Data = data.Data
	project.StartDate = data.StartDate
	project.EndDate = data.EndDate

	req, err := wire.FromProject(ctx, app.ContentIDs, project)
	if err != nil {
		logger.Error("Failed to convert analysis request", "project", data.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, startAnalysisResponse{
			Message: "Internal server error",
		})
	}

	resp, err := app.Engine.Start(ctx, req)
	if err != nil {
		logger.Error("Engine rejected analysis request", "project", data.ID, "err", err)
		return c.JSON(util.EngineErrorStatus(err), startAnalysisResponse{
			Message: err.Error(),
		})
	}

	err = app.Store.StartAnalysis(data.ID, data.Data, data.StartDate, data.EndDate, data.AutoUpdate)
	if err != nil {
		return storeError(c, err)
	}
	persist(c)

	if err := app.Archive.PutRequest(ctx, resp.RequestID, req); err != nil {
		logger.Error("Failed to archive analysis request", "project", data.ID, "err", err)
	}

	app.Events.Publish(events.TopicStarted, events.Event{
		ProjectID: data.ID,
		UserID:    user.UserID,
		Status:    string(common.StatusAnalyzing),
	})

	updated, err := app.Store.GetProject(data.ID)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, startAnalysisResponse{
		Message: "Analysis started successfully",
		Project: &updated,
		Logs:    app.Store.ProjectLogs(data.ID),
	})
}
