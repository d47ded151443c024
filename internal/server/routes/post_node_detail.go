package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/util"
	"github.com/profilenet/backend/pkg/wire"
)

func GetNodeDetailHandler(c echo.Context) error {
	type nodeDetailBody struct {
		ID        string `param:"id" validate:"required"`
		NodeID    string `json:"nodeId" validate:"required"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}

	data := new(nodeDetailBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	app := appContext(c).App

	if _, err := app.Store.GetProject(data.ID); err != nil {
		return storeError(c, err)
	}

	resp, err := app.Engine.NodeDetail(c.Request().Context(), &wire.NodeDetailRequest{
		ProjectID: data.ID,
		NodeID:    data.NodeID,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
	})
	if err != nil {
		return c.JSON(util.EngineErrorStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}
