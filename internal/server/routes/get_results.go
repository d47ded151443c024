package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/util"
	"github.com/profilenet/backend/pkg/wire"
)

func GetResultsHandler(c echo.Context) error {
	type getResultsResponse struct {
		*wire.ResultsResponse
		Graph wire.NetworkGraph `json:"graph"`
	}

	id := c.Param("id")
	app := appContext(c).App

	project, err := app.Store.GetProject(id)
	if err != nil {
		return storeError(c, err)
	}

	resp, err := app.Engine.Results(c.Request().Context(), id)
	if err != nil {
		return c.JSON(util.EngineErrorStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, getResultsResponse{
		ResultsResponse: resp,
		Graph:           wire.GraphFromProject(app.ContentIDs, project),
	})
}
