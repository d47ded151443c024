package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/logger"
)

func DeleteProjectHandler(c echo.Context) error {
	type deleteProjectResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	app := appContext(c).App

	if err := app.Store.DeleteProject(id); err != nil {
		return storeError(c, err)
	}

	// Archived engine requests go with the project. Failures only
	// leave orphaned objects behind, so they don't fail the delete.
	if err := app.Archive.DeleteProject(c.Request().Context(), id); err != nil {
		logger.Error("Failed to delete request archive", "project", id, "err", err)
	}

	persist(c)

	return c.JSON(http.StatusOK, deleteProjectResponse{
		Message: "Project deleted successfully",
	})
}
