package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func DeleteRelationHandler(c echo.Context) error {
	type deleteRelationResponse struct {
		Message string `json:"message"`
	}

	err := appContext(c).App.Store.DeleteRelation(
		c.Param("id"),
		c.Param("subject_id"),
		c.Param("relation_id"),
	)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, deleteRelationResponse{
		Message: "Relation deleted successfully",
	})
}
