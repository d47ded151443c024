package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func AddRelationHandler(c echo.Context) error {
	type addRelationResponse struct {
		Message    string `json:"message"`
		RelationID string `json:"relation_id,omitempty"`
	}

	relationID, err := appContext(c).App.Store.AddRelation(c.Param("id"), c.Param("subject_id"))
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusCreated, addRelationResponse{
		Message:    "Relation added successfully",
		RelationID: relationID,
	})
}
