package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/store"
)

func EditRelationHandler(c echo.Context) error {
	type editRelationBody struct {
		ID            string  `param:"id" validate:"required"`
		SubjectID     string  `param:"subject_id" validate:"required"`
		RelationID    string  `param:"relation_id" validate:"required"`
		GroupName     *string `json:"group_name"`
		EdgeName      *string `json:"edge_name"`
		RelationGuide *string `json:"relation_guide"`
	}

	type editRelationResponse struct {
		Message string `json:"message"`
	}

	data := new(editRelationBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editRelationResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editRelationResponse{
			Message: "Invalid request body",
		})
	}

	err := appContext(c).App.Store.UpdateRelation(data.ID, data.SubjectID, data.RelationID, store.RelationPatch{
		GroupName:     data.GroupName,
		EdgeName:      data.EdgeName,
		RelationGuide: data.RelationGuide,
	})
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, editRelationResponse{
		Message: "Relation updated successfully",
	})
}
