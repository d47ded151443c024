package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/store"
)

func EditSubjectHandler(c echo.Context) error {
	type editSubjectBody struct {
		ID          string  `param:"id" validate:"required"`
		SubjectID   string  `param:"subject_id" validate:"required"`
		GroupName   *string `json:"group_name"`
		FilterGuide *string `json:"filter_guide"`
	}

	type editSubjectResponse struct {
		Message string `json:"message"`
	}

	data := new(editSubjectBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editSubjectResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editSubjectResponse{
			Message: "Invalid request body",
		})
	}

	err := appContext(c).App.Store.UpdateSubject(data.ID, data.SubjectID, store.SubjectPatch{
		GroupName:   data.GroupName,
		FilterGuide: data.FilterGuide,
	})
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, editSubjectResponse{
		Message: "Subject updated successfully",
	})
}
