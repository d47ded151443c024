package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/store"
)

func EditProjectHandler(c echo.Context) error {
	type editProjectBody struct {
		ID         string               `param:"id" validate:"required"`
		Name       *string              `json:"name"`
		Data       *[]common.DataDomain `json:"data"`
		StartDate  *string              `json:"start_date"`
		EndDate    *string              `json:"end_date"`
		AutoUpdate *bool                `json:"autoUpdate"`
	}

	type editProjectResponse struct {
		Message string                  `json:"message"`
		Project *common.AnalysisProject `json:"project,omitempty"`
	}

	data := new(editProjectBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editProjectResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editProjectResponse{
			Message: "Invalid request body",
		})
	}

	if data.Data != nil {
		for _, d := range *data.Data {
			if _, ok := common.DomainLabels[d.Domain]; !ok {
				return c.JSON(http.StatusBadRequest, editProjectResponse{
					Message: "Unknown data domain: " + d.Domain,
				})
			}
			if _, ok := common.TypeLabels[d.Type]; !ok {
				return c.JSON(http.StatusBadRequest, editProjectResponse{
					Message: "Unknown media type: " + d.Type,
				})
			}
		}
	}

	st := appContext(c).App.Store
	err := st.UpdateProject(data.ID, store.ProjectPatch{
		Name:       data.Name,
		Data:       data.Data,
		StartDate:  data.StartDate,
		EndDate:    data.EndDate,
		AutoUpdate: data.AutoUpdate,
	})
	if err != nil {
		return storeError(c, err)
	}

	project, err := st.GetProject(data.ID)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, editProjectResponse{
		Message: "Project updated successfully",
		Project: &project,
	})
}
