package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/common"
)

func CreateProjectHandler(c echo.Context) error {
	type createProjectBody struct {
		Name string `json:"name" validate:"required"`
	}

	type createProjectResponse struct {
		Message string                  `json:"message"`
		Project *common.AnalysisProject `json:"project,omitempty"`
	}

	data := new(createProjectBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createProjectResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createProjectResponse{
			Message: "Invalid request body",
		})
	}

	user := appContext(c).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createProjectResponse{
			Message: "Unauthorized",
		})
	}

	st := appContext(c).App.Store
	id, err := st.CreateProject(user.UserID, data.Name)
	if err != nil {
		return storeError(c, err)
	}

	project, err := st.GetProject(id)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusCreated, createProjectResponse{
		Message: "Project created successfully",
		Project: &project,
	})
}
