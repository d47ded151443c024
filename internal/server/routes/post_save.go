package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/server/util"
	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/validate"
)

// SaveProjectHandler runs save validation over the project tree and
// moves the project to available or unavailable accordingly. Every
// rule violation is collected and returned, not just the first one.
func SaveProjectHandler(c echo.Context) error {
	type saveProjectResponse struct {
		Message string               `json:"message"`
		Status  common.ProjectStatus `json:"status"`
		Errors  []string             `json:"errors,omitempty"`
	}

	id := c.Param("id")
	st := appContext(c).App.Store

	project, err := st.GetProject(id)
	if err != nil {
		return storeError(c, err)
	}

	if project.Status == common.StatusAnalyzing {
		return c.JSON(http.StatusConflict, saveProjectResponse{
			Message: "Project is currently analyzing",
			Status:  project.Status,
		})
	}

	errs := validate.Project(project)
	status := util.ProjectStatusFromValidation(len(errs))

	if err := st.SetProjectStatus(id, status); err != nil {
		return storeError(c, err)
	}
	persist(c)

	if len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, saveProjectResponse{
			Message: validate.Format(errs, validate.DefaultErrorLimit),
			Status:  status,
			Errors:  errs,
		})
	}

	return c.JSON(http.StatusOK, saveProjectResponse{
		Message: "Project saved successfully",
		Status:  status,
	})
}
