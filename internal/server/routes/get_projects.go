package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/common"
)

// projectListing pairs a project with the display label for its status,
// mirroring the labels the run logs carry.
type projectListing struct {
	common.AnalysisProject
	StatusLabel string `json:"status_label"`
}

func listProject(p common.AnalysisProject) projectListing {
	return projectListing{
		AnalysisProject: p,
		StatusLabel:     common.StatusLabels[p.Status],
	}
}

func GetProjectsHandler(c echo.Context) error {
	type getProjectsResponse struct {
		Projects []projectListing `json:"projects"`
	}

	projects := appContext(c).App.Store.Projects()
	listings := make([]projectListing, 0, len(projects))
	for _, p := range projects {
		listings = append(listings, listProject(p))
	}

	return c.JSON(http.StatusOK, getProjectsResponse{Projects: listings})
}

func GetProjectHandler(c echo.Context) error {
	type getProjectResponse struct {
		Project projectListing `json:"project"`
	}

	project, err := appContext(c).App.Store.GetProject(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, getProjectResponse{Project: listProject(project)})
}
