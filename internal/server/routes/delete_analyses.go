package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func DeleteAnalysisHandler(c echo.Context) error {
	type deleteAnalysisResponse struct {
		Message string `json:"message"`
	}

	st := appContext(c).App.Store

	var err error
	if relationID := c.Param("relation_id"); relationID != "" {
		err = st.DeleteRelationAnalysis(c.Param("id"), c.Param("subject_id"), relationID, c.Param("analysis_id"))
	} else {
		err = st.DeleteSubjectAnalysis(c.Param("id"), c.Param("subject_id"), c.Param("analysis_id"))
	}
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, deleteAnalysisResponse{
		Message: "Expression deleted successfully",
	})
}
