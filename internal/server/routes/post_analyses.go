package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AddAnalysisHandler serves both attachment points: with a relation_id
// param the expression lands on the relation, without it on the subject.
func AddAnalysisHandler(c echo.Context) error {
	type addAnalysisResponse struct {
		Message    string `json:"message"`
		AnalysisID string `json:"analysis_id,omitempty"`
	}

	st := appContext(c).App.Store

	var analysisID string
	var err error
	if relationID := c.Param("relation_id"); relationID != "" {
		analysisID, err = st.AddRelationAnalysis(c.Param("id"), c.Param("subject_id"), relationID)
	} else {
		analysisID, err = st.AddSubjectAnalysis(c.Param("id"), c.Param("subject_id"))
	}
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusCreated, addAnalysisResponse{
		Message:    "Expression added successfully",
		AnalysisID: analysisID,
	})
}
