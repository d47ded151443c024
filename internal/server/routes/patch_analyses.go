package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/store"
)

func EditAnalysisHandler(c echo.Context) error {
	type editAnalysisBody struct {
		ID              string    `param:"id" validate:"required"`
		SubjectID       string    `param:"subject_id" validate:"required"`
		RelationID      string    `param:"relation_id"`
		AnalysisID      string    `param:"analysis_id" validate:"required"`
		GroupName       *string   `json:"group_name"`
		EdgeName        *string   `json:"edge_name"`
		TextType        *string   `json:"text_type"`
		PoolSize        *int      `json:"pool_size" validate:"omitempty,gte=0"`
		AnalysisMethods *[]string `json:"analysis_methods"`
		AnalysisGuide   *string   `json:"analysis_guide"`
	}

	type editAnalysisResponse struct {
		Message string `json:"message"`
	}

	data := new(editAnalysisBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAnalysisResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editAnalysisResponse{
			Message: "Invalid request body",
		})
	}

	if data.TextType != nil &&
		*data.TextType != common.TextTypeNarrative &&
		*data.TextType != common.TextTypeShort {
		return c.JSON(http.StatusBadRequest, editAnalysisResponse{
			Message: "Unknown text type: " + *data.TextType,
		})
	}
	if data.AnalysisMethods != nil {
		for _, m := range *data.AnalysisMethods {
			switch m {
			case common.MethodPositive, common.MethodNegative,
				common.MethodNeutral, common.MethodComprehensive:
			default:
				return c.JSON(http.StatusBadRequest, editAnalysisResponse{
					Message: "Unknown expression type: " + m,
				})
			}
		}
	}

	patch := store.AnalysisPatch{
		GroupName:       data.GroupName,
		EdgeName:        data.EdgeName,
		TextType:        data.TextType,
		PoolSize:        data.PoolSize,
		AnalysisMethods: data.AnalysisMethods,
		AnalysisGuide:   data.AnalysisGuide,
	}

	st := appContext(c).App.Store

	var err error
	if data.RelationID != "" {
		err = st.UpdateRelationAnalysis(data.ID, data.SubjectID, data.RelationID, data.AnalysisID, patch)
	} else {
		err = st.UpdateSubjectAnalysis(data.ID, data.SubjectID, data.AnalysisID, patch)
	}
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, editAnalysisResponse{
		Message: "Expression updated successfully",
	})
}
