package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/store"
)

func EditKeywordHandler(c echo.Context) error {
	type editKeywordBody struct {
		ID         string  `param:"id" validate:"required"`
		SubjectID  string  `param:"subject_id" validate:"required"`
		RelationID string  `param:"relation_id"`
		KeywordID  string  `param:"keyword_id" validate:"required"`
		Name       *string `json:"name"`
		Query      *string `json:"query"`
		Info       *string `json:"info"`
	}

	type editKeywordResponse struct {
		Message string `json:"message"`
	}

	data := new(editKeywordBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, editKeywordResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, editKeywordResponse{
			Message: "Invalid request body",
		})
	}

	err := appContext(c).App.Store.UpdateKeyword(
		data.ID,
		data.SubjectID,
		data.RelationID,
		data.KeywordID,
		store.KeywordPatch{
			Name:  data.Name,
			Query: data.Query,
			Info:  data.Info,
		},
	)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, editKeywordResponse{
		Message: "Keyword updated successfully",
	})
}
