package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AddKeywordHandler serves both attachment points: with a relation_id
// param the keyword belongs to the relation, without it to the subject.
func AddKeywordHandler(c echo.Context) error {
	type addKeywordResponse struct {
		Message   string `json:"message"`
		KeywordID string `json:"keyword_id,omitempty"`
	}

	keywordID, err := appContext(c).App.Store.AddKeyword(
		c.Param("id"),
		c.Param("subject_id"),
		c.Param("relation_id"),
	)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusCreated, addKeywordResponse{
		Message:   "Keyword added successfully",
		KeywordID: keywordID,
	})
}
