package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func DeleteKeywordHandler(c echo.Context) error {
	type deleteKeywordResponse struct {
		Message string `json:"message"`
	}

	err := appContext(c).App.Store.DeleteKeyword(
		c.Param("id"),
		c.Param("subject_id"),
		c.Param("relation_id"),
		c.Param("keyword_id"),
	)
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, deleteKeywordResponse{
		Message: "Keyword deleted successfully",
	})
}
