package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func DeleteSubjectHandler(c echo.Context) error {
	type deleteSubjectResponse struct {
		Message string `json:"message"`
	}

	err := appContext(c).App.Store.DeleteSubject(c.Param("id"), c.Param("subject_id"))
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusOK, deleteSubjectResponse{
		Message: "Subject deleted successfully",
	})
}
