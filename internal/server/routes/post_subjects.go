package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func AddSubjectHandler(c echo.Context) error {
	type addSubjectResponse struct {
		Message   string `json:"message"`
		SubjectID string `json:"subject_id,omitempty"`
	}

	subjectID, err := appContext(c).App.Store.AddSubject(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}

	persist(c)

	return c.JSON(http.StatusCreated, addSubjectResponse{
		Message:   "Subject added successfully",
		SubjectID: subjectID,
	})
}
