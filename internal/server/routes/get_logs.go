package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/common"
)

// GetLogsHandler returns the run ledger, scoped to one project when a
// project id is part of the route.
func GetLogsHandler(c echo.Context) error {
	type getLogsResponse struct {
		Logs []common.AnalysisLog `json:"logs"`
	}

	st := appContext(c).App.Store

	var logs []common.AnalysisLog
	if id := c.Param("id"); id != "" {
		if _, err := st.GetProject(id); err != nil {
			return storeError(c, err)
		}
		logs = st.ProjectLogs(id)
	} else {
		logs = st.Logs()
	}
	if logs == nil {
		logs = []common.AnalysisLog{}
	}

	return c.JSON(http.StatusOK, getLogsResponse{Logs: logs})
}
