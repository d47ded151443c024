package util

import (
	"errors"
	"net/http"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/engine"
)

// ProjectStatusFromValidation maps a save-validation outcome to the
// lifecycle status it forces on the project.
func ProjectStatusFromValidation(errCount int) common.ProjectStatus {
	if errCount > 0 {
		return common.StatusUnavailable
	}
	return common.StatusAvailable
}

// EngineErrorStatus translates an engine failure into the HTTP status
// the API surfaces. Transport failures and unexpected engine responses
// both come back as 502; the engine's own rejections keep more
// specific codes.
func EngineErrorStatus(err error) int {
	var engErr *engine.Error
	if !errors.As(err, &engErr) {
		return http.StatusBadGateway
	}

	switch engErr.Code {
	case engine.CodeInvalidRequest:
		return http.StatusUnprocessableEntity
	case engine.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
