package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/engine"
)

func TestProjectStatusFromValidation(t *testing.T) {
	if got := ProjectStatusFromValidation(0); got != common.StatusAvailable {
		t.Fatalf("expected available, got %s", got)
	}
	if got := ProjectStatusFromValidation(3); got != common.StatusUnavailable {
		t.Fatalf("expected unavailable, got %s", got)
	}
}

func TestEngineErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", &engine.Error{Code: engine.CodeInvalidRequest}, http.StatusUnprocessableEntity},
		{"not found", &engine.Error{Code: engine.CodeNotFound}, http.StatusNotFound},
		{"unavailable", &engine.Error{Code: engine.CodeUnavailable}, http.StatusBadGateway},
		{"http status code", &engine.Error{Code: "HTTP_500"}, http.StatusBadGateway},
		{"wrapped engine error", fmt.Errorf("start: %w", &engine.Error{Code: engine.CodeNotFound}), http.StatusNotFound},
		{"plain error", errors.New("dial tcp: refused"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EngineErrorStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
