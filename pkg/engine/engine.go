// Package engine defines the client interface for the external
// analysis engine. The server only ever talks to the engine through
// this interface; pkg/engine/httpclient speaks to a real deployment
// and pkg/engine/mock simulates one for development and tests.
package engine

import (
	"context"
	"fmt"

	"github.com/profilenet/backend/pkg/wire"
)

// Client defines the operations the analysis engine exposes.
// Implementations must be safe for concurrent use.
type Client interface {
	// Start submits a converted analysis request. A non-nil error means
	// the engine rejected or never received the request; callers must
	// not mark the project as analyzing in that case.
	Start(ctx context.Context, req *wire.StartAnalysisRequest) (*wire.StartAnalysisResponse, error)

	// Stop cancels a running analysis.
	Stop(ctx context.Context, req *wire.StopAnalysisRequest) (*wire.StopAnalysisResponse, error)

	// Monitoring reports per-keyword progress for a running analysis.
	Monitoring(ctx context.Context, analysisID string) (*wire.MonitoringResponse, error)

	// Results returns the completed-analysis summary.
	Results(ctx context.Context, analysisID string) (*wire.ResultsResponse, error)

	// NodeDetail fetches the drill-down payload for one network node.
	NodeDetail(ctx context.Context, req *wire.NodeDetailRequest) (*wire.NodeDetailResponse, error)
}

// Well-known error codes shared by implementations.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeUnavailable    = "ENGINE_UNAVAILABLE"
)

// Error is a failure reported by the engine itself, as opposed to a
// transport failure reaching it.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
