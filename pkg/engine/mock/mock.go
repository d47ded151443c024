// Package mock simulates the analysis engine in memory. Progress
// advances a little on every monitoring poll, so a frontend or test
// driving the real API sees a plausible run without any backend.
package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/wire"
)

type analysisRun struct {
	req      wire.StartAnalysisRequest
	status   string
	started  time.Time
	progress []wire.AnalysisProgress
}

// Engine implements engine.Client entirely in memory.
type Engine struct {
	mu   sync.Mutex
	runs map[string]*analysisRun
	rand *rand.Rand
}

// NewEngine creates an empty mock engine.
func NewEngine() *Engine {
	return &Engine{
		runs: make(map[string]*analysisRun),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *Engine) Start(
	ctx context.Context,
	req *wire.StartAnalysisRequest,
) (*wire.StartAnalysisResponse, error) {
	if err := validateStart(req); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	run := &analysisRun{
		req:     *req,
		status:  wire.RunProcessing,
		started: time.Now().UTC(),
	}
	for _, sub := range req.Subjects {
		for _, kw := range sub.Keywords {
			for _, d := range req.Data {
				run.progress = append(run.progress, wire.AnalysisProgress{
					SubjectName: sub.GroupName,
					KeywordName: kw.Name,
					Domain:      d.Domain,
					Type:        d.Type,
					Status:      wire.RunPending,
					TotalCount:  100 + e.rand.Intn(900),
				})
			}
		}
	}
	e.runs[req.ID] = run

	return &wire.StartAnalysisResponse{
		Success:   true,
		Message:   "analysis accepted",
		RequestID: fmt.Sprintf("mock-%d", time.Now().UnixMilli()),
	}, nil
}

func (e *Engine) Stop(
	ctx context.Context,
	req *wire.StopAnalysisRequest,
) (*wire.StopAnalysisResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, ok := e.runs[req.ID]
	if !ok {
		return nil, &engine.Error{Code: engine.CodeNotFound, Message: "unknown analysis " + req.ID}
	}

	run.status = wire.RunStopped
	for i := range run.progress {
		if run.progress[i].Status != wire.RunCompleted {
			run.progress[i].Status = wire.RunStopped
		}
	}

	return &wire.StopAnalysisResponse{Success: true, Message: "analysis stopped"}, nil
}

// Monitoring advances every unfinished slice by 5 to 15 percent, then
// reports the new state. Progress only ever moves forward.
func (e *Engine) Monitoring(
	ctx context.Context,
	analysisID string,
) (*wire.MonitoringResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, ok := e.runs[analysisID]
	if !ok {
		return nil, &engine.Error{Code: engine.CodeNotFound, Message: "unknown analysis " + analysisID}
	}

	if run.status == wire.RunProcessing {
		e.advance(run)
	}

	resp := &wire.MonitoringResponse{
		Success:         true,
		ID:              analysisID,
		Name:            run.req.Name,
		Status:          run.status,
		OverallProgress: overall(run.progress),
		StartedAt:       run.started.Format(time.RFC3339),
		Analyses:        append([]wire.AnalysisProgress(nil), run.progress...),
	}
	return resp, nil
}

func (e *Engine) Results(
	ctx context.Context,
	analysisID string,
) (*wire.ResultsResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, ok := e.runs[analysisID]
	if !ok {
		return nil, &engine.Error{Code: engine.CodeNotFound, Message: "unknown analysis " + analysisID}
	}
	if run.status != wire.RunCompleted {
		return nil, &engine.Error{Code: engine.CodeInvalidRequest, Message: "analysis has not completed"}
	}

	return &wire.ResultsResponse{
		Success:    true,
		ID:         analysisID,
		ResultsURL: "mock://results/" + analysisID,
		Message:    "analysis completed",
	}, nil
}

func (e *Engine) NodeDetail(
	ctx context.Context,
	req *wire.NodeDetailRequest,
) (*wire.NodeDetailResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, ok := e.runs[req.ProjectID]
	if !ok {
		return nil, &engine.Error{Code: engine.CodeNotFound, Message: "unknown analysis " + req.ProjectID}
	}

	nodeType, data := e.detailFor(run, req.NodeID)
	return &wire.NodeDetailResponse{
		Success:  true,
		NodeType: nodeType,
		Data:     data,
	}, nil
}

func (e *Engine) advance(run *analysisRun) {
	done := true
	for i := range run.progress {
		p := &run.progress[i]
		switch p.Status {
		case wire.RunPending:
			p.Status = wire.RunProcessing
		case wire.RunCompleted, wire.RunStopped, wire.RunFailed:
			continue
		}

		p.Progress += 5 + e.rand.Intn(11)
		if p.Progress >= 100 {
			p.Progress = 100
			p.Status = wire.RunCompleted
		}
		p.ProcessedCount = p.TotalCount * p.Progress / 100
		if p.Status != wire.RunCompleted {
			done = false
		}
	}
	if done {
		run.status = wire.RunCompleted
	}
}

func (e *Engine) detailFor(run *analysisRun, nodeID string) (string, map[string]any) {
	for _, sub := range run.req.Subjects {
		if sub.ID == nodeID {
			return wire.NodeSubject, map[string]any{
				"groupName":    sub.GroupName,
				"keywords":     len(sub.Keywords),
				"mentionCount": 50 + e.rand.Intn(500),
			}
		}
		for _, rel := range sub.Relations {
			if rel.ID == nodeID {
				return wire.NodeRelation, map[string]any{
					"groupName":    rel.GroupName,
					"edgeName":     rel.EdgeName,
					"mentionCount": 10 + e.rand.Intn(200),
				}
			}
			for _, a := range rel.Analyses {
				if a.ID == nodeID {
					return wire.NodeExpression, expressionDetail(a)
				}
			}
		}
		for _, a := range sub.Analyses {
			if a.ID == nodeID {
				return wire.NodeExpression, expressionDetail(a)
			}
		}
	}
	return wire.NodeSubject, map[string]any{"groupName": nodeID}
}

func expressionDetail(a wire.AnalysisExpression) map[string]any {
	return map[string]any{
		"groupName": a.GroupName,
		"textType":  a.TextType,
		"methods":   append([]string(nil), a.AnalysisMethods...),
	}
}

func validateStart(req *wire.StartAnalysisRequest) error {
	switch {
	case req.ID == "":
		return &engine.Error{Code: engine.CodeInvalidRequest, Message: "missing analysis id"}
	case len(req.Subjects) == 0:
		return &engine.Error{Code: engine.CodeInvalidRequest, Message: "at least one subject is required"}
	case len(req.Data) == 0:
		return &engine.Error{Code: engine.CodeInvalidRequest, Message: "at least one data domain is required"}
	}
	return nil
}

func overall(progress []wire.AnalysisProgress) int {
	if len(progress) == 0 {
		return 0
	}
	sum := 0
	for _, p := range progress {
		sum += p.Progress
	}
	return sum / len(progress)
}
