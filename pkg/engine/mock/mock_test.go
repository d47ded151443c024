package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/wire"
)

func startRequest() *wire.StartAnalysisRequest {
	return &wire.StartAnalysisRequest{
		ID:        "proj-1",
		Name:      "brand watch",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Data: []wire.DataDomain{
			{Domain: "ko.naver_blog", Type: "text"},
		},
		Subjects: []wire.Subject{
			{
				ID:        "subj-1",
				GroupName: "customers",
				Keywords: []wire.Keyword{
					{ID: "kw-1", Name: "brand", Query: "brand"},
				},
			},
		},
	}
}

func TestStartRejectsIncompleteRequests(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*wire.StartAnalysisRequest)
	}{
		{"missing id", func(r *wire.StartAnalysisRequest) { r.ID = "" }},
		{"no subjects", func(r *wire.StartAnalysisRequest) { r.Subjects = nil }},
		{"no data domains", func(r *wire.StartAnalysisRequest) { r.Data = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := startRequest()
			tc.mutate(req)

			_, err := NewEngine().Start(context.Background(), req)
			var engErr *engine.Error
			if !errors.As(err, &engErr) {
				t.Fatalf("expected engine error, got %v", err)
			}
			if engErr.Code != engine.CodeInvalidRequest {
				t.Fatalf("expected %s, got %s", engine.CodeInvalidRequest, engErr.Code)
			}
		})
	}
}

func TestMonitoringProgressIsMonotonic(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	if _, err := eng.Start(ctx, startRequest()); err != nil {
		t.Fatalf("start: %v", err)
	}

	prev := -1
	for range 30 {
		resp, err := eng.Monitoring(ctx, "proj-1")
		if err != nil {
			t.Fatalf("monitoring: %v", err)
		}
		if resp.OverallProgress < prev {
			t.Fatalf("progress went backwards: %d -> %d", prev, resp.OverallProgress)
		}
		if resp.OverallProgress > 100 {
			t.Fatalf("progress above 100: %d", resp.OverallProgress)
		}
		prev = resp.OverallProgress
		if resp.Status == wire.RunCompleted {
			if resp.OverallProgress != 100 {
				t.Fatalf("completed at %d%%", resp.OverallProgress)
			}
			return
		}
	}
	t.Fatal("analysis never completed within 30 polls")
}

func TestStopMarksRunStopped(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	if _, err := eng.Start(ctx, startRequest()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := eng.Stop(ctx, &wire.StopAnalysisRequest{ID: "proj-1"}); err != nil {
		t.Fatalf("stop: %v", err)
	}

	resp, err := eng.Monitoring(ctx, "proj-1")
	if err != nil {
		t.Fatalf("monitoring: %v", err)
	}
	if resp.Status != wire.RunStopped {
		t.Fatalf("expected stopped, got %s", resp.Status)
	}

	before := resp.OverallProgress
	resp, err = eng.Monitoring(ctx, "proj-1")
	if err != nil {
		t.Fatalf("monitoring: %v", err)
	}
	if resp.OverallProgress != before {
		t.Fatal("stopped run kept advancing")
	}
}

func TestStopUnknownAnalysis(t *testing.T) {
	_, err := NewEngine().Stop(context.Background(), &wire.StopAnalysisRequest{ID: "nope"})
	var engErr *engine.Error
	if !errors.As(err, &engErr) || engErr.Code != engine.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestResultsOnlyAfterCompletion(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	if _, err := eng.Start(ctx, startRequest()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := eng.Results(ctx, "proj-1"); err == nil {
		t.Fatal("expected error before completion")
	}

	for range 30 {
		resp, err := eng.Monitoring(ctx, "proj-1")
		if err != nil {
			t.Fatalf("monitoring: %v", err)
		}
		if resp.Status == wire.RunCompleted {
			break
		}
	}

	resp, err := eng.Results(ctx, "proj-1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if resp.ResultsURL == "" {
		t.Fatal("expected a results URL")
	}
}

func TestNodeDetailResolvesTreeNodes(t *testing.T) {
	eng := NewEngine()
	ctx := context.Background()

	req := startRequest()
	req.Subjects[0].Analyses = []wire.AnalysisExpression{
		{ID: "ana-1", GroupName: "tone", TextType: "서술형", AnalysisMethods: []string{"긍정"}},
	}
	if _, err := eng.Start(ctx, req); err != nil {
		t.Fatalf("start: %v", err)
	}

	resp, err := eng.NodeDetail(ctx, &wire.NodeDetailRequest{ProjectID: "proj-1", NodeID: "subj-1"})
	if err != nil {
		t.Fatalf("node detail: %v", err)
	}
	if resp.NodeType != wire.NodeSubject {
		t.Fatalf("expected subject node, got %s", resp.NodeType)
	}

	resp, err = eng.NodeDetail(ctx, &wire.NodeDetailRequest{ProjectID: "proj-1", NodeID: "ana-1"})
	if err != nil {
		t.Fatalf("node detail: %v", err)
	}
	if resp.NodeType != wire.NodeExpression {
		t.Fatalf("expected expression node, got %s", resp.NodeType)
	}
	if resp.Data["groupName"] != "tone" {
		t.Fatalf("unexpected payload: %v", resp.Data)
	}
}
