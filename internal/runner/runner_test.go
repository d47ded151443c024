package runner

import (
	"context"
	"testing"
	"time"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/engine/mock"
	"github.com/profilenet/backend/pkg/store"
	"github.com/profilenet/backend/pkg/store/kv"
	"github.com/profilenet/backend/pkg/wire"
)

func analyzingProject(t *testing.T, st *store.Store, eng *mock.Engine) string {
	t.Helper()

	id, err := st.CreateProject("user-1", "brand watch")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	scope := []common.DataDomain{{Domain: common.DomainBlog, Type: common.TypeText}}

	_, err = eng.Start(context.Background(), &wire.StartAnalysisRequest{
		ID:   id,
		Name: "brand watch",
		Data: []wire.DataDomain{{Domain: "ko.naver_blog", Type: common.TypeText}},
		Subjects: []wire.Subject{
			{
				ID:        "subj-1",
				GroupName: "customers",
				Keywords:  []wire.Keyword{{ID: "kw-1", Name: "brand", Query: "brand"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("start on engine: %v", err)
	}

	if err := st.StartAnalysis(id, scope, "2026-08-01", "2026-08-31", false); err != nil {
		t.Fatalf("start on store: %v", err)
	}
	return id
}

func TestPollFoldsProgressIntoLogs(t *testing.T) {
	st := store.New(kv.NewMemory())
	eng := mock.NewEngine()
	r := New(st, eng, nil, time.Second)

	id := analyzingProject(t, st, eng)

	r.poll(context.Background())

	logs := st.ProjectLogs(id)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].Progress <= 0 {
		t.Fatalf("expected progress to advance, got %d", logs[0].Progress)
	}
}

func TestPollCompletesProject(t *testing.T) {
	st := store.New(kv.NewMemory())
	eng := mock.NewEngine()
	r := New(st, eng, nil, time.Second)

	id := analyzingProject(t, st, eng)

	for range 30 {
		r.poll(context.Background())
		p, err := st.GetProject(id)
		if err != nil {
			t.Fatalf("get project: %v", err)
		}
		if p.Status == common.StatusAvailable {
			logs := st.ProjectLogs(id)
			if logs[0].Status != common.LogCompleted {
				t.Fatalf("expected completed log, got %s", logs[0].Status)
			}
			if logs[0].Progress != 100 {
				t.Fatalf("expected 100%% on completion, got %d", logs[0].Progress)
			}
			if logs[0].CompletedAt == nil {
				t.Fatal("expected completion timestamp")
			}
			return
		}
	}
	t.Fatal("project never completed within 30 polls")
}

func TestPollSkipsIdleProjects(t *testing.T) {
	st := store.New(kv.NewMemory())
	eng := mock.NewEngine()
	r := New(st, eng, nil, time.Second)

	id, err := st.CreateProject("user-1", "idle")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	r.poll(context.Background())

	p, err := st.GetProject(id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if p.Status != common.StatusUnavailable {
		t.Fatalf("idle project status changed to %s", p.Status)
	}
	if logs := st.ProjectLogs(id); len(logs) != 0 {
		t.Fatalf("idle project gained %d logs", len(logs))
	}
}

func TestFoldAppliesTerminalStatusOverStaleProgress(t *testing.T) {
	st := store.New(kv.NewMemory())
	r := New(st, mock.NewEngine(), nil, time.Second)

	id, err := st.CreateProject("user-1", "brand watch")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	scope := []common.DataDomain{{Domain: common.DomainBlog, Type: common.TypeText}}
	if err := st.StartAnalysis(id, scope, "2026-08-01", "2026-08-31", false); err != nil {
		t.Fatalf("start analysis: %v", err)
	}

	logs := st.ProjectLogs(id)
	if err := st.UpdateLogProgress(logs[0].ID, 50, ""); err != nil {
		t.Fatalf("seed log progress: %v", err)
	}

	p, err := st.GetProject(id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}

	// The engine reports completion while its per-slice figures lag
	// behind the stored log. The log must still close out at 100.
	r.fold(p, &wire.MonitoringResponse{
		Status:          wire.RunCompleted,
		OverallProgress: 30,
		Analyses: []wire.AnalysisProgress{
			{Domain: "ko.naver_blog", Type: common.TypeText, Progress: 30},
		},
	})

	logs = st.ProjectLogs(id)
	if logs[0].Status != common.LogCompleted {
		t.Fatalf("expected completed log, got %s", logs[0].Status)
	}
	if logs[0].Progress != 100 {
		t.Fatalf("expected progress 100, got %d", logs[0].Progress)
	}
	if logs[0].CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}
	p, err = st.GetProject(id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if p.Status != common.StatusAvailable {
		t.Fatalf("expected available project, got %s", p.Status)
	}
}

func TestFoldMarksLogFailedWithoutRegressing(t *testing.T) {
	st := store.New(kv.NewMemory())
	r := New(st, mock.NewEngine(), nil, time.Second)

	id, err := st.CreateProject("user-1", "brand watch")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	scope := []common.DataDomain{{Domain: common.DomainBlog, Type: common.TypeText}}
	if err := st.StartAnalysis(id, scope, "2026-08-01", "2026-08-31", false); err != nil {
		t.Fatalf("start analysis: %v", err)
	}

	logs := st.ProjectLogs(id)
	if err := st.UpdateLogProgress(logs[0].ID, 50, ""); err != nil {
		t.Fatalf("seed log progress: %v", err)
	}

	p, err := st.GetProject(id)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}

	r.fold(p, &wire.MonitoringResponse{
		Status:          wire.RunFailed,
		OverallProgress: 30,
		Analyses: []wire.AnalysisProgress{
			{Domain: "ko.naver_blog", Type: common.TypeText, Progress: 30},
		},
	})

	logs = st.ProjectLogs(id)
	if logs[0].Status != common.LogFailed {
		t.Fatalf("expected failed log, got %s", logs[0].Status)
	}
	if logs[0].Progress != 50 {
		t.Fatalf("expected progress held at 50, got %d", logs[0].Progress)
	}
}

func TestProgressForLogFallsBackToOverall(t *testing.T) {
	resp := &wire.MonitoringResponse{
		OverallProgress: 40,
		Analyses: []wire.AnalysisProgress{
			{Domain: "ko.naver_blog", Type: common.TypeText, Progress: 60},
			{Domain: "instagram", Type: common.TypeImage, Progress: 20},
		},
	}

	blogLog := common.AnalysisLog{
		Domain:       common.DomainLabels[common.DomainBlog],
		AnalysisType: common.TypeLabels[common.TypeText],
	}
	if got := progressForLog(resp, blogLog); got != 60 {
		t.Fatalf("expected matched slice progress 60, got %d", got)
	}

	newsLog := common.AnalysisLog{
		Domain:       common.DomainLabels[common.DomainNews],
		AnalysisType: common.TypeLabels[common.TypeText],
	}
	if got := progressForLog(resp, newsLog); got != 40 {
		t.Fatalf("expected overall fallback 40, got %d", got)
	}

	unknownLog := common.AnalysisLog{Domain: "??", AnalysisType: "??"}
	if got := progressForLog(resp, unknownLog); got != 40 {
		t.Fatalf("expected overall fallback 40, got %d", got)
	}
}
