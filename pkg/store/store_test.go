package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/store/kv"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(kv.NewMemory())
}

func mustCreate(t *testing.T, s *Store, userID, name string) string {
	t.Helper()
	id, err := s.CreateProject(userID, name)
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return id
}

func TestCreateProject(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "user_test_001", "맥주 브랜드 분석")

	if !strings.HasPrefix(id, "user_test_001_") {
		t.Fatalf("project id %q not scoped to user", id)
	}

	p, err := s.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.Status != common.StatusUnavailable {
		t.Fatalf("new project status = %q, want %q", p.Status, common.StatusUnavailable)
	}
	if len(p.Subjects) != 0 {
		t.Fatalf("new project has %d subjects, want 0", len(p.Subjects))
	}
	if p.CreatedAt == "" || p.CreatedAt != p.UpdatedAt {
		t.Fatalf("timestamps not initialized: created=%q updated=%q", p.CreatedAt, p.UpdatedAt)
	}
}

func TestRenamePreservesID(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "u1", "Foo")

	name := "Bar"
	if err := s.UpdateProject(id, ProjectPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	p, err := s.GetProject(id)
	if err != nil {
		t.Fatalf("GetProject after rename: %v", err)
	}
	if p.Name != "Bar" {
		t.Fatalf("name = %q, want Bar", p.Name)
	}
	if p.ID != id {
		t.Fatalf("rename changed project id: %q -> %q", id, p.ID)
	}
}

func TestUpdateProjectBumpsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	id := mustCreate(t, s, "u1", "p")

	s.now = func() time.Time { return base.Add(time.Hour) }
	name := "renamed"
	if err := s.UpdateProject(id, ProjectPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	p, _ := s.GetProject(id)
	if p.UpdatedAt != base.Add(time.Hour).Format(time.RFC3339) {
		t.Fatalf("UpdatedAt = %q, want bump to +1h", p.UpdatedAt)
	}
	if p.CreatedAt != base.Format(time.RFC3339) {
		t.Fatalf("CreatedAt changed: %q", p.CreatedAt)
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"
	if err := s.UpdateProject("missing", ProjectPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateProject on missing id = %v, want ErrNotFound", err)
	}
}

func TestDeleteProjectCascadesLogs(t *testing.T) {
	s := newTestStore(t)
	keep := mustCreate(t, s, "u1", "keep")
	drop := mustCreate(t, s, "u1", "drop")

	s.AddLog(common.AnalysisLog{ProjectID: keep, Status: common.LogCompleted})
	s.AddLog(common.AnalysisLog{ProjectID: drop, Status: common.LogCompleted})
	s.AddLog(common.AnalysisLog{ProjectID: drop, Status: common.LogAnalyzing})

	if err := s.DeleteProject(drop); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	if _, err := s.GetProject(drop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted project still readable: %v", err)
	}
	logs := s.Logs()
	if len(logs) != 1 || logs[0].ProjectID != keep {
		t.Fatalf("cascade wrong, remaining logs: %+v", logs)
	}
}

func TestStartAnalysis(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "u1", "p")

	data := []common.DataDomain{{Domain: "blog", Type: "text"}}
	if err := s.StartAnalysis(id, data, "2025-01-01", "2025-01-31", false); err != nil {
		t.Fatalf("StartAnalysis: %v", err)
	}

	p, _ := s.GetProject(id)
	if p.Status != common.StatusAnalyzing {
		t.Fatalf("status = %q, want analyzing", p.Status)
	}
	if p.StartDate != "2025-01-01" || p.EndDate != "2025-01-31" {
		t.Fatalf("scope not stored: %q..%q", p.StartDate, p.EndDate)
	}

	logs := s.ProjectLogs(id)
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want exactly 1", len(logs))
	}
	l := logs[0]
	if l.Status != common.LogAnalyzing || l.Progress != 0 {
		t.Fatalf("log = %+v, want analyzing at 0", l)
	}
	if l.Period != "2025-01-01~2025-01-31" {
		t.Fatalf("period = %q", l.Period)
	}
	if l.Domain != "블로그" || l.AnalysisType != "텍스트" {
		t.Fatalf("labels = %q/%q, want 블로그/텍스트", l.Domain, l.AnalysisType)
	}
	if l.CompletedAt != nil {
		t.Fatalf("fresh log already has CompletedAt")
	}
}

func TestStartAnalysisOneLogPerDomain(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "u1", "p")

	data := []common.DataDomain{
		{Domain: "instagram", Type: "text"},
		{Domain: "instagram", Type: "image"},
		{Domain: "news", Type: "text"},
	}
	if err := s.StartAnalysis(id, data, "2025-12-01", "2025-12-31", true); err != nil {
		t.Fatalf("StartAnalysis: %v", err)
	}

	logs := s.ProjectLogs(id)
	if len(logs) != 3 {
		t.Fatalf("got %d logs, want 3", len(logs))
	}
	if logs[1].Domain != "인스타그램" || logs[1].AnalysisType != "이미지" {
		t.Fatalf("second log labels = %q/%q", logs[1].Domain, logs[1].AnalysisType)
	}
}

func TestStopAnalysis(t *testing.T) {
	s := newTestStore(t)
	stopped := mustCreate(t, s, "u1", "stopped")
	other := mustCreate(t, s, "u1", "other")

	s.StartAnalysis(stopped, []common.DataDomain{{Domain: "blog", Type: "text"}}, "a", "b", false)
	s.StartAnalysis(other, []common.DataDomain{{Domain: "news", Type: "text"}}, "a", "b", false)

	if err := s.StopAnalysis(stopped); err != nil {
		t.Fatalf("StopAnalysis: %v", err)
	}

	p, _ := s.GetProject(stopped)
	if p.Status != common.StatusAvailable {
		t.Fatalf("status after stop = %q, want available", p.Status)
	}
	for _, l := range s.ProjectLogs(stopped) {
		if l.Status != common.LogFailed {
			t.Fatalf("stopped project log status = %q, want failed", l.Status)
		}
	}
	for _, l := range s.ProjectLogs(other) {
		if l.Status != common.LogAnalyzing {
			t.Fatalf("other project's log touched: %q", l.Status)
		}
	}
}

func TestUpdateLogProgress(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "u1", "p")
	logID := s.AddLog(common.AnalysisLog{ProjectID: id, Status: common.LogAnalyzing})

	if err := s.UpdateLogProgress(logID, 40, ""); err != nil {
		t.Fatalf("UpdateLogProgress: %v", err)
	}
	l := s.ProjectLogs(id)[0]
	if l.Progress != 40 || l.Status != common.LogAnalyzing || l.CompletedAt != nil {
		t.Fatalf("mid-flight log = %+v", l)
	}

	if err := s.UpdateLogProgress(logID, 100, common.LogCompleted); err != nil {
		t.Fatalf("UpdateLogProgress to completed: %v", err)
	}
	l = s.ProjectLogs(id)[0]
	if l.Status != common.LogCompleted || l.CompletedAt == nil {
		t.Fatalf("completed log = %+v, want CompletedAt stamped", l)
	}

	if err := s.UpdateLogProgress("missing", 1, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing log = %v, want ErrNotFound", err)
	}
}

func TestGetProjectReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	id := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(id)
	name := "original"
	s.UpdateSubject(id, subjectID, SubjectPatch{GroupName: &name})

	p, _ := s.GetProject(id)
	p.Subjects[0].GroupName = "tampered"

	fresh, _ := s.GetProject(id)
	if fresh.Subjects[0].GroupName != "original" {
		t.Fatalf("caller mutation leaked into store: %q", fresh.Subjects[0].GroupName)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend := kv.NewMemory()
	s := New(backend)
	id := mustCreate(t, s, "u1", "persisted")
	subjectID, _ := s.AddSubject(id)
	name := "subject"
	s.UpdateSubject(id, subjectID, SubjectPatch{GroupName: &name})
	s.AddLog(common.AnalysisLog{ProjectID: id, Status: common.LogCompleted})

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := New(backend)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	p, err := restored.GetProject(id)
	if err != nil {
		t.Fatalf("project lost in round trip: %v", err)
	}
	if len(p.Subjects) != 1 || p.Subjects[0].GroupName != "subject" {
		t.Fatalf("subtree lost in round trip: %+v", p.Subjects)
	}
	if len(restored.Logs()) != 1 {
		t.Fatalf("logs lost in round trip")
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := New(kv.NewMemory())
	if err := s.Load(); err != nil {
		t.Fatalf("Load with no snapshot = %v, want nil", err)
	}
	if len(s.Projects()) != 0 {
		t.Fatalf("empty load produced projects")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	backend := kv.NewMemory()
	backend.Set(stateKey, []byte(`{"version":99,"projects":[],"logs":[]}`))

	s := New(backend)
	if err := s.Load(); err == nil {
		t.Fatalf("Load accepted snapshot version 99")
	}
}
