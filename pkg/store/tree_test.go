package store

import (
	"errors"
	"testing"
	"time"

	"github.com/profilenet/backend/pkg/common"
)

func TestSubjectCRUD(t *testing.T) {
	s := newTestStore(t)
	projectID := mustCreate(t, s, "u1", "p")

	subjectID, err := s.AddSubject(projectID)
	if err != nil {
		t.Fatalf("AddSubject: %v", err)
	}

	name := "국내 맥주"
	guide := "{@current}를 먹거나 마신다고 언급되었는지 여부"
	if err := s.UpdateSubject(projectID, subjectID, SubjectPatch{GroupName: &name, FilterGuide: &guide}); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}

	p, _ := s.GetProject(projectID)
	if len(p.Subjects) != 1 {
		t.Fatalf("got %d subjects, want 1", len(p.Subjects))
	}
	if p.Subjects[0].GroupName != name || p.Subjects[0].FilterGuide != guide {
		t.Fatalf("subject fields not applied: %+v", p.Subjects[0])
	}

	if err := s.DeleteSubject(projectID, subjectID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	p, _ = s.GetProject(projectID)
	if len(p.Subjects) != 0 {
		t.Fatalf("subject not removed")
	}
}

func TestRelationCRUD(t *testing.T) {
	s := newTestStore(t)
	projectID := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(projectID)

	relationID, err := s.AddRelation(projectID, subjectID)
	if err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	edge := "먹을 때의 기분/상황"
	if err := s.UpdateRelation(projectID, subjectID, relationID, RelationPatch{EdgeName: &edge}); err != nil {
		t.Fatalf("UpdateRelation: %v", err)
	}

	p, _ := s.GetProject(projectID)
	if p.Subjects[0].Relations[0].EdgeName != edge {
		t.Fatalf("relation edge not applied")
	}

	if err := s.DeleteRelation(projectID, subjectID, relationID); err != nil {
		t.Fatalf("DeleteRelation: %v", err)
	}
	p, _ = s.GetProject(projectID)
	if len(p.Subjects[0].Relations) != 0 {
		t.Fatalf("relation not removed")
	}
}

func TestAnalysisCRUD(t *testing.T) {
	s := newTestStore(t)
	projectID := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(projectID)
	relationID, _ := s.AddRelation(projectID, subjectID)

	subjectAnalysisID, err := s.AddSubjectAnalysis(projectID, subjectID)
	if err != nil {
		t.Fatalf("AddSubjectAnalysis: %v", err)
	}
	relationAnalysisID, err := s.AddRelationAnalysis(projectID, subjectID, relationID)
	if err != nil {
		t.Fatalf("AddRelationAnalysis: %v", err)
	}

	p, _ := s.GetProject(projectID)
	added := p.Subjects[0].Analyses[0]
	if added.TextType != common.TextTypeNarrative || added.PoolSize != 0 || len(added.AnalysisMethods) != 3 {
		t.Fatalf("subject analysis defaults wrong: %+v", added)
	}

	poolSize := 50
	methods := []string{common.MethodNeutral}
	if err := s.UpdateRelationAnalysis(projectID, subjectID, relationID, relationAnalysisID, AnalysisPatch{
		PoolSize:        &poolSize,
		AnalysisMethods: &methods,
	}); err != nil {
		t.Fatalf("UpdateRelationAnalysis: %v", err)
	}

	p, _ = s.GetProject(projectID)
	got := p.Subjects[0].Relations[0].Analyses[0]
	if got.PoolSize != 50 || len(got.AnalysisMethods) != 1 || got.AnalysisMethods[0] != common.MethodNeutral {
		t.Fatalf("relation analysis patch not applied: %+v", got)
	}

	if err := s.DeleteSubjectAnalysis(projectID, subjectID, subjectAnalysisID); err != nil {
		t.Fatalf("DeleteSubjectAnalysis: %v", err)
	}
	if err := s.DeleteRelationAnalysis(projectID, subjectID, relationID, relationAnalysisID); err != nil {
		t.Fatalf("DeleteRelationAnalysis: %v", err)
	}
}

func TestKeywordCRUD(t *testing.T) {
	s := newTestStore(t)
	projectID := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(projectID)
	relationID, _ := s.AddRelation(projectID, subjectID)

	tests := []struct {
		name       string
		relationID string
	}{
		{"SubjectLevel", ""},
		{"RelationLevel", relationID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keywordID, err := s.AddKeyword(projectID, subjectID, tc.relationID)
			if err != nil {
				t.Fatalf("AddKeyword: %v", err)
			}

			kwName := "OB맥주"
			query := "OB&&(맥주||캔||비어||beer)"
			if err := s.UpdateKeyword(projectID, subjectID, tc.relationID, keywordID, KeywordPatch{
				Name:  &kwName,
				Query: &query,
			}); err != nil {
				t.Fatalf("UpdateKeyword: %v", err)
			}

			p, _ := s.GetProject(projectID)
			var keywords []common.Keyword
			if tc.relationID == "" {
				keywords = p.Subjects[0].Keywords
			} else {
				keywords = p.Subjects[0].Relations[0].Keywords
			}
			if len(keywords) != 1 || keywords[0].Name != kwName || keywords[0].Query != query {
				t.Fatalf("keyword not applied: %+v", keywords)
			}

			if err := s.DeleteKeyword(projectID, subjectID, tc.relationID, keywordID); err != nil {
				t.Fatalf("DeleteKeyword: %v", err)
			}
		})
	}
}

func TestTreeOpsTouchProjectUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	projectID := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(projectID)

	s.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := s.AddKeyword(projectID, subjectID, ""); err != nil {
		t.Fatalf("AddKeyword: %v", err)
	}

	p, _ := s.GetProject(projectID)
	if p.UpdatedAt != base.Add(time.Minute).Format(time.RFC3339) {
		t.Fatalf("keyword add did not touch project UpdatedAt: %q", p.UpdatedAt)
	}
}

func TestBrokenOwnershipChain(t *testing.T) {
	s := newTestStore(t)
	projectID := mustCreate(t, s, "u1", "p")
	subjectID, _ := s.AddSubject(projectID)

	tests := []struct {
		name string
		err  error
	}{
		{"SubjectInWrongProject", func() error {
			_, err := s.AddRelation("missing-project", subjectID)
			return err
		}()},
		{"MissingSubject", func() error {
			_, err := s.AddRelation(projectID, "missing-subject")
			return err
		}()},
		{"MissingRelation", func() error {
			_, err := s.AddRelationAnalysis(projectID, subjectID, "missing-relation")
			return err
		}()},
		{"MissingKeyword", s.DeleteKeyword(projectID, subjectID, "", "missing-keyword")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, ErrNotFound) {
				t.Fatalf("got %v, want ErrNotFound", tc.err)
			}
		})
	}
}
