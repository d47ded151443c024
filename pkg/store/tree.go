package store

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/profilenet/backend/pkg/common"
)

// Subject/Relation/Expression/Keyword CRUD. Every operation resolves its
// target by structural id through the owning chain and goes through
// mutateProject, so each one is a whole-subtree replacement that bumps the
// owning project's UpdatedAt.

func newStructuralID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate structural id: %w", err)
	}
	return id, nil
}

// AddSubject appends an empty subject to the project and returns its
// structural id.
func (s *Store) AddSubject(projectID string) (string, error) {
	id, err := newStructuralID()
	if err != nil {
		return "", err
	}
	err = s.mutateProject(projectID, func(p *common.AnalysisProject) error {
		p.Subjects = append(p.Subjects, common.Subject{
			ID:        id,
			Keywords:  []common.Keyword{},
			Relations: []common.Relation{},
			Analyses:  []common.AnalysisExpression{},
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateSubject(projectID, subjectID string, patch SubjectPatch) error {
	return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		if patch.GroupName != nil {
			sub.GroupName = *patch.GroupName
		}
		if patch.FilterGuide != nil {
			sub.FilterGuide = *patch.FilterGuide
		}
		return nil
	})
}

func (s *Store) DeleteSubject(projectID, subjectID string) error {
	return s.mutateProject(projectID, func(p *common.AnalysisProject) error {
		for i := range p.Subjects {
			if p.Subjects[i].ID == subjectID {
				p.Subjects = append(p.Subjects[:i], p.Subjects[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddRelation appends an empty relation to the subject and returns its
// structural id.
func (s *Store) AddRelation(projectID, subjectID string) (string, error) {
	id, err := newStructuralID()
	if err != nil {
		return "", err
	}
	err = s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		sub.Relations = append(sub.Relations, common.Relation{
			ID:       id,
			Keywords: []common.Keyword{},
			Analyses: []common.AnalysisExpression{},
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateRelation(projectID, subjectID, relationID string, patch RelationPatch) error {
	return s.mutateRelation(projectID, subjectID, relationID, func(rel *common.Relation) error {
		if patch.GroupName != nil {
			rel.GroupName = *patch.GroupName
		}
		if patch.EdgeName != nil {
			rel.EdgeName = *patch.EdgeName
		}
		if patch.RelationGuide != nil {
			rel.RelationGuide = *patch.RelationGuide
		}
		return nil
	})
}

func (s *Store) DeleteRelation(projectID, subjectID, relationID string) error {
	return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		for i := range sub.Relations {
			if sub.Relations[i].ID == relationID {
				sub.Relations = append(sub.Relations[:i], sub.Relations[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// defaultAnalysis is the expression configuration a freshly added node
// starts from.
func defaultAnalysis(id string) common.AnalysisExpression {
	return common.AnalysisExpression{
		ID:              id,
		TextType:        common.TextTypeNarrative,
		PoolSize:        0,
		AnalysisMethods: []string{common.MethodPositive, common.MethodNegative, common.MethodComprehensive},
	}
}

// AddSubjectAnalysis attaches an expression directly to the subject.
func (s *Store) AddSubjectAnalysis(projectID, subjectID string) (string, error) {
	id, err := newStructuralID()
	if err != nil {
		return "", err
	}
	err = s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		sub.Analyses = append(sub.Analyses, defaultAnalysis(id))
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateSubjectAnalysis(projectID, subjectID, analysisID string, patch AnalysisPatch) error {
	return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		return patchAnalysis(sub.Analyses, analysisID, patch)
	})
}

func (s *Store) DeleteSubjectAnalysis(projectID, subjectID, analysisID string) error {
	return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		next, err := removeAnalysis(sub.Analyses, analysisID)
		if err != nil {
			return err
		}
		sub.Analyses = next
		return nil
	})
}

// AddRelationAnalysis attaches an expression beneath a relation.
func (s *Store) AddRelationAnalysis(projectID, subjectID, relationID string) (string, error) {
	id, err := newStructuralID()
	if err != nil {
		return "", err
	}
	err = s.mutateRelation(projectID, subjectID, relationID, func(rel *common.Relation) error {
		rel.Analyses = append(rel.Analyses, defaultAnalysis(id))
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateRelationAnalysis(projectID, subjectID, relationID, analysisID string, patch AnalysisPatch) error {
	return s.mutateRelation(projectID, subjectID, relationID, func(rel *common.Relation) error {
		return patchAnalysis(rel.Analyses, analysisID, patch)
	})
}

func (s *Store) DeleteRelationAnalysis(projectID, subjectID, relationID, analysisID string) error {
	return s.mutateRelation(projectID, subjectID, relationID, func(rel *common.Relation) error {
		next, err := removeAnalysis(rel.Analyses, analysisID)
		if err != nil {
			return err
		}
		rel.Analyses = next
		return nil
	})
}

// AddKeyword appends an empty keyword to the subject, or to one of its
// relations when relationID is non-empty.
func (s *Store) AddKeyword(projectID, subjectID, relationID string) (string, error) {
	id, err := newStructuralID()
	if err != nil {
		return "", err
	}
	err = s.mutateKeywordOwner(projectID, subjectID, relationID, func(keywords *[]common.Keyword) error {
		*keywords = append(*keywords, common.Keyword{ID: id})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateKeyword(projectID, subjectID, relationID, keywordID string, patch KeywordPatch) error {
	return s.mutateKeywordOwner(projectID, subjectID, relationID, func(keywords *[]common.Keyword) error {
		for i := range *keywords {
			if (*keywords)[i].ID != keywordID {
				continue
			}
			if patch.Name != nil {
				(*keywords)[i].Name = *patch.Name
			}
			if patch.Query != nil {
				(*keywords)[i].Query = *patch.Query
			}
			if patch.Info != nil {
				(*keywords)[i].Info = *patch.Info
			}
			return nil
		}
		return ErrNotFound
	})
}

func (s *Store) DeleteKeyword(projectID, subjectID, relationID, keywordID string) error {
	return s.mutateKeywordOwner(projectID, subjectID, relationID, func(keywords *[]common.Keyword) error {
		for i := range *keywords {
			if (*keywords)[i].ID == keywordID {
				*keywords = append((*keywords)[:i], (*keywords)[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *Store) mutateSubject(projectID, subjectID string, fn func(sub *common.Subject) error) error {
	return s.mutateProject(projectID, func(p *common.AnalysisProject) error {
		for i := range p.Subjects {
			if p.Subjects[i].ID == subjectID {
				return fn(&p.Subjects[i])
			}
		}
		return ErrNotFound
	})
}

func (s *Store) mutateRelation(projectID, subjectID, relationID string, fn func(rel *common.Relation) error) error {
	return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
		for i := range sub.Relations {
			if sub.Relations[i].ID == relationID {
				return fn(&sub.Relations[i])
			}
		}
		return ErrNotFound
	})
}

func (s *Store) mutateKeywordOwner(projectID, subjectID, relationID string, fn func(keywords *[]common.Keyword) error) error {
	if relationID == "" {
		return s.mutateSubject(projectID, subjectID, func(sub *common.Subject) error {
			return fn(&sub.Keywords)
		})
	}
	return s.mutateRelation(projectID, subjectID, relationID, func(rel *common.Relation) error {
		return fn(&rel.Keywords)
	})
}

func patchAnalysis(analyses []common.AnalysisExpression, analysisID string, patch AnalysisPatch) error {
	for i := range analyses {
		if analyses[i].ID != analysisID {
			continue
		}
		if patch.GroupName != nil {
			analyses[i].GroupName = *patch.GroupName
		}
		if patch.EdgeName != nil {
			analyses[i].EdgeName = *patch.EdgeName
		}
		if patch.TextType != nil {
			analyses[i].TextType = *patch.TextType
		}
		if patch.PoolSize != nil {
			analyses[i].PoolSize = *patch.PoolSize
		}
		if patch.AnalysisMethods != nil {
			methods := make([]string, len(*patch.AnalysisMethods))
			copy(methods, *patch.AnalysisMethods)
			analyses[i].AnalysisMethods = methods
		}
		if patch.AnalysisGuide != nil {
			analyses[i].AnalysisGuide = *patch.AnalysisGuide
		}
		return nil
	}
	return ErrNotFound
}

func removeAnalysis(analyses []common.AnalysisExpression, analysisID string) ([]common.AnalysisExpression, error) {
	for i := range analyses {
		if analyses[i].ID == analysisID {
			return append(analyses[:i], analyses[i+1:]...), nil
		}
	}
	return nil, ErrNotFound
}
