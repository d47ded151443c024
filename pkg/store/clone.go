package store

import "github.com/profilenet/backend/pkg/common"

// Deep copies. Mutations operate on a copy of the owning project and swap
// it in whole, and reads hand out copies, so no caller ever shares slice
// backing arrays with the store.

func cloneProject(p common.AnalysisProject) common.AnalysisProject {
	out := p
	out.Data = cloneDomains(p.Data)
	out.Subjects = make([]common.Subject, len(p.Subjects))
	for i, sub := range p.Subjects {
		out.Subjects[i] = cloneSubject(sub)
	}
	return out
}

func cloneSubject(sub common.Subject) common.Subject {
	out := sub
	out.Keywords = cloneKeywords(sub.Keywords)
	out.Relations = make([]common.Relation, len(sub.Relations))
	for i, rel := range sub.Relations {
		out.Relations[i] = cloneRelation(rel)
	}
	out.Analyses = cloneAnalyses(sub.Analyses)
	return out
}

func cloneRelation(rel common.Relation) common.Relation {
	out := rel
	out.Keywords = cloneKeywords(rel.Keywords)
	out.Analyses = cloneAnalyses(rel.Analyses)
	return out
}

func cloneAnalyses(analyses []common.AnalysisExpression) []common.AnalysisExpression {
	out := make([]common.AnalysisExpression, len(analyses))
	for i, a := range analyses {
		methods := make([]string, len(a.AnalysisMethods))
		copy(methods, a.AnalysisMethods)
		out[i] = a
		out[i].AnalysisMethods = methods
	}
	return out
}

func cloneKeywords(keywords []common.Keyword) []common.Keyword {
	out := make([]common.Keyword, len(keywords))
	copy(out, keywords)
	return out
}

func cloneDomains(domains []common.DataDomain) []common.DataDomain {
	out := make([]common.DataDomain, len(domains))
	copy(out, domains)
	return out
}
