package wire

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/profilenet/backend/pkg/common"
	"github.com/profilenet/backend/pkg/contentid"
)

// FromProject converts an editor project into the engine's start request.
// Every structural id is replaced by its content hash, so resubmitting an
// unchanged configuration produces identical nested ids, and every
// controlled-vocabulary field is relabelled. Subjects are converted
// concurrently; the hashes are pure and independent, so sibling order
// never matters. The input project is not mutated.
func FromProject(ctx context.Context, gen *contentid.Generator, project common.AnalysisProject) (*StartAnalysisRequest, error) {
	subjects := make([]Subject, len(project.Subjects))

	g, ctx := errgroup.WithContext(ctx)
	for i, sub := range project.Subjects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			subjects[i] = convertSubject(gen, sub)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make([]DataDomain, len(project.Data))
	for i, d := range project.Data {
		data[i] = DataDomain{
			Domain: domainCode(d.Domain),
			Type:   d.Type,
		}
	}

	return &StartAnalysisRequest{
		ID:        project.ID,
		Name:      project.Name,
		Data:      data,
		StartDate: project.StartDate,
		EndDate:   project.EndDate,
		Subjects:  subjects,
	}, nil
}

// GraphFromProject renders the project tree as the network graph the
// results view draws. Node ids are the same content hashes the start
// request carries, so any graph node can be drilled into via the
// engine's node-detail call.
func GraphFromProject(gen *contentid.Generator, project common.AnalysisProject) NetworkGraph {
	graph := NetworkGraph{Nodes: []NetworkNode{}, Edges: []NetworkEdge{}}

	addExpressions := func(parentID string, analyses []common.AnalysisExpression) {
		for _, a := range analyses {
			id := gen.AnalysisID(a.GroupName, a.TextType, a.AnalysisMethods, a.PoolSize, a.AnalysisGuide)
			graph.Nodes = append(graph.Nodes, NetworkNode{
				ID:        id,
				Type:      NodeExpression,
				GroupName: a.GroupName,
				Label:     a.GroupName,
			})
			graph.Edges = append(graph.Edges, NetworkEdge{
				ID:     parentID + "-" + id,
				Source: parentID,
				Target: id,
				Label:  a.EdgeName,
			})
		}
	}

	for _, sub := range project.Subjects {
		subID := gen.SubjectID(sub.GroupName, sub.Keywords, sub.FilterGuide)
		graph.Nodes = append(graph.Nodes, NetworkNode{
			ID:        subID,
			Type:      NodeSubject,
			GroupName: sub.GroupName,
			Label:     sub.GroupName,
		})
		addExpressions(subID, sub.Analyses)

		for _, rel := range sub.Relations {
			relID := gen.RelationID(rel.GroupName, rel.EdgeName, rel.Keywords, rel.RelationGuide)
			graph.Nodes = append(graph.Nodes, NetworkNode{
				ID:        relID,
				Type:      NodeRelation,
				GroupName: rel.GroupName,
				Label:     rel.GroupName,
			})
			graph.Edges = append(graph.Edges, NetworkEdge{
				ID:     subID + "-" + relID,
				Source: subID,
				Target: relID,
				Label:  rel.EdgeName,
			})
			addExpressions(relID, rel.Analyses)
		}
	}
	return graph
}

func convertSubject(gen *contentid.Generator, sub common.Subject) Subject {
	relations := make([]Relation, len(sub.Relations))
	for i, rel := range sub.Relations {
		relations[i] = convertRelation(gen, rel)
	}

	return Subject{
		ID:          gen.SubjectID(sub.GroupName, sub.Keywords, sub.FilterGuide),
		GroupName:   sub.GroupName,
		Keywords:    convertKeywords(gen, sub.Keywords),
		FilterGuide: sub.FilterGuide,
		Relations:   relations,
		Analyses:    convertAnalyses(gen, sub.Analyses),
	}
}

func convertRelation(gen *contentid.Generator, rel common.Relation) Relation {
	return Relation{
		ID:            gen.RelationID(rel.GroupName, rel.EdgeName, rel.Keywords, rel.RelationGuide),
		GroupName:     rel.GroupName,
		EdgeName:      rel.EdgeName,
		Keywords:      convertKeywords(gen, rel.Keywords),
		RelationGuide: rel.RelationGuide,
		Analyses:      convertAnalyses(gen, rel.Analyses),
	}
}

func convertKeywords(gen *contentid.Generator, keywords []common.Keyword) []Keyword {
	out := make([]Keyword, len(keywords))
	for i, kw := range keywords {
		out[i] = Keyword{
			ID:    gen.KeywordID(kw.Name, kw.Query, kw.Info),
			Name:  kw.Name,
			Query: kw.Query,
			Info:  kw.Info,
		}
	}
	return out
}

func convertAnalyses(gen *contentid.Generator, analyses []common.AnalysisExpression) []AnalysisExpression {
	out := make([]AnalysisExpression, len(analyses))
	for i, a := range analyses {
		methods := make([]string, len(a.AnalysisMethods))
		for j, m := range a.AnalysisMethods {
			methods[j] = methodLabel(m)
		}
		out[i] = AnalysisExpression{
			ID:              gen.AnalysisID(a.GroupName, a.TextType, a.AnalysisMethods, a.PoolSize, a.AnalysisGuide),
			GroupName:       a.GroupName,
			TextType:        textTypeLabel(a.TextType),
			PoolSize:        a.PoolSize,
			AnalysisMethods: methods,
			AnalysisGuide:   a.AnalysisGuide,
		}
	}
	return out
}
