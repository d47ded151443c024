// Package validate holds the save-time business rules for an analysis
// configuration tree. The store itself accepts incomplete trees; these
// checks run when the editor saves, and a failure forces the project
// back to unavailable.
package validate

import (
	"fmt"
	"strings"

	"github.com/profilenet/backend/pkg/common"
)

// DefaultErrorLimit caps how many messages are surfaced at once.
const DefaultErrorLimit = 5

// Project walks the whole tree and collects every rule violation; it
// never stops at the first error. An empty result means the project is
// valid to save.
func Project(p common.AnalysisProject) []string {
	var errs []string

	if len(p.Subjects) == 0 {
		errs = append(errs, "at least one subject is required")
	}

	for _, sub := range p.Subjects {
		name := displayName(sub.GroupName)

		if strings.TrimSpace(sub.GroupName) == "" {
			errs = append(errs, "subject name is required")
		}
		if !hasCompleteKeyword(sub.Keywords) {
			errs = append(errs, fmt.Sprintf("subject %s: a keyword with both name and query is required", name))
		}
		if strings.TrimSpace(sub.FilterGuide) == "" {
			errs = append(errs, fmt.Sprintf("subject %s: a filter condition is required", name))
		}

		for _, rel := range sub.Relations {
			relName := displayName(rel.GroupName)

			if strings.TrimSpace(rel.GroupName) == "" {
				errs = append(errs, "relation name is required")
			}
			if strings.TrimSpace(rel.EdgeName) == "" {
				errs = append(errs, fmt.Sprintf("relation %s: an edge name is required", relName))
			}
			if !hasCompleteKeyword(rel.Keywords) {
				errs = append(errs, fmt.Sprintf("relation %s: a keyword with both name and query is required", relName))
			}
			if strings.TrimSpace(rel.RelationGuide) == "" {
				errs = append(errs, fmt.Sprintf("relation %s: a filter condition is required", relName))
			}

			errs = append(errs, analysisErrors(rel.Analyses)...)
		}

		errs = append(errs, analysisErrors(sub.Analyses)...)
	}

	return errs
}

func analysisErrors(analyses []common.AnalysisExpression) []string {
	var errs []string
	for _, a := range analyses {
		name := displayName(a.GroupName)

		if strings.TrimSpace(a.GroupName) == "" {
			errs = append(errs, "expression name is required")
		}
		if len(a.AnalysisMethods) == 0 {
			errs = append(errs, fmt.Sprintf("expression %s: select at least one expression type", name))
		}
		if strings.TrimSpace(a.AnalysisGuide) == "" {
			errs = append(errs, fmt.Sprintf("expression %s: a generation condition is required", name))
		}
	}
	return errs
}

// hasCompleteKeyword reports whether at least one keyword has both a name
// and a query. Blank rows are tolerated mid-edit.
func hasCompleteKeyword(keywords []common.Keyword) bool {
	for _, kw := range keywords {
		if strings.TrimSpace(kw.Name) != "" && strings.TrimSpace(kw.Query) != "" {
			return true
		}
	}
	return false
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "[unnamed]"
	}
	return "[" + name + "]"
}

// Format joins up to limit messages with a "+N more" suffix for the rest.
// A limit of 0 or less falls back to DefaultErrorLimit.
func Format(errs []string, limit int) string {
	if len(errs) == 0 {
		return ""
	}
	if limit <= 0 {
		limit = DefaultErrorLimit
	}
	if len(errs) <= limit {
		return strings.Join(errs, "\n")
	}
	shown := strings.Join(errs[:limit], "\n")
	return fmt.Sprintf("%s\n+%d more", shown, len(errs)-limit)
}
