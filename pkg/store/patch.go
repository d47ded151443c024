package store

import "github.com/profilenet/backend/pkg/common"

// Patch structs carry partial updates with each field explicitly
// optional. A nil field leaves the current value untouched. Enum and
// range checks on the incoming values belong to the API boundary, not
// here.

type ProjectPatch struct {
	Name       *string
	Status     *common.ProjectStatus
	Data       *[]common.DataDomain
	StartDate  *string
	EndDate    *string
	AutoUpdate *bool
}

type SubjectPatch struct {
	GroupName   *string
	FilterGuide *string
}

type RelationPatch struct {
	GroupName     *string
	EdgeName      *string
	RelationGuide *string
}

type AnalysisPatch struct {
	GroupName       *string
	EdgeName        *string
	TextType        *string
	PoolSize        *int
	AnalysisMethods *[]string
	AnalysisGuide   *string
}

type KeywordPatch struct {
	Name  *string
	Query *string
	Info  *string
}
