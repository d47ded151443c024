package common

// ProjectStatus is the lifecycle state of an analysis project.
//
// Transitions:
//   - unavailable -> available: the configuration tree passed save validation
//   - available -> analyzing:  an analysis run was started
//   - analyzing -> available:  the run completed or was stopped
//   - any -> unavailable:      save validation failed
type ProjectStatus string

const (
	StatusUnavailable ProjectStatus = "unavailable"
	StatusAvailable   ProjectStatus = "available"
	StatusAnalyzing   ProjectStatus = "analyzing"
)

// LogStatus is the state of a single analysis run record.
type LogStatus string

const (
	LogPending   LogStatus = "pending"
	LogAnalyzing LogStatus = "analyzing"
	LogCompleted LogStatus = "completed"
	LogFailed    LogStatus = "failed"
)

// DataDomain selects one source/media-type pair for a run,
// e.g. {blog, text} or {instagram, image}.
type DataDomain struct {
	Domain string `json:"domain"`
	Type   string `json:"type"`
}

// Source domains selectable for analysis.
const (
	DomainBlog      = "blog"
	DomainInstagram = "instagram"
	DomainNews      = "news"
)

// Media types within a source domain.
const (
	TypeText  = "text"
	TypeImage = "image"
)

// Keyword is a named search query unit. The ID is a structural (session)
// identifier while editing; the content-addressed id replaces it only at
// wire conversion.
type Keyword struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Info  string `json:"info"`
}

// Text types for an expression analysis.
const (
	TextTypeNarrative = "narrative"
	TextTypeShort     = "short"
)

// Analysis methods selectable for an expression analysis.
const (
	MethodPositive      = "positive"
	MethodNegative      = "negative"
	MethodNeutral       = "neutral"
	MethodComprehensive = "comprehensive"
)

// AnalysisExpression is a leaf configuration describing how
// sentiment-bearing expressions are extracted. PoolSize 0 means unlimited.
type AnalysisExpression struct {
	ID              string   `json:"id"`
	GroupName       string   `json:"group_name"`
	EdgeName        string   `json:"edge_name"`
	TextType        string   `json:"text_type"`
	PoolSize        int      `json:"pool_size"`
	AnalysisMethods []string `json:"analysis_methods"`
	AnalysisGuide   string   `json:"analysis_guide"`
}

// Relation groups keywords that co-occur with a subject under a named
// relationship. A relation exclusively owns its keywords and analyses.
type Relation struct {
	ID            string               `json:"id"`
	GroupName     string               `json:"group_name"`
	EdgeName      string               `json:"edge_name"`
	Keywords      []Keyword            `json:"keywords"`
	RelationGuide string               `json:"relation_guide"`
	Analyses      []AnalysisExpression `json:"analyses"`
}

// Subject is the root analysis unit. Expressions may be attached directly
// to the subject, bypassing relations.
type Subject struct {
	ID          string               `json:"id"`
	GroupName   string               `json:"group_name"`
	Keywords    []Keyword            `json:"keywords"`
	FilterGuide string               `json:"filter_guide"`
	Relations   []Relation           `json:"relations"`
	Analyses    []AnalysisExpression `json:"analyses"`
}

// AnalysisProject is the top-level aggregate. Its ID is derived once at
// creation from the owning user and the creation instant and never changes,
// so renaming a project keeps its identity. The project exclusively owns
// its subjects and, transitively, every relation, expression and keyword
// below them.
type AnalysisProject struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Status     ProjectStatus `json:"status"`
	CreatedAt  string        `json:"createdAt"`
	UpdatedAt  string        `json:"updatedAt"`
	Data       []DataDomain  `json:"data"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	AutoUpdate bool          `json:"autoUpdate"`
	Subjects   []Subject     `json:"subjects"`
}

// AnalysisLog records one historical or in-flight analysis run. Period is
// the submitted date range ("start~end"); Domain and AnalysisType carry the
// localized display labels of the run's data domain.
type AnalysisLog struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	Period       string    `json:"period"`
	Domain       string    `json:"domain"`
	AnalysisType string    `json:"analysisType"`
	Progress     int       `json:"progress"`
	Status       LogStatus `json:"status"`
	RequestedAt  string    `json:"requestedAt"`
	CompletedAt  *string   `json:"completedAt"`
}

// StatusLabels maps a project status to its display label.
var StatusLabels = map[ProjectStatus]string{
	StatusUnavailable: "불가능",
	StatusAvailable:   "가능",
	StatusAnalyzing:   "분석 중",
}

// DomainLabels maps an internal source domain to its display label,
// used when writing run logs.
var DomainLabels = map[string]string{
	DomainBlog:      "블로그",
	DomainInstagram: "인스타그램",
	DomainNews:      "뉴스",
}

// TypeLabels maps an internal media type to its display label.
var TypeLabels = map[string]string{
	TypeText:  "텍스트",
	TypeImage: "이미지",
}
