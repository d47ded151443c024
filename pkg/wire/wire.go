// Package wire defines the request and response shapes of the analysis
// engine API and the conversion from editor projects into them. In the
// wire format every structural id has been replaced by its
// content-addressed equivalent and every controlled-vocabulary field
// carries the engine's expected labels.
package wire

// Keyword mirrors the editor keyword with a content-addressed id.
type Keyword struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Info  string `json:"info"`
}

// AnalysisExpression carries relabelled text type and method names.
type AnalysisExpression struct {
	ID              string   `json:"id"`
	GroupName       string   `json:"group_name"`
	TextType        string   `json:"text_type"`
	PoolSize        int      `json:"pool_size"`
	AnalysisMethods []string `json:"analysis_methods"`
	AnalysisGuide   string   `json:"analysis_guide"`
}

type Relation struct {
	ID            string               `json:"id"`
	GroupName     string               `json:"group_name"`
	EdgeName      string               `json:"edge_name"`
	Keywords      []Keyword            `json:"keywords"`
	RelationGuide string               `json:"relation_guide"`
	Analyses      []AnalysisExpression `json:"analyses"`
}

type Subject struct {
	ID          string               `json:"id"`
	GroupName   string               `json:"group_name"`
	Keywords    []Keyword            `json:"keywords"`
	FilterGuide string               `json:"filter_guide"`
	Relations   []Relation           `json:"relations"`
	Analyses    []AnalysisExpression `json:"analyses"`
}

// DataDomain carries the engine's domain codes (ko.naver_blog, ...).
type DataDomain struct {
	Domain string `json:"domain"`
	Type   string `json:"type"`
}

type StartAnalysisRequest struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Data      []DataDomain `json:"data"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Subjects  []Subject    `json:"subjects"`
}

type StartAnalysisResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RequestID    string `json:"request_id,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
}

type StopAnalysisRequest struct {
	ID string `json:"id"`
}

type StopAnalysisResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Run states reported by the engine for a whole project or a single
// subject/keyword slice.
const (
	RunPending    = "pending"
	RunProcessing = "processing"
	RunCompleted  = "completed"
	RunFailed     = "failed"
	RunStopped    = "stopped"
)

// AnalysisProgress is the per-keyword slice of a monitoring response.
type AnalysisProgress struct {
	SubjectName    string `json:"subject_name"`
	KeywordName    string `json:"keyword_name"`
	Domain         string `json:"domain"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
	ProcessedCount int    `json:"processed_count"`
	TotalCount     int    `json:"total_count"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

type MonitoringResponse struct {
	Success             bool               `json:"success"`
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Status              string             `json:"status"`
	OverallProgress     int                `json:"overall_progress"`
	StartedAt           string             `json:"started_at,omitempty"`
	EstimatedCompletion string             `json:"estimated_completion,omitempty"`
	Analyses            []AnalysisProgress `json:"analyses"`
	Message             string             `json:"message,omitempty"`
	ErrorCode           string             `json:"error_code,omitempty"`
}

type ResultsResponse struct {
	Success    bool   `json:"success"`
	ID         string `json:"id"`
	ResultsURL string `json:"results_url,omitempty"`
	Message    string `json:"message,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// Node types of the results network graph.
const (
	NodeSubject    = "subject"
	NodeRelation   = "relation"
	NodeExpression = "expression"
)

type NetworkNode struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	GroupName string `json:"groupName"`
	Label     string `json:"label"`
}

type NetworkEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

type NetworkGraph struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

type NodeDetailRequest struct {
	ProjectID string `json:"projectId"`
	NodeID    string `json:"nodeId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// NodeDetailResponse wraps the node-type-specific payload the results
// view drills into. Data stays opaque here; its shape is owned by the
// engine and varies by node type.
type NodeDetailResponse struct {
	Success  bool           `json:"success"`
	NodeType string         `json:"nodeType"`
	Data     map[string]any `json:"data"`
	Message  string         `json:"message,omitempty"`
}
