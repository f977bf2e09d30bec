package models

// Severity levels used by the analysis agents
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Verdict is the structured output of an analysis agent. IssuePresent is
// nil when the analysis degraded (AI unreachable after retry), so the
// report still carries a tracking id without claiming a finding.
type Verdict struct {
	IssuePresent *bool   `bson:"issuePresent,omitempty" json:"issuePresent,omitempty"`
	IssueType    string  `bson:"issueType,omitempty" json:"issueType,omitempty"`
	Severity     string  `bson:"severity,omitempty" json:"severity,omitempty"`
	Description  string  `bson:"description,omitempty" json:"description,omitempty"`
	Advice       string  `bson:"advice,omitempty" json:"advice,omitempty"`
	AreaHint     string  `bson:"areaHint,omitempty" json:"areaHint,omitempty"`
	Events       []Event `bson:"events,omitempty" json:"events,omitempty"`
}
