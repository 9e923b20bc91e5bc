package atomcss

// Issue represents a single check violation in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "atomcss"
	Text        string   `json:"Text"`        // "unknown utility class \"pd-[4px]\""
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/templates/index.html"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, exact start of the class)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueUnknownVariant = "unknown variant %q in class %q"
	IssueUnknownUtility = "unknown utility class %q"
	IssueInvalidValue   = "invalid value in class %q"
	IssueEmptyComposite = "class %q expands to no rules"
)
