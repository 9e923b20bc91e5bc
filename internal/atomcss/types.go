package atomcss

import (
	"io"

	"go.uber.org/zap"

	core "github.com/yacobolo/atomcss"
)

// BuildConfig holds stylesheet build configuration
type BuildConfig struct {
	Content    []string    // ["web/**/*.html", "internal/**/*.templ"]
	Output     string      // "web/static/atoms.css", "-" for stdout
	Pretty     bool        // Multi-line rule blocks
	IgnoreFile string      // ".gitignore" (default); matched relative to its directory
	Config     core.Config // Engine configuration
	Logger     *zap.Logger
	Stdout     io.Writer // Destination for Output "-" (default: os.Stdout)
}

// BuildResult contains build stats
type BuildResult struct {
	FilesScanned   int
	FilesSkipped   int // Generated or gitignored files
	ClassesFound   int // Distinct class tokens across all sources
	RulesGenerated int // Rules after aggregation
	Unresolved     int // Distinct tokens that are not utility classes
	Written        bool
	Warnings       []string
}

// CheckConfig holds class-usage check configuration
type CheckConfig struct {
	Content          []string
	IgnoreFile       string
	Config           core.Config
	Logger           *zap.Logger
	Strict           bool // Exit with code 1 if issues found
	PrintIssuedLines bool // Show source lines with issues
	PrintLinterName  bool // Show (atomcss) suffix
	UseColors        bool // Force color output (default: auto-detect)
}

// CheckResult contains check findings and stats
type CheckResult struct {
	Issues       []Issue
	FilesScanned int
	ClassesFound int // Class tokens seen, duplicates included
	Resolved     int // Tokens that produced at least one rule
	Warnings     []string
}

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// PropertyCategory groups related CSS properties
type PropertyCategory string

// Property categories for organizing CSS properties
const (
	CategoryVisual     PropertyCategory = "Visual"
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryCustom     PropertyCategory = "Custom"
	CategoryInternal   PropertyCategory = "Internal"
)

// CategorizedProperty is a resolved declaration with its category
type CategorizedProperty struct {
	Name      string // kebab-case
	Value     string
	Category  PropertyCategory
	Important bool
}
