package atomcss

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ClassReference is one class attribute value found in a source file
type ClassReference struct {
	Value    string       // Full attribute: "px-4 py-2 hover:bg-primary"
	Location FileLocation // Where the value starts
}

// FileLocation tracks where a class reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column of the first character of Value
	Text   string // Full line content for source display
}

// ClassToken is a single class name with its exact position
type ClassToken struct {
	Name     string
	Location FileLocation
}

// Tokens splits the reference into class names, each with its own column
func (r ClassReference) Tokens() []ClassToken {
	var tokens []ClassToken
	offset := 0
	for _, name := range strings.Fields(r.Value) {
		idx := strings.Index(r.Value[offset:], name)
		loc := r.Location
		if loc.Column > 0 {
			loc.Column += offset + idx
		}
		tokens = append(tokens, ClassToken{Name: name, Location: loc})
		offset += idx + len(name)
	}
	return tokens
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// scanPattern represents a regex pattern for finding class attributes
type scanPattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Ordered from most specific to least specific
	patterns = []scanPattern{
		{name: "class attribute with double quotes", regex: regexp.MustCompile(`\bclass="([^"]*)"`)},
		{name: "class attribute with single quotes", regex: regexp.MustCompile(`\bclass='([^']*)'`)},
		{name: "class with string literal in braces", regex: regexp.MustCompile(`\bclass=\{\s*"([^"]*)"`)},
		{name: "className with double quotes", regex: regexp.MustCompile(`\bclassName="([^"]*)"`)},
		{name: "className with single quotes", regex: regexp.MustCompile(`\bclassName='([^']*)'`)},
		{name: "className expression with double quotes", regex: regexp.MustCompile(`\bclassName=\{\s*"([^"]*)"`)},
		{name: "className expression with single quotes", regex: regexp.MustCompile(`\bclassName=\{\s*'([^']*)'`)},
		{name: "className template literal", regex: regexp.MustCompile("\\bclassName=\\{\\s*`([^`$]*)`")},
	}

	// Regex to detect templ.Classes and templ.KV with comma-separated values
	templClassesMulti = regexp.MustCompile(`templ\.Classes\(([^)]+)\)`)
	templKVMulti      = regexp.MustCompile(`templ\.KV\(([^)]+)\)`)

	// Comment patterns to skip
	commentPattern = regexp.MustCompile(`^\s*//`)
)

// isTemplGenerated checks if a file is a templ-generated Go file
// Handles both _templ.go and .templ.go suffix variations
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// scanner expands content globs and filters generated and ignored files
type scanner struct {
	ignore *ignore.GitIgnore
	base   string // directory of the ignore file
	skip   map[string]bool
}

// newScanner loads ignoreFile if it exists. Extra paths (such as the build
// output) are always skipped.
func newScanner(ignoreFile string, extra ...string) *scanner {
	if ignoreFile == "" {
		ignoreFile = ".gitignore"
	}
	s := &scanner{skip: make(map[string]bool)}
	for _, p := range extra {
		if abs, err := filepath.Abs(p); err == nil {
			s.skip[abs] = true
		}
	}

	// Gracefully degrade - no .gitignore is fine
	gi, err := ignore.CompileIgnoreFile(ignoreFile)
	if err != nil {
		return s
	}
	base, err := filepath.Abs(filepath.Dir(ignoreFile))
	if err != nil {
		return s
	}
	s.ignore, s.base = gi, base
	return s
}

// shouldSkipFile determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Pattern check (fast): generated files and explicit skips
// 2. Gitignore check: paths inside the ignore file's directory
func (s *scanner) shouldSkipFile(path string) bool {
	if isTemplGenerated(path) {
		return true
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if s.skip[abs] {
		return true
	}

	if s.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(s.base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return s.ignore.MatchesPath(filepath.ToSlash(rel))
}

// expand expands glob patterns to file paths and tracks statistics
func (s *scanner) expand(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file for class attribute values
func scanFile(filePath string) ([]ClassReference, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, extractClassesFromLine(scanner.Text(), lineNum, filePath)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// findClassColumn locates the column where value starts within line,
// preferring an occurrence inside quotes
func findClassColumn(line string, value string) int {
	for _, quote := range []string{`"`, `'`, "`"} {
		if idx := strings.Index(line, quote+value+quote); idx != -1 {
			return idx + 2 // +1 for 1-based, +1 to skip quote
		}
	}

	if idx := strings.Index(line, value); idx != -1 {
		return idx + 1
	}

	return 0
}

// extractClassesFromLine extracts all class attribute values from a line
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	if commentPattern.MatchString(line) {
		return nil
	}

	var refs []ClassReference
	text := strings.TrimSpace(line)
	indent := strings.Index(line, text)

	for _, m := range templClassesMulti.FindAllStringSubmatch(line, -1) {
		refs = append(refs, parseTemplArguments(m[1], lineNum, file, line)...)
	}
	for _, m := range templKVMulti.FindAllStringSubmatch(line, -1) {
		// For KV, only the first argument is the class name
		if parts := splitTemplArgs(m[1]); len(parts) > 0 {
			refs = append(refs, parseTemplArguments(parts[0], lineNum, file, line)...)
		}
	}

	for _, pattern := range patterns {
		for _, match := range pattern.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(match) < 4 || match[2] == match[3] {
				continue
			}
			refs = append(refs, ClassReference{
				Value: line[match[2]:match[3]],
				Location: FileLocation{
					File:   file,
					Line:   lineNum,
					Column: match[2] - indent + 1, // 1-indexed, relative to Text
					Text:   text,
				},
			})
		}
	}

	return refs
}

// parseTemplArguments parses string literal arguments inside templ functions
// Handles: "foo", "baz qux", someVar
func parseTemplArguments(args string, lineNum int, file string, fullLine string) []ClassReference {
	var refs []ClassReference
	text := strings.TrimSpace(fullLine)

	for _, part := range splitTemplArgs(args) {
		part = strings.TrimSpace(part)
		if len(part) < 2 || !strings.HasPrefix(part, `"`) || !strings.HasSuffix(part, `"`) {
			continue
		}
		classStr := strings.Trim(part, `"`)
		if strings.TrimSpace(classStr) == "" {
			continue
		}
		refs = append(refs, ClassReference{
			Value: classStr,
			Location: FileLocation{
				File:   file,
				Line:   lineNum,
				Column: findClassColumn(text, classStr),
				Text:   text,
			},
		})
	}

	return refs
}

// splitTemplArgs splits comma-separated arguments outside parentheses
func splitTemplArgs(s string) []string {
	var parts []string
	var current strings.Builder
	parenDepth := 0

	for _, r := range s {
		switch r {
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case ',':
			if parenDepth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
