package crashdump

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// ErrInvalidPattern is returned for a label pattern that does not compile.
var ErrInvalidPattern = errors.New("invalid label pattern")

// Pattern matches dump labels.
type Pattern interface {
	Match(s string) bool
	String() string
}

// PatternType indicates whether a pattern is a glob or regex.
type PatternType int

const (
	// PatternTypeGlob indicates a glob pattern (e.g., "import-*").
	PatternTypeGlob PatternType = iota

	// PatternTypeRegex indicates a regex pattern (e.g., "^worker-\d+$").
	PatternTypeRegex
)

// regexIndicators are substrings that only make sense in a regular expression.
var regexIndicators = []string{"^", "$", "(?", `\d`, `\w`, `\s`, `\b`, "(", ")", "|", "+", ".*", ".+", `\.`}

// DetectPatternType reports PatternTypeRegex when pattern uses regex-only syntax.
func DetectPatternType(pattern string) PatternType {
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return PatternTypeRegex
		}
	}

	return PatternTypeGlob
}

// GlobPattern matches with doublestar glob syntax.
type GlobPattern struct {
	pattern string
}

// NewGlobPattern validates pattern and returns a GlobPattern.
func NewGlobPattern(pattern string) (*GlobPattern, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Wrapf(ErrInvalidPattern, "glob %q", pattern)
	}

	return &GlobPattern{pattern: pattern}, nil
}

// Match returns true if s matches the glob.
func (p *GlobPattern) Match(s string) bool {
	ok, err := doublestar.Match(p.pattern, s)

	return err == nil && ok
}

// String returns the original pattern string.
func (p *GlobPattern) String() string {
	return p.pattern
}

// RegexPattern matches with a regular expression.
type RegexPattern struct {
	compiled *regexp.Regexp
}

// NewRegexPattern compiles pattern.
func NewRegexPattern(pattern string) (*RegexPattern, error) {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrInvalidPattern), "regex %q", pattern)
	}

	return &RegexPattern{compiled: compiled}, nil
}

// Match returns true if s matches the regex.
func (p *RegexPattern) Match(s string) bool {
	return p.compiled.MatchString(s)
}

// String returns the original pattern string.
func (p *RegexPattern) String() string {
	return p.compiled.String()
}

// CompilePattern compiles a pattern string, auto-detecting the pattern type.
//
//nolint:ireturn // interface for polymorphism
func CompilePattern(pattern string) (Pattern, error) {
	if DetectPatternType(pattern) == PatternTypeRegex {
		return NewRegexPattern(pattern)
	}

	return NewGlobPattern(pattern)
}

// Filter selects dumps. Zero fields match everything.
type Filter struct {
	// Label matches the guard label.
	Label Pattern

	// Kind is the exact fault kind.
	Kind string
}

// Match reports whether s passes the filter.
func (f Filter) Match(s DumpSummary) bool {
	if f.Label != nil && !f.Label.Match(s.Label) {
		return false
	}

	return f.Kind == "" || f.Kind == s.FaultKind
}

// NewFilter builds a Filter from a label pattern and a fault kind, either may be empty.
func NewFilter(label, kind string) (Filter, error) {
	f := Filter{Kind: kind}

	if label != "" {
		p, err := CompilePattern(label)
		if err != nil {
			return Filter{}, err
		}

		f.Label = p
	}

	return f, nil
}
