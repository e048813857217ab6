package ignore

import (
	"sort"
	"strings"
	"unicode"

	"github.com/leapstack-labs/jslint/pkg/ast"
)

// Markers configures the directive prefixes.
type Markers struct {
	Line string
	File string
}

// DefaultMarkers returns the default markers.
func DefaultMarkers() Markers {
	return Markers{Line: DefaultMarker, File: DefaultFileMarker}
}

func (m Markers) withDefaults() Markers {
	if m.Line == "" {
		m.Line = DefaultMarker
	}
	if m.File == "" {
		m.File = DefaultFileMarker
	}
	return m
}

// Set holds the directives of one file.
type Set struct {
	file  *Directive
	lines map[int]*Directive // keyed by the directive's own line
}

// Parse extracts the directives of a file. Only comments before the first
// statement can form the file directive; the first one wins.
func Parse(file *ast.File, markers Markers) *Set {
	markers = markers.withDefaults()
	set := &Set{lines: make(map[int]*Directive)}

	firstCode := len(file.Source)
	if file.Root != nil {
		for _, c := range file.Root.NamedChildren() {
			if c.Kind == ast.KindHashBang {
				continue
			}
			firstCode = c.Range.Start
			break
		}
	}

	for _, c := range file.Comments {
		body := strings.TrimSpace(c.Body())
		if codes, ok := matchMarker(body, markers.File); ok {
			if set.file == nil && c.Range.End <= firstCode {
				line := file.Lines.Line(c.Range.Start)
				set.file = newDirective(File, line, c.Range, markers.File, codes)
			}
			continue
		}
		if codes, ok := matchMarker(body, markers.Line); ok {
			line := file.Lines.Line(c.Range.End - 1)
			set.lines[line] = newDirective(Line, line, c.Range, markers.Line, codes)
		}
	}
	return set
}

// matchMarker returns the codes after marker if body starts with it.
func matchMarker(body, marker string) ([]string, bool) {
	if !strings.HasPrefix(body, marker) {
		return nil, false
	}
	rest := body[len(marker):]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return nil, false
	}
	if i := strings.Index(rest, "--"); i >= 0 {
		rest = rest[:i]
	}
	return splitCodes(rest), true
}

func splitCodes(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// FileDirective returns the file-wide directive, or nil.
func (s *Set) FileDirective() *Directive {
	if s == nil {
		return nil
	}
	return s.file
}

// LineDirectives returns the line directives keyed by their own line.
func (s *Set) LineDirectives() map[int]*Directive {
	if s == nil {
		return nil
	}
	return s.lines
}

// All returns every directive, file directive first, then line directives
// in line order.
func (s *Set) All() []*Directive {
	if s == nil {
		return nil
	}
	var out []*Directive
	if s.file != nil {
		out = append(out, s.file)
	}
	lines := make([]int, 0, len(s.lines))
	for l := range s.lines {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	for _, l := range lines {
		out = append(out, s.lines[l])
	}
	return out
}

// Suppresses reports whether a diagnostic with code starting on line is
// suppressed, and marks the matching directive used.
func (s *Set) Suppresses(code string, line int) bool {
	if s == nil {
		return false
	}
	if s.file != nil && s.file.CheckUsed(code) {
		return true
	}
	if d, ok := s.lines[line-1]; ok && d.CheckUsed(code) {
		return true
	}
	return false
}

// Empty reports whether the set has no directives.
func (s *Set) Empty() bool {
	return s == nil || (s.file == nil && len(s.lines) == 0)
}
