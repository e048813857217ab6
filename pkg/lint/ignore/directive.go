// Package ignore parses suppression comments and matches them against
// diagnostics.
//
// Two forms are recognized:
//
//	// lint-ignore-file [codes...]   among the leading comments of a file
//	// lint-ignore [codes...]        suppresses diagnostics on the next line
//
// Codes are separated by whitespace or commas; anything after "--" is an
// explanation and ignored. A directive without codes suppresses every code.
package ignore

import (
	"github.com/leapstack-labs/jslint/pkg/token"
)

// Default markers.
const (
	DefaultMarker     = "lint-ignore"
	DefaultFileMarker = "lint-ignore-file"
)

// Kind distinguishes file-wide from line directives.
type Kind int

// Directive kinds.
const (
	File Kind = iota
	Line
)

func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "line"
}

// CodeStatus tracks whether a code listed in a directive suppressed anything.
type CodeStatus struct {
	Used bool
}

// Directive is one parsed suppression comment.
type Directive struct {
	Kind   Kind
	Line   int // line of the comment; a Line directive covers Line+1
	Range  token.Range
	Marker string

	codes   map[string]*CodeStatus
	order   []string
	allUsed bool
}

func newDirective(kind Kind, line int, rng token.Range, marker string, codes []string) *Directive {
	d := &Directive{Kind: kind, Line: line, Range: rng, Marker: marker, codes: make(map[string]*CodeStatus)}
	for _, c := range codes {
		if _, dup := d.codes[c]; dup {
			continue
		}
		d.codes[c] = &CodeStatus{}
		d.order = append(d.order, c)
	}
	return d
}

// IgnoreAll reports whether the directive lists no codes.
func (d *Directive) IgnoreAll() bool {
	return len(d.order) == 0
}

// Codes returns the listed codes in source order.
func (d *Directive) Codes() []string {
	return d.order
}

// HasCode reports whether code is listed explicitly.
func (d *Directive) HasCode(code string) bool {
	_, ok := d.codes[code]
	return ok
}

// IsUsed reports whether the listed code suppressed a diagnostic.
func (d *Directive) IsUsed(code string) bool {
	s, ok := d.codes[code]
	return ok && s.Used
}

// Used reports whether the directive suppressed anything.
func (d *Directive) Used() bool {
	if d.allUsed {
		return true
	}
	for _, s := range d.codes {
		if s.Used {
			return true
		}
	}
	return false
}

// UnusedCodes returns the listed codes that suppressed nothing, in source
// order.
func (d *Directive) UnusedCodes() []string {
	var out []string
	for _, c := range d.order {
		if !d.codes[c].Used {
			out = append(out, c)
		}
	}
	return out
}

// CheckUsed reports whether the directive covers code and marks it used.
// Marks never revert.
func (d *Directive) CheckUsed(code string) bool {
	if d.IgnoreAll() {
		d.allUsed = true
		return true
	}
	if s, ok := d.codes[code]; ok {
		s.Used = true
		return true
	}
	return false
}
