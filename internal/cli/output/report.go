package output

import (
	"fmt"

	"github.com/leapstack-labs/jslint/internal/runner"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

// ReportJSON is the JSON output of a lint run.
type ReportJSON struct {
	RunID       string           `json:"run_id"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      []FileErrorJSON  `json:"errors"`
	Summary     SummaryJSON      `json:"summary"`
}

// DiagnosticJSON is one diagnostic in JSON output. Columns are 1-based.
type DiagnosticJSON struct {
	Filename string    `json:"filename"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Hint     string    `json:"hint,omitempty"`
	Range    RangeJSON `json:"range"`
}

// RangeJSON is the location of a diagnostic.
type RangeJSON struct {
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

// PositionJSON is one end of a RangeJSON.
type PositionJSON struct {
	Line    int `json:"line"`
	Col     int `json:"col"`
	BytePos int `json:"bytePos"`
}

// FileErrorJSON is a file that could not be linted.
type FileErrorJSON struct {
	FilePath string `json:"file_path"`
	Message  string `json:"message"`
}

// SummaryJSON counts the results of a run.
type SummaryJSON struct {
	Files       int   `json:"files"`
	Diagnostics int   `json:"diagnostics"`
	Suppressed  int   `json:"suppressed"`
	Errors      int   `json:"errors"`
	DurationMS  int64 `json:"duration_ms"`
}

// RenderReport writes report in the renderer's mode. Configuration
// diagnostics come first, then every file in report order.
func (r *Renderer) RenderReport(report *runner.Report) error {
	switch r.Mode() {
	case ModeJSON:
		return r.JSON(NewReportJSON(report))
	case ModeCompact:
		r.renderCompact(report)
	default:
		r.renderPretty(report)
	}
	return nil
}

// NewReportJSON converts a report to its JSON form.
func NewReportJSON(report *runner.Report) ReportJSON {
	diagnostics, suppressed, failed := report.Counts()
	out := ReportJSON{
		RunID:       report.RunID,
		Diagnostics: []DiagnosticJSON{},
		Errors:      []FileErrorJSON{},
		Summary: SummaryJSON{
			Files:       len(report.Files),
			Diagnostics: diagnostics,
			Suppressed:  suppressed,
			Errors:      failed,
			DurationMS:  report.Duration.Milliseconds(),
		},
	}
	for _, d := range report.Config {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON(d))
	}
	for _, f := range report.Files {
		if f.Err != nil {
			out.Errors = append(out.Errors, FileErrorJSON{FilePath: f.Path, Message: f.Err.Error()})
			continue
		}
		for _, d := range f.Result.Diagnostics {
			out.Diagnostics = append(out.Diagnostics, diagnosticJSON(d))
		}
	}
	return out
}

func diagnosticJSON(d lint.Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Filename: d.Filename,
		Code:     d.Code,
		Message:  d.Message,
		Hint:     d.Hint,
		Range: RangeJSON{
			Start: PositionJSON{Line: d.Pos.Line, Col: d.Pos.Column, BytePos: d.Range.Start},
			End:   PositionJSON{Line: d.EndPos.Line, Col: d.EndPos.Column, BytePos: d.Range.End},
		},
	}
}

func (r *Renderer) renderCompact(report *runner.Report) {
	line := func(d lint.Diagnostic) {
		r.Printf("%s: line %d, col %d, Error - %s (%s)\n", d.Filename, d.Pos.Line, d.Pos.Column, d.Message, d.Code)
	}
	for _, d := range report.Config {
		line(d)
	}
	for _, f := range report.Files {
		if f.Err != nil {
			r.Error(fmt.Sprintf("%s: %v", f.Path, f.Err))
			continue
		}
		for _, d := range f.Result.Diagnostics {
			line(d)
		}
	}
	r.renderSummary(report)
}

func (r *Renderer) renderPretty(report *runner.Report) {
	for _, d := range report.Config {
		r.renderDiagnostic(d, nil)
	}
	for _, f := range report.Files {
		if f.Err != nil {
			r.Error(fmt.Sprintf("error: %s: %v", f.Path, f.Err))
			continue
		}
		for _, d := range f.Result.Diagnostics {
			r.renderDiagnostic(d, f.Source)
		}
	}
	r.renderSummary(report)
}

// renderDiagnostic writes one diagnostic with its code frame:
//
//	error[no-debugger]: `debugger` statement is not allowed
//	 --> a.js:2:1
//	  |
//	2 | debugger;
//	  | ^^^^^^^^^
//	  = hint: Remove the debugger statement
//	  = docs: https://...
func (r *Renderer) renderDiagnostic(d lint.Diagnostic, src []byte) {
	s := r.styles
	r.Println(s.Error.Render("error["+d.Code+"]") + s.Bold.Render(": "+d.Message))
	r.Println(s.Muted.Render(" --> ") + s.Path.Render(fmt.Sprintf("%s:%d:%d", d.Filename, d.Pos.Line, d.Pos.Column)))
	for _, line := range r.renderFrame(codeFrame(src, d)) {
		r.Println(line)
	}
	if d.Hint != "" {
		r.Println(s.Muted.Render("  = ") + s.Hint.Render("hint: "+d.Hint))
	}
	if !lint.IsEngineCode(d.Code) {
		r.Println(s.Muted.Render("  = docs: " + lint.BuildDocURL(d.Code)))
	}
	r.Println("")
}

func (r *Renderer) renderSummary(report *runner.Report) {
	diagnostics, suppressed, failed := report.Counts()
	s := r.styles

	if diagnostics == 0 && failed == 0 {
		r.Success(fmt.Sprintf("Checked %d %s", len(report.Files), plural(len(report.Files), "file", "files")))
		return
	}
	msg := fmt.Sprintf("Found %d %s", diagnostics, plural(diagnostics, "problem", "problems"))
	if suppressed > 0 {
		msg += fmt.Sprintf(" (%d suppressed)", suppressed)
	}
	r.Println(s.Error.Render(msg))
	if failed > 0 {
		r.Println(s.Error.Render(fmt.Sprintf("%d %s could not be linted", failed, plural(failed, "file", "files"))))
	}
	r.Println(s.Muted.Render(fmt.Sprintf("Checked %d %s", len(report.Files), plural(len(report.Files), "file", "files"))))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
