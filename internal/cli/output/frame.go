package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/mattn/go-runewidth"
)

// maxFrameLines caps the number of source lines shown for one diagnostic.
const maxFrameLines = 3

// frameLine is one source line of a code frame with its caret marker.
type frameLine struct {
	number int
	text   string
	caret  string
}

// codeFrame returns the source lines covered by d with carets under the
// covered text. Carets are aligned by display width, tabs count as four
// columns.
func codeFrame(src []byte, d lint.Diagnostic) []frameLine {
	if len(src) == 0 || d.Range.Start > len(src) {
		return nil
	}
	start, end := d.Range.Start, min(d.Range.End, len(src))

	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	number := d.Pos.Line
	var lines []frameLine
	for len(lines) < maxFrameLines {
		lineEnd := len(src)
		if i := bytes.IndexByte(src[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
		}
		line := strings.TrimRight(string(src[lineStart:lineEnd]), "\r")

		from := max(start, lineStart) - lineStart
		to := min(max(end, start), lineEnd) - lineStart
		from, to = min(from, len(line)), min(to, len(line))

		pad := displayWidth(line[:from])
		width := max(1, displayWidth(line[from:to]))
		lines = append(lines, frameLine{
			number: number,
			text:   expandTabs(line),
			caret:  strings.Repeat(" ", pad) + strings.Repeat("^", width),
		})

		if lineEnd >= end || lineEnd >= len(src) {
			break
		}
		lineStart = lineEnd + 1
		number++
	}
	return lines
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// renderFrame formats lines with a gutter wide enough for the last line
// number.
func (r *Renderer) renderFrame(lines []frameLine) []string {
	if len(lines) == 0 {
		return nil
	}
	gutter := len(fmt.Sprint(lines[len(lines)-1].number))
	blank := strings.Repeat(" ", gutter)
	styles := r.styles

	out := []string{styles.Muted.Render(blank + " |")}
	for _, l := range lines {
		out = append(out,
			styles.Muted.Render(fmt.Sprintf("%*d |", gutter, l.number))+" "+l.text,
			styles.Muted.Render(blank+" |")+" "+styles.Caret.Render(l.caret),
		)
	}
	return out
}
