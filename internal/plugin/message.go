package plugin

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint/controlflow"
	"github.com/vmihailenco/msgpack/v5"
)

// FileView is the tree snapshot sent to a plugin rule. Only named nodes are
// included, in pre-order; Parent and Children are indexes into Nodes.
type FileView struct {
	Name     string        `msgpack:"name"`
	Language string        `msgpack:"language"`
	Source   string        `msgpack:"source"`
	Nodes    []NodeView    `msgpack:"nodes"`
	Comments []CommentView `msgpack:"comments"`
}

// NodeView is one node of a FileView.
type NodeView struct {
	Kind      string `msgpack:"kind"`
	Field     string `msgpack:"field,omitempty"`
	Parent    int    `msgpack:"parent"`
	Children  []int  `msgpack:"children,omitempty"`
	Start     int    `msgpack:"start"`
	End       int    `msgpack:"end"`
	Line      int    `msgpack:"line"`
	Column    int    `msgpack:"column"`
	Text      string `msgpack:"text,omitempty"` // leaves only
	Reachable bool   `msgpack:"reachable"`
}

// CommentView is one source comment.
type CommentView struct {
	Text  string `msgpack:"text"`
	Block bool   `msgpack:"block"`
	Start int    `msgpack:"start"`
	End   int    `msgpack:"end"`
	Line  int    `msgpack:"line"`
}

// Diagnostic is a finding returned by a plugin rule. Start and End are byte
// offsets into the file.
type Diagnostic struct {
	Code    string `msgpack:"code"`
	Message string `msgpack:"message"`
	Hint    string `msgpack:"hint,omitempty"`
	Start   int    `msgpack:"start"`
	End     int    `msgpack:"end"`
}

// NewFileView builds the view of file. flow supplies the reachable flag of
// statements and declarations; other nodes inherit it from their parent.
func NewFileView(file *ast.File, flow *controlflow.Analysis) *FileView {
	view := &FileView{
		Name:     file.Name,
		Language: string(file.Language),
		Source:   string(file.Source),
		Nodes:    make([]NodeView, 0, file.Len()),
	}

	index := make(map[ast.NodeID]int, file.Len())
	ast.Walk(file.Root, func(n *ast.Node) bool {
		if !n.Named {
			return false
		}
		parent := -1
		reachable := true
		if n.Parent != nil {
			if p, ok := index[n.Parent.ID]; ok {
				parent = p
				reachable = view.Nodes[p].Reachable
			}
		}
		if reachable && flow != nil && isStatementLike(n.Kind) {
			reachable = flow.IsReachable(n)
		}

		pos := file.Position(n.Range.Start)
		nv := NodeView{
			Kind:      n.Kind,
			Field:     n.Field,
			Parent:    parent,
			Start:     n.Range.Start,
			End:       n.Range.End,
			Line:      pos.Line,
			Column:    pos.Column,
			Reachable: reachable,
		}
		if len(n.NamedChildren()) == 0 {
			nv.Text = n.Text()
		}

		idx := len(view.Nodes)
		index[n.ID] = idx
		view.Nodes = append(view.Nodes, nv)
		if parent >= 0 {
			view.Nodes[parent].Children = append(view.Nodes[parent].Children, idx)
		}
		return true
	})

	for _, c := range file.Comments {
		view.Comments = append(view.Comments, CommentView{
			Text:  c.Text,
			Block: c.IsBlockComment(),
			Start: c.Range.Start,
			End:   c.Range.End,
			Line:  file.LineOf(c.Range.Start),
		})
	}
	return view
}

func isStatementLike(kind string) bool {
	return strings.HasSuffix(kind, "_statement") || strings.HasSuffix(kind, "_declaration")
}

// EncodeFile serializes the view of file for a plugin rule.
func EncodeFile(file *ast.File, flow *controlflow.Analysis) ([]byte, error) {
	data, err := msgpack.Marshal(NewFileView(file, flow))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", file.Name, err)
	}
	return data, nil
}

// DecodeFile is the plugin side of EncodeFile.
func DecodeFile(data []byte) (*FileView, error) {
	var view FileView
	if err := msgpack.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode file view: %w", err)
	}
	return &view, nil
}

// EncodeDiagnostics serializes plugin findings.
func EncodeDiagnostics(diags []Diagnostic) ([]byte, error) {
	data, err := msgpack.Marshal(diags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	return data, nil
}

// DecodeDiagnostics is the host side of EncodeDiagnostics.
func DecodeDiagnostics(data []byte) ([]Diagnostic, error) {
	var diags []Diagnostic
	if err := msgpack.Unmarshal(data, &diags); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}
	return diags, nil
}
