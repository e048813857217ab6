package scope

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
)

// Build constructs the scope tree for file and resolves its references.
// globals may be nil.
func Build(file *ast.File, globals Globals) *Tree {
	t := newTree(file, globals)
	b := &builder{t: t}

	root := file.Root
	top := t.newScope(Root, NoScope, root.ID)
	if file.IsModule() {
		top = t.newScope(Module, top, root.ID)
	}
	b.visitChildren(root, top)
	t.collectReferences()
	return t
}

type builder struct {
	t *Tree
}

func (b *builder) visitChildren(n *ast.Node, cur ID) {
	for _, c := range n.Children {
		if c.Named {
			b.visit(c, cur)
		}
	}
}

func (b *builder) visit(n *ast.Node, cur ID) {
	switch n.Kind {
	case ast.KindFunctionDecl, ast.KindGeneratorDecl:
		if name := n.ChildByField("name"); name != nil {
			if existing, ok := b.t.data[cur].bindings[name.Text()]; ok && b.isOverload(existing) {
				b.t.decls[name.ID] = existing
			} else {
				b.declare(cur, name, FunctionDecl)
			}
		}
		b.function(n, cur)

	case ast.KindFunctionExpr, ast.KindFunctionExprLegacy, ast.KindGeneratorExpr:
		parent := cur
		if name := n.ChildByField("name"); name != nil {
			// the name is visible only inside the expression
			parent = b.t.newScope(Function, cur, name.ID)
			b.declare(parent, name, FunctionDecl)
		}
		b.function(n, parent)

	case ast.KindArrowFunction, ast.KindMethod:
		b.function(n, cur)

	case ast.KindClassDecl, ast.KindAbstractClassDecl, ast.KindClassExpr:
		name := n.ChildByField("name")
		if name != nil && n.Kind != ast.KindClassExpr {
			b.declare(cur, name, ClassDecl)
		}
		cls := b.t.newScope(Class, cur, n.ID)
		if name != nil && n.Kind == ast.KindClassExpr {
			b.declare(cls, name, ClassDecl)
		}
		b.visitChildren(n, cls)

	case ast.KindStatementBlock:
		if p := n.Parent; p != nil && (ast.IsFunction(p.Kind) || p.Kind == ast.KindCatch) && n.Field == "body" {
			b.visitChildren(n, cur)
			return
		}
		b.visitChildren(n, b.t.newScope(Block, cur, n.ID))

	case ast.KindSwitchBody:
		b.visitChildren(n, b.t.newScope(Block, cur, n.ID))

	case ast.KindFor:
		b.visitChildren(n, b.t.newScope(Loop, cur, n.ID))

	case ast.KindForIn:
		loop := b.t.newScope(Loop, cur, n.ID)
		if kind := n.ChildByField("kind"); kind != nil {
			if left := n.ChildByField("left"); left != nil {
				b.declarePattern(loop, left, bindingKindOf(kind.Kind))
			}
		}
		b.visitChildren(n, loop)

	case ast.KindCatch:
		c := b.t.newScope(Block, cur, n.ID)
		if param := n.ChildByField("parameter"); param != nil {
			b.declarePattern(c, param, CatchClause)
		}
		b.visitChildren(n, c)

	case ast.KindVariableDecl:
		b.declarators(n, cur, Var)
		b.visitChildren(n, cur)

	case ast.KindLexicalDecl:
		kind := Let
		if n.HasToken("const") || n.HasToken("using") {
			kind = Const
		}
		b.declarators(n, cur, kind)
		b.visitChildren(n, cur)

	case ast.KindImport:
		b.imports(n, cur)

	case ast.KindTypeAlias, ast.KindInterface:
		if name := n.ChildByField("name"); name != nil {
			b.declare(cur, name, TypeOnly)
		}

	case ast.KindEnum:
		if name := n.ChildByField("name"); name != nil {
			b.declare(cur, name, Const)
		}
		b.visitChildren(n, cur)

	case ast.KindFunctionSignature:
		// overload signatures share the binding of the implementation
		if name := n.ChildByField("name"); name != nil {
			if _, exists := b.t.data[cur].bindings[name.Text()]; !exists {
				b.declare(cur, name, FunctionDecl)
			}
		}

	case ast.KindInternalModule, ast.KindModuleDecl:
		if name := n.ChildByField("name"); name != nil && name.Kind == ast.KindIdentifier {
			if _, exists := b.t.data[cur].bindings[name.Text()]; !exists {
				b.declare(cur, name, Var)
			}
		}
		if body := n.ChildByField("body"); body != nil {
			b.visitChildren(body, b.t.newScope(Block, cur, body.ID))
		}

	default:
		b.visitChildren(n, cur)
	}
}

// function opens a Function scope for n and declares its parameters.
func (b *builder) function(n *ast.Node, parent ID) {
	// computed method names are evaluated outside the function
	if name := n.ChildByField("name"); name != nil && n.Kind == ast.KindMethod {
		b.visit(name, parent)
	}

	fn := b.t.newScope(Function, parent, n.ID)
	if n.Kind == ast.KindArrowFunction {
		b.t.arrows[fn] = true
	}

	if param := n.ChildByField("parameter"); param != nil {
		b.declarePattern(fn, param, Param)
	}
	if params := n.ChildByField("parameters"); params != nil {
		for _, p := range params.NamedChildren() {
			b.declarePattern(fn, p, Param)
		}
		b.visitChildren(params, fn)
	}
	if body := n.ChildByField("body"); body != nil {
		b.visit(body, fn)
	}
}

func (b *builder) declarators(n *ast.Node, cur ID, kind BindingKind) {
	target := cur
	if kind == Var {
		target = b.hoistTarget(cur)
	}
	for _, d := range n.NamedChildren() {
		if d.Kind != ast.KindVariableDeclarator {
			continue
		}
		if name := d.ChildByField("name"); name != nil {
			b.declarePattern(target, name, kind)
		}
	}
}

func (b *builder) imports(n *ast.Node, cur ID) {
	clause := n.FirstNamedChild(ast.KindImportClause)
	if clause == nil {
		return
	}
	for _, c := range clause.NamedChildren() {
		switch c.Kind {
		case ast.KindIdentifier:
			b.declare(cur, c, Import)
		case ast.KindNamespaceImport:
			if id := c.FirstNamedChild(ast.KindIdentifier); id != nil {
				b.declare(cur, id, Import)
			}
		case ast.KindNamedImports:
			for _, spec := range c.NamedChildren() {
				if spec.Kind != ast.KindImportSpecifier {
					continue
				}
				local := spec.ChildByField("alias")
				if local == nil {
					local = spec.ChildByField("name")
				}
				if local != nil && local.Kind == ast.KindIdentifier {
					b.declare(cur, local, Import)
				}
			}
		}
	}
}

func (b *builder) hoistTarget(cur ID) ID {
	for id := cur; id.IsValid(); id = b.t.data[id].Parent {
		if b.t.data[id].IsHoistTarget() {
			return id
		}
	}
	return cur
}

func (b *builder) declarePattern(target ID, pattern *ast.Node, kind BindingKind) {
	if kind == Var {
		target = b.hoistTarget(target)
	}
	for _, id := range PatternNames(pattern) {
		b.declare(target, id, kind)
	}
}

func (b *builder) declare(target ID, ident *ast.Node, kind BindingKind) {
	s := &b.t.data[target]
	name := ident.Text()
	if existing, ok := s.bindings[name]; ok {
		b.t.redecls = append(b.t.redecls, Redeclaration{Binding: existing, Decl: ident.ID, Kind: kind})
		b.t.decls[ident.ID] = existing
		return
	}
	binding := &Binding{Name: name, Kind: kind, Decl: ident.ID, Scope: target}
	s.bindings[name] = binding
	s.order = append(s.order, binding)
	b.t.decls[ident.ID] = binding
}

func (b *builder) isOverload(binding *Binding) bool {
	decl := b.t.file.Node(binding.Decl)
	return decl.Parent != nil && decl.Parent.Kind == ast.KindFunctionSignature
}

func bindingKindOf(keyword string) BindingKind {
	switch keyword {
	case "let":
		return Let
	case "const", "using":
		return Const
	}
	return Var
}

// PatternNames returns the identifiers a binding pattern declares, in
// source order. Default values and computed keys are not included.
func PatternNames(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	var collect func(n *ast.Node)
	collect = func(n *ast.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case ast.KindIdentifier, ast.KindShorthandPattern:
			out = append(out, n)
		case ast.KindObjectPattern, ast.KindArrayPattern:
			for _, c := range n.NamedChildren() {
				collect(c)
			}
		case ast.KindPairPattern:
			collect(n.ChildByField("value"))
		case ast.KindRestPattern:
			collect(n.FirstNamedChild(""))
		case ast.KindAssignmentPattern, ast.KindObjectAssignmentPattern:
			collect(n.ChildByField("left"))
		case ast.KindRequiredParameter, ast.KindOptionalParameter:
			if p := n.ChildByField("pattern"); p != nil {
				collect(p)
			} else {
				collect(n.FirstNamedChild(""))
			}
		}
	}
	collect(n)
	return out
}
