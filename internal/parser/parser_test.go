package parser

import (
	"errors"
	"testing"

	"github.com/aeon-lang/aeon/internal/lexer"
)

func parse(t *testing.T, source string) *Ast {
	t.Helper()
	ast, err := ParseSource(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return ast
}

func parseErr(t *testing.T, source string) *ParseError {
	t.Helper()
	_, err := ParseSource(source)
	if err == nil {
		t.Fatalf("parse succeeded, expected error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error has wrong type: %T", err)
	}
	return perr
}

func TestParseModule(t *testing.T) {
	ast := parse(t, `module LinkedList {
  fn push(value: Int) {
    return
  }
}`)

	if ast.Root == nil {
		t.Fatalf("root module missing")
	}
	if ast.Root.Name != "LinkedList" {
		t.Errorf("module name wrong. expected=%q, got=%q", "LinkedList", ast.Root.Name)
	}
	if len(ast.Root.Body.Functions) != 1 {
		t.Fatalf("function count wrong. expected=1, got=%d", len(ast.Root.Body.Functions))
	}

	fn := ast.Root.Body.Functions[0]
	if fn.QualifiedName != "LinkedList.push" {
		t.Errorf("qualified name wrong. expected=%q, got=%q", "LinkedList.push", fn.QualifiedName)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "value" {
		t.Errorf("parameters wrong: %v", fn.Parameters)
	}
	if fn.Parameters[0].Type.Name != "Int" {
		t.Errorf("parameter type wrong. expected=%q, got=%q", "Int", fn.Parameters[0].Type.Name)
	}
}

func TestParseModuleImplicitBody(t *testing.T) {
	// a top-level module may omit braces; its body runs to end of input
	ast := parse(t, `module main

fn main() {
  x := 1
}`)

	if ast.Root == nil || ast.Root.Name != "main" {
		t.Fatalf("root module missing or misnamed: %v", ast.Root)
	}
	if len(ast.Root.Body.Functions) != 1 {
		t.Fatalf("implicit body functions wrong. expected=1, got=%d", len(ast.Root.Body.Functions))
	}
	if got := ast.Root.Body.Functions[0].QualifiedName; got != "main.main" {
		t.Errorf("qualified name wrong. expected=%q, got=%q", "main.main", got)
	}
}

func TestParseBareFile(t *testing.T) {
	ast := parse(t, `fn main() {
  x := 42
}`)

	if ast.Root != nil {
		t.Errorf("bare file produced a root module: %v", ast.Root)
	}
	if len(ast.Decls.Functions) != 1 {
		t.Fatalf("top-level functions wrong. expected=1, got=%d", len(ast.Decls.Functions))
	}
	if got := ast.Decls.Functions[0].QualifiedName; got != "main" {
		t.Errorf("unscoped qualified name wrong. expected=%q, got=%q", "main", got)
	}
}

func TestParseRequireModule(t *testing.T) {
	src := "fn main() {\n}"

	if _, err := ParseSourceWithConfig(src, Config{}); err != nil {
		t.Fatalf("permissive config rejected bare file: %v", err)
	}

	_, err := ParseSourceWithConfig(src, Config{RequireModule: true})
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != KindModuleRequired {
		t.Fatalf("strict config error wrong. got %v", err)
	}
	if perr.Found != lexer.TokenFn.String() {
		t.Errorf("found wrong. expected=%q, got=%q", lexer.TokenFn, perr.Found)
	}
	if got := perr.Pos.String(); got != "1:1" {
		t.Errorf("position wrong. expected=%q, got=%q", "1:1", got)
	}
}

func TestParseNestedModules(t *testing.T) {
	ast := parse(t, `module LinkedList {
  module Node {
    struct {
      value: Int,
      next: ?*Self,
    }
  }
}`)

	root := ast.Root
	if len(root.Body.Modules) != 1 {
		t.Fatalf("nested module count wrong. expected=1, got=%d", len(root.Body.Modules))
	}
	node := root.Body.Modules[0]
	if node.QualifiedName != "LinkedList.Node" {
		t.Errorf("nested qualified name wrong. expected=%q, got=%q", "LinkedList.Node", node.QualifiedName)
	}
	if len(node.Body.Structs) != 1 {
		t.Fatalf("struct count wrong. expected=1, got=%d", len(node.Body.Structs))
	}

	st := node.Body.Structs[0]
	if !st.IsDefault || st.Name != "Node" {
		t.Errorf("default struct wrong. name=%q default=%v", st.Name, st.IsDefault)
	}
	if st.QualifiedName != "LinkedList.Node" {
		t.Errorf("default struct qualified name wrong. expected=%q, got=%q",
			"LinkedList.Node", st.QualifiedName)
	}
	if len(st.Fields) != 2 {
		t.Fatalf("field count wrong. expected=2, got=%d", len(st.Fields))
	}

	next := st.Fields[1].Type
	if !next.Optional || !next.Pointer || !next.IsSelf {
		t.Errorf("?*Self flags wrong: %+v", next)
	}
	if next.Name != "Node" {
		t.Errorf("Self resolved wrong. expected=%q, got=%q", "Node", next.Name)
	}
}

func TestParseDefaultStructOutsideModule(t *testing.T) {
	perr := parseErr(t, "struct { x: Int }")
	if perr.Kind != KindExpectedIdentifier {
		t.Errorf("error kind wrong. expected=%q, got=%q", KindExpectedIdentifier, perr.Kind)
	}
}

func TestParseImports(t *testing.T) {
	ast := parse(t, `module app {
  import "std/io"
  import "collections/list"
}`)

	imports := ast.Root.Body.Imports
	if len(imports) != 2 {
		t.Fatalf("import count wrong. expected=2, got=%d", len(imports))
	}
	if imports[0].Path != "std/io" || imports[1].Path != "collections/list" {
		t.Errorf("import paths wrong: %q, %q", imports[0].Path, imports[1].Path)
	}
}

func TestParseVariableDeclarations(t *testing.T) {
	tests := []struct {
		input   string
		name    string
		mutable bool
	}{
		{"x := 42", "x", false},
		{"count :mut = 0", "count", true},
		{`greeting := "hello"`, "greeting", false},
	}

	for i, tt := range tests {
		ast := parse(t, tt.input)
		if len(ast.Decls.Variables) != 1 {
			t.Fatalf("tests[%d] - variable count wrong. expected=1, got=%d",
				i, len(ast.Decls.Variables))
		}
		decl := ast.Decls.Variables[0]
		if decl.Name != tt.name {
			t.Fatalf("tests[%d] - name wrong. expected=%q, got=%q", i, tt.name, decl.Name)
		}
		if decl.Mutable != tt.mutable {
			t.Fatalf("tests[%d] - mutability wrong. expected=%v, got=%v",
				i, tt.mutable, decl.Mutable)
		}
	}
}

func TestParseReassignmentStatement(t *testing.T) {
	ast := parse(t, `fn bump() {
  count :mut = 0
  count = count + 1
}`)

	stmts := ast.Decls.Functions[0].Body.Statements
	if len(stmts) != 2 {
		t.Fatalf("statement count wrong. expected=2, got=%d", len(stmts))
	}

	es, ok := stmts[1].(*ExprStatement)
	if !ok {
		t.Fatalf("statement type wrong: %T", stmts[1])
	}
	assign, ok := es.Expr.(*Assign)
	if !ok {
		t.Fatalf("expression type wrong: %T", es.Expr)
	}
	target, ok := assign.Target.(*Identifier)
	if !ok || target.Name != "count" {
		t.Errorf("assignment target wrong: %v", assign.Target)
	}
	if _, ok := assign.Value.(*Binary); !ok {
		t.Errorf("assignment value wrong: %T", assign.Value)
	}
}

func TestParseChainedAssignmentIsRightAssoc(t *testing.T) {
	ast := parse(t, `fn f() {
  a = b = c
}`)

	es := ast.Decls.Functions[0].Body.Statements[0].(*ExprStatement)
	outer, ok := es.Expr.(*Assign)
	if !ok {
		t.Fatalf("outer expression wrong: %T", es.Expr)
	}
	if id, ok := outer.Target.(*Identifier); !ok || id.Name != "a" {
		t.Fatalf("outer target wrong: %v", outer.Target)
	}
	inner, ok := outer.Value.(*Assign)
	if !ok {
		t.Fatalf("chain not right-associative: %T", outer.Value)
	}
	if id, ok := inner.Target.(*Identifier); !ok || id.Name != "b" {
		t.Errorf("inner target wrong: %v", inner.Target)
	}
}

func TestParseReturnForms(t *testing.T) {
	ast := parse(t, `fn f() Int {
  if done {
    return
  }
  return 42
}`)

	fn := ast.Decls.Functions[0]
	if fn.ReturnType == nil || fn.ReturnType.Name != "Int" {
		t.Fatalf("return type wrong: %v", fn.ReturnType)
	}

	ifStmt := fn.Body.Statements[0].(*If)
	bare := ifStmt.Then.Statements[0].(*Return)
	if bare.Value != nil {
		t.Errorf("bare return carries a value: %v", bare.Value)
	}

	valued := fn.Body.Statements[1].(*Return)
	lit, ok := valued.Value.(*Literal)
	if !ok || lit.Value != "42" {
		t.Errorf("return value wrong: %v", valued.Value)
	}
}

func TestParseIfElseChain(t *testing.T) {
	ast := parse(t, `fn f() {
  if a {
    x()
  } else if b {
    y()
  } else {
    z()
  }
}`)

	first := ast.Decls.Functions[0].Body.Statements[0].(*If)
	second, ok := first.Else.(*If)
	if !ok {
		t.Fatalf("else-if not chained: %T", first.Else)
	}
	if _, ok := second.Else.(*Block); !ok {
		t.Fatalf("final else wrong: %T", second.Else)
	}
}

func TestParseIfConditionIsNotStructLiteral(t *testing.T) {
	// plain `if x {` must read the brace as the then-block
	ast := parse(t, `fn f() {
  if x {
    y()
  }
}`)

	ifStmt := ast.Decls.Functions[0].Body.Statements[0].(*If)
	cond, ok := ifStmt.Cond.(*Identifier)
	if !ok || cond.Name != "x" {
		t.Fatalf("condition wrong: %v", ifStmt.Cond)
	}
	if len(ifStmt.Then.Statements) != 1 {
		t.Errorf("then-block statements wrong. expected=1, got=%d", len(ifStmt.Then.Statements))
	}
}

func TestParseIfConditionParensReenableStructLiterals(t *testing.T) {
	ast := parse(t, `fn f() {
  if (Point { x: 0 }).valid {
    y()
  }
}`)

	ifStmt := ast.Decls.Functions[0].Body.Statements[0].(*If)
	fa, ok := ifStmt.Cond.(*FieldAccess)
	if !ok {
		t.Fatalf("condition wrong: %T", ifStmt.Cond)
	}
	grp, ok := fa.Receiver.(*Grouping)
	if !ok {
		t.Fatalf("receiver wrong: %T", fa.Receiver)
	}
	if _, ok := grp.Inner.(*StructLiteral); !ok {
		t.Errorf("grouped expression wrong: %T", grp.Inner)
	}
}

func TestParseFunctionMutSuffix(t *testing.T) {
	ast := parse(t, `module List {
  fn push_mut(value: Int) {
  }
  fn len() Int {
    return 0
  }
}`)

	fns := ast.Root.Body.Functions
	if !fns[0].SelfMut {
		t.Errorf("push_mut not flagged mutating")
	}
	if fns[0].Name != "push_mut" {
		t.Errorf("suffix stripped from name: %q", fns[0].Name)
	}
	if fns[1].SelfMut {
		t.Errorf("len flagged mutating")
	}
}

func TestParseTypeRefs(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		optional bool
		pointer  bool
	}{
		{"fn f(x: Int) {}", "Int", false, false},
		{"fn f(x: ?Int) {}", "Int", true, false},
		{"fn f(x: *Node) {}", "Node", false, true},
		{"fn f(x: ?*Node) {}", "Node", true, true},
		{"fn f(x: List::Node) {}", "List::Node", false, false},
		{"fn f(x: ?*List::Node) {}", "List::Node", true, true},
	}

	for i, tt := range tests {
		ast := parse(t, tt.input)
		typ := ast.Decls.Functions[0].Parameters[0].Type
		if typ.Name != tt.name {
			t.Fatalf("tests[%d] - type name wrong. expected=%q, got=%q", i, tt.name, typ.Name)
		}
		if typ.Optional != tt.optional || typ.Pointer != tt.pointer {
			t.Fatalf("tests[%d] - markers wrong. expected=(%v,%v), got=(%v,%v)",
				i, tt.optional, tt.pointer, typ.Optional, typ.Pointer)
		}
	}
}

func TestParseErrorPositions(t *testing.T) {
	tests := []struct {
		input string
		kind  ParseErrorKind
		pos   string
	}{
		{"fn (", KindExpectedIdentifier, "1:4"},
		{"fn f(x Int) {}", KindUnexpectedToken, "1:8"},
		{"fn f(x: ) {}", KindExpectedType, "1:9"},
		{"module {", KindExpectedIdentifier, "1:8"},
		{"x := ", KindUnexpectedEndOfInput, "1:6"},
	}

	for i, tt := range tests {
		perr := parseErr(t, tt.input)
		if perr.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q", i, tt.kind, perr.Kind)
		}
		if got := perr.Pos.String(); got != tt.pos {
			t.Fatalf("tests[%d] - position wrong. expected=%q, got=%q", i, tt.pos, got)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	src := `module List {
  fn push_mut(value: Int) {
    if head == null {
      head = Node { value: value, next: null }
    }
  }
}`

	first := parse(t, src)
	second := parse(t, src)
	if !Equal(first, second) {
		t.Errorf("two parses of the same source differ")
	}
}

func TestParseLexErrorPropagates(t *testing.T) {
	_, err := ParseSource(`x := "oops`)
	var lerr *lexer.LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("lex error not propagated: %v", err)
	}
	if lerr.Kind != lexer.UnterminatedString {
		t.Errorf("lex error kind wrong. expected=%q, got=%q", lexer.UnterminatedString, lerr.Kind)
	}
}
