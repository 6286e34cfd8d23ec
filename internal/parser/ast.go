// Package parser implements the Aeon recursive descent parser and its AST.
package parser

import (
	"fmt"
	"strings"

	"github.com/aeon-lang/aeon/internal/lexer"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span for this node
	GetSpan() lexer.Span
	// String returns a short string representation of the node
	String() string
}

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// ====== Program structure ======

// Body holds the declarations of a module (or of a bare file), one ordered
// sequence per declaration kind. Order within each sequence is observable
// and preserved by the pretty-printer.
type Body struct {
	Imports   []*Import
	Modules   []*Module
	Functions []*Function
	Structs   []*StructDecl
	Variables []*VarDecl
}

// Empty reports whether the body holds no declarations at all
func (b *Body) Empty() bool {
	return len(b.Imports) == 0 && len(b.Modules) == 0 &&
		len(b.Functions) == 0 && len(b.Structs) == 0 && len(b.Variables) == 0
}

// Ast is the root of a parsed source file. Root is the single top-level
// module when the file declares one; a module-less file leaves Root nil and
// carries its declarations in Decls.
type Ast struct {
	Span  lexer.Span
	Root  *Module
	Decls Body
}

func (a *Ast) GetSpan() lexer.Span { return a.Span }
func (a *Ast) String() string {
	if a.Root != nil {
		return fmt.Sprintf("Ast(module %s)", a.Root.Name)
	}
	return "Ast"
}

// Module represents a module declaration and its contents
type Module struct {
	Span          lexer.Span
	Name          string
	QualifiedName string
	Body          Body
}

func (m *Module) GetSpan() lexer.Span { return m.Span }
func (m *Module) String() string      { return fmt.Sprintf("module %s", m.Name) }

// Import records an import declaration; the path is kept verbatim and never
// resolved here.
type Import struct {
	Span lexer.Span
	Path string
}

func (i *Import) GetSpan() lexer.Span { return i.Span }
func (i *Import) String() string      { return fmt.Sprintf("import %q", i.Path) }

// Function represents a function declaration
type Function struct {
	Span          lexer.Span
	Name          string
	QualifiedName string
	SelfMut       bool // name carries the _mut suffix
	Parameters    []*Parameter
	ReturnType    *TypeRef // nil when the function returns nothing
	Body          *Block
}

func (f *Function) GetSpan() lexer.Span { return f.Span }
func (f *Function) String() string      { return fmt.Sprintf("fn %s", f.Name) }

// Parameter represents a single function parameter
type Parameter struct {
	Span lexer.Span
	Name string
	Type *TypeRef
}

func (p *Parameter) GetSpan() lexer.Span { return p.Span }
func (p *Parameter) String() string      { return fmt.Sprintf("%s: %s", p.Name, p.Type) }

// StructDecl represents a struct declaration. A "default struct" is the
// anonymous form inside a named module; it takes the module's name and is
// what Self refers to there.
type StructDecl struct {
	Span          lexer.Span
	Name          string
	QualifiedName string
	IsDefault     bool
	Fields        []*Field
}

func (s *StructDecl) GetSpan() lexer.Span { return s.Span }
func (s *StructDecl) String() string      { return fmt.Sprintf("struct %s", s.Name) }

// Field represents a struct field
type Field struct {
	Span lexer.Span
	Name string
	Type *TypeRef
}

func (f *Field) GetSpan() lexer.Span { return f.Span }
func (f *Field) String() string      { return fmt.Sprintf("%s: %s", f.Name, f.Type) }

// TypeRef references a type by name. Optional (?) and pointer (*) markers
// attach here, never to expressions. For Self, Name holds the resolved
// enclosing module name and IsSelf preserves the spelling.
type TypeRef struct {
	Span     lexer.Span
	Name     string // may be ::-qualified, e.g. "List::Node"
	Optional bool
	Pointer  bool
	IsSelf   bool
}

func (t *TypeRef) GetSpan() lexer.Span { return t.Span }
func (t *TypeRef) String() string {
	var sb strings.Builder
	if t.Optional && t.Pointer {
		sb.WriteString("?*")
	} else if t.Optional {
		sb.WriteString("?")
	} else if t.Pointer {
		sb.WriteString("*")
	}
	if t.IsSelf {
		sb.WriteString("Self")
	} else {
		sb.WriteString(t.Name)
	}
	return sb.String()
}

// ====== Statements ======

// VarDecl represents a variable declaration: `name := expr` or
// `name :mut = expr`. QualifiedName is set for module-level declarations.
type VarDecl struct {
	Span          lexer.Span
	Name          string
	QualifiedName string
	Mutable       bool
	Value         Expression
}

func (v *VarDecl) GetSpan() lexer.Span { return v.Span }
func (v *VarDecl) String() string {
	if v.Mutable {
		return fmt.Sprintf("%s :mut = %s", v.Name, v.Value)
	}
	return fmt.Sprintf("%s := %s", v.Name, v.Value)
}
func (v *VarDecl) statementNode() {}

// ExprStatement represents an expression used as a statement
type ExprStatement struct {
	Span lexer.Span
	Expr Expression
}

func (e *ExprStatement) GetSpan() lexer.Span { return e.Span }
func (e *ExprStatement) String() string      { return e.Expr.String() }
func (e *ExprStatement) statementNode()      {}

// Return represents a return statement with an optional value
type Return struct {
	Span  lexer.Span
	Value Expression // nil for a bare return
}

func (r *Return) GetSpan() lexer.Span { return r.Span }
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", r.Value)
}
func (r *Return) statementNode() {}

// Block represents a braced statement sequence. It introduces a lexical
// scope boundary but not a parser context frame.
type Block struct {
	Span       lexer.Span
	Statements []Statement
}

func (b *Block) GetSpan() lexer.Span { return b.Span }
func (b *Block) String() string      { return fmt.Sprintf("Block(%d)", len(b.Statements)) }
func (b *Block) statementNode()      {}

// If represents an if statement. Else is nil, a *Block, or a chained *If.
type If struct {
	Span lexer.Span
	Cond Expression
	Then *Block
	Else Statement
}

func (i *If) GetSpan() lexer.Span { return i.Span }
func (i *If) String() string      { return fmt.Sprintf("if %s", i.Cond) }
func (i *If) statementNode()      {}

// ====== Expressions ======

// LiteralKind identifies the kind of a literal value
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal represents a literal value. Value keeps the source spelling for
// numbers (so 0xFF survives a round trip) and the decoded text for strings.
type Literal struct {
	Span  lexer.Span
	Kind  LiteralKind
	Value string
}

func (l *Literal) GetSpan() lexer.Span { return l.Span }
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return fmt.Sprintf("%q", l.Value)
	}
	return l.Value
}
func (l *Literal) expressionNode() {}

// Identifier represents a name reference, possibly ::-qualified
type Identifier struct {
	Span lexer.Span
	Name string
}

func (i *Identifier) GetSpan() lexer.Span { return i.Span }
func (i *Identifier) String() string      { return i.Name }
func (i *Identifier) expressionNode()     {}

// Binary represents a binary operation
type Binary struct {
	Span  lexer.Span
	Op    string
	Left  Expression
	Right Expression
}

func (b *Binary) GetSpan() lexer.Span { return b.Span }
func (b *Binary) String() string      { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *Binary) expressionNode()     {}

// Unary represents a prefix operation (-, !, ?)
type Unary struct {
	Span    lexer.Span
	Op      string
	Operand Expression
}

func (u *Unary) GetSpan() lexer.Span { return u.Span }
func (u *Unary) String() string      { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (u *Unary) expressionNode()     {}

// AddressOf represents the &expr operator
type AddressOf struct {
	Span    lexer.Span
	Operand Expression
}

func (a *AddressOf) GetSpan() lexer.Span { return a.Span }
func (a *AddressOf) String() string      { return fmt.Sprintf("(&%s)", a.Operand) }
func (a *AddressOf) expressionNode()     {}

// Grouping represents a parenthesized expression
type Grouping struct {
	Span  lexer.Span
	Inner Expression
}

func (g *Grouping) GetSpan() lexer.Span { return g.Span }
func (g *Grouping) String() string      { return fmt.Sprintf("(%s)", g.Inner) }
func (g *Grouping) expressionNode()     {}

// FieldAccess represents receiver.field
type FieldAccess struct {
	Span     lexer.Span
	Receiver Expression
	Field    string
}

func (f *FieldAccess) GetSpan() lexer.Span { return f.Span }
func (f *FieldAccess) String() string      { return fmt.Sprintf("%s.%s", f.Receiver, f.Field) }
func (f *FieldAccess) expressionNode()     {}

// Call represents callee(args...)
type Call struct {
	Span   lexer.Span
	Callee Expression
	Args   []Expression
}

func (c *Call) GetSpan() lexer.Span { return c.Span }
func (c *Call) String() string      { return fmt.Sprintf("%s(...)", c.Callee) }
func (c *Call) expressionNode()     {}

// Index represents receiver[index]
type Index struct {
	Span     lexer.Span
	Receiver Expression
	Index    Expression
}

func (i *Index) GetSpan() lexer.Span { return i.Span }
func (i *Index) String() string      { return fmt.Sprintf("%s[%s]", i.Receiver, i.Index) }
func (i *Index) expressionNode()     {}

// FieldInit is one field: value pair of a struct literal
type FieldInit struct {
	Span  lexer.Span
	Name  string
	Value Expression
}

func (f *FieldInit) GetSpan() lexer.Span { return f.Span }
func (f *FieldInit) String() string      { return fmt.Sprintf("%s: %s", f.Name, f.Value) }

// StructLiteral represents TypeName { field: value, ... }
type StructLiteral struct {
	Span     lexer.Span
	TypeName string
	Fields   []*FieldInit
}

func (s *StructLiteral) GetSpan() lexer.Span { return s.Span }
func (s *StructLiteral) String() string      { return fmt.Sprintf("%s{...}", s.TypeName) }
func (s *StructLiteral) expressionNode()     {}

// Assign represents a statement-level reassignment `target = value`.
// It never participates in expression precedence.
type Assign struct {
	Span   lexer.Span
	Target Expression
	Value  Expression
}

func (a *Assign) GetSpan() lexer.Span { return a.Span }
func (a *Assign) String() string      { return fmt.Sprintf("(%s = %s)", a.Target, a.Value) }
func (a *Assign) expressionNode()     {}
