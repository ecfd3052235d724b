package parser

import "strings"

// Expr is the interface implemented by all expression nodes
type Expr interface {
	Pos() Position
	String() string
}

// Arg is a single argument in a call or index expression. A nil Value
// marks an elided argument, as in x[,2]. An empty Name marks a
// positional argument.
type Arg struct {
	Name  string
	Value Expr
}

func (a Arg) String() string {
	var sb strings.Builder
	if a.Name != "" {
		sb.WriteString(a.Name)
		sb.WriteString(" = ")
	}
	if a.Value != nil {
		sb.WriteString(a.Value.String())
	}
	return sb.String()
}

// LiteralExpr is a literal constant: a number, string, logical, NULL,
// or one of the typed NA forms
type LiteralExpr struct {
	Token Token
}

func (e *LiteralExpr) Pos() Position  { return e.Token.Position }
func (e *LiteralExpr) String() string { return e.Token.Value }

// IdentifierExpr is a variable reference
type IdentifierExpr struct {
	Token Token
	Name  string
}

func (e *IdentifierExpr) Pos() Position  { return e.Token.Position }
func (e *IdentifierExpr) String() string { return e.Name }

// UnaryExpr is a prefix operation such as -x
type UnaryExpr struct {
	Token   Token
	Op      string
	Operand Expr
}

func (e *UnaryExpr) Pos() Position  { return e.Token.Position }
func (e *UnaryExpr) String() string { return e.Op + e.Operand.String() }

// BinaryExpr is an infix operation such as a + b or 1:5
type BinaryExpr struct {
	Token Token
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Pos() Position { return e.Token.Position }
func (e *BinaryExpr) String() string {
	if e.Op == ":" {
		return e.Left.String() + ":" + e.Right.String()
	}
	return e.Left.String() + " " + e.Op + " " + e.Right.String()
}

// ParenExpr is a parenthesized expression
type ParenExpr struct {
	Token Token
	Inner Expr
}

func (e *ParenExpr) Pos() Position  { return e.Token.Position }
func (e *ParenExpr) String() string { return "(" + e.Inner.String() + ")" }

// BraceExpr is a braced sequence of expressions; the value of the
// sequence is the value of its last expression
type BraceExpr struct {
	Token Token
	Exprs []Expr
}

func (e *BraceExpr) Pos() Position { return e.Token.Position }
func (e *BraceExpr) String() string {
	parts := make([]string, len(e.Exprs))
	for i, ex := range e.Exprs {
		parts[i] = ex.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// CallExpr is a function call: f(a, b = 2)
type CallExpr struct {
	Token Token
	Name  string // non-empty for direct name calls
	Fn    Expr
	Args  []Arg
}

func (e *CallExpr) Pos() Position { return e.Token.Position }
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	callee := e.Name
	if callee == "" && e.Fn != nil {
		callee = e.Fn.String()
	}
	return callee + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpr is a vector access: x[i, j] (Subset true) or x[[i]]
// (Subset false)
type IndexExpr struct {
	Token  Token
	Target Expr
	Args   []Arg
	Subset bool
}

func (e *IndexExpr) Pos() Position { return e.Token.Position }
func (e *IndexExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	if e.Subset {
		return e.Target.String() + "[" + strings.Join(parts, ", ") + "]"
	}
	return e.Target.String() + "[[" + strings.Join(parts, ", ") + "]]"
}

// FieldExpr is a field access: x$name
type FieldExpr struct {
	Token  Token
	Target Expr
	Field  string
}

func (e *FieldExpr) Pos() Position  { return e.Token.Position }
func (e *FieldExpr) String() string { return e.Target.String() + "$" + e.Field }

// AssignExpr is an assignment. The target may be a plain identifier,
// an index expression, a field access, or a replacement-function call
// such as names(x) <- v.
type AssignExpr struct {
	Token  Token
	Target Expr
	Value  Expr
	Super  bool
}

func (e *AssignExpr) Pos() Position { return e.Token.Position }
func (e *AssignExpr) String() string {
	op := "<-"
	if e.Super {
		op = "<<-"
	}
	return e.Target.String() + " " + op + " " + e.Value.String()
}

// Program is a parsed sequence of top-level expressions
type Program struct {
	Exprs []Expr
}

func (p *Program) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n")
}
