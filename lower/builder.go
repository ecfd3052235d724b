// Package lower turns parsed expressions into executable node trees.
// Plain expressions lower one-to-one; assignments to anything but a
// bare variable lower into the replacement sequence built in
// replacement.go.
package lower

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/segmentio/ksuid"
	"go.uber.org/multierr"

	"rho/builtins"
	"rho/eval"
	"rho/parser"
	"rho/trace"
	"rho/types"
)

// Builder lowers a program against a builtin registry. A builder keeps
// a monotonic temporary counter so replacement sequences nested inside
// one another never reuse a temporary name.
type Builder struct {
	reg      *builtins.Registry
	tracer   *trace.Tracer
	unit     string
	tmpCount int
	errs     error
}

// NewBuilder creates a builder over the given registry
func NewBuilder(reg *builtins.Registry) *Builder {
	return &Builder{
		reg:    reg,
		tracer: trace.Get(),
		unit:   ksuid.New().String(),
	}
}

// LowerProgram lowers all top-level expressions into a sequence.
// All lowering diagnostics are collected and returned together.
func (b *Builder) LowerProgram(prog *parser.Program) (eval.Node, error) {
	b.errs = nil
	b.tracer.LoweringUnit(b.unit, prog.String())
	nodes := make([]eval.Node, len(prog.Exprs))
	for i, expr := range prog.Exprs {
		nodes[i] = b.lowerExpr(expr)
	}
	if b.errs != nil {
		return nil, b.errs
	}
	return &eval.SequenceNode{Nodes: nodes}, nil
}

// LowerExpr lowers a single expression
func (b *Builder) LowerExpr(expr parser.Expr) (eval.Node, error) {
	b.errs = nil
	node := b.lowerExpr(expr)
	if b.errs != nil {
		return nil, b.errs
	}
	return node, nil
}

// FirstCondition extracts the first raised condition from a lowering
// error, or nil when the error carries none
func FirstCondition(err error) *types.RError {
	for _, e := range multierr.Errors(err) {
		for e != nil {
			if rerr, ok := e.(*types.RError); ok {
				return rerr
			}
			u, ok := e.(interface{ Unwrap() error })
			if !ok {
				break
			}
			e = u.Unwrap()
		}
	}
	return nil
}

// record collects a lowering diagnostic and returns a placeholder so
// lowering can continue and report everything at once
func (b *Builder) record(err error, pos parser.Position) eval.Node {
	b.errs = multierr.Append(b.errs,
		fmt.Errorf("line %d:%d: %w", pos.Line, pos.Column, err))
	return &eval.ConstantNode{Val: types.Null}
}

func (b *Builder) lowerExpr(expr parser.Expr) eval.Node {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		v, err := literalValue(e.Token)
		if err != nil {
			return b.record(err, e.Pos())
		}
		return &eval.ConstantNode{Val: v}
	case *parser.IdentifierExpr:
		return &eval.ReadVariableNode{Name: e.Name, Src: e.Pos()}
	case *parser.UnaryExpr:
		return &eval.NegateNode{Op: e.Op, Operand: b.lowerExpr(e.Operand), Src: e.Pos()}
	case *parser.BinaryExpr:
		if e.Op == ":" {
			return &eval.RangeNode{Low: b.lowerExpr(e.Left), High: b.lowerExpr(e.Right), Src: e.Pos()}
		}
		return &eval.ArithNode{Op: e.Op, Left: b.lowerExpr(e.Left), Right: b.lowerExpr(e.Right), Src: e.Pos()}
	case *parser.ParenExpr:
		return b.lowerExpr(e.Inner)
	case *parser.BraceExpr:
		nodes := make([]eval.Node, len(e.Exprs))
		for i, inner := range e.Exprs {
			nodes[i] = b.lowerExpr(inner)
		}
		return &eval.SequenceNode{Nodes: nodes}
	case *parser.FieldExpr:
		return &eval.AccessFieldNode{Target: b.lowerExpr(e.Target), Field: e.Field, Src: e.Pos()}
	case *parser.IndexExpr:
		return b.lowerIndex(e)
	case *parser.CallExpr:
		return b.lowerCall(e)
	case *parser.AssignExpr:
		return b.lowerAssign(e)
	}
	return b.record(fmt.Errorf("cannot lower expression %q", expr.String()), expr.Pos())
}

// lowerIndex lowers x[...] and x[[...]]. The drop= and exact= named
// arguments are stripped off the subscript list here; everything else,
// including elided subscripts, goes through as-is.
func (b *Builder) lowerIndex(e *parser.IndexExpr) eval.Node {
	subs, drop, exact := b.lowerSubscripts(e)
	return &eval.AccessVectorNode{
		Target:     b.lowerExpr(e.Target),
		Subscripts: subs,
		Subset:     e.Subset,
		Drop:       drop,
		Exact:      exact,
		Src:        e.Pos(),
	}
}

func (b *Builder) lowerSubscripts(e *parser.IndexExpr) (subs []eval.Node, drop, exact bool) {
	drop, exact = true, true
	for _, arg := range e.Args {
		switch {
		case e.Subset && arg.Name == "drop":
			drop = b.literalLogical(arg, e.Pos())
		case !e.Subset && arg.Name == "exact":
			exact = b.literalLogical(arg, e.Pos())
		case arg.Value == nil:
			subs = append(subs, nil)
		default:
			subs = append(subs, b.lowerExpr(arg.Value))
		}
	}
	return subs, drop, exact
}

// literalLogical reads a literal TRUE/FALSE option such as drop=FALSE
func (b *Builder) literalLogical(arg parser.Arg, pos parser.Position) bool {
	if lit, ok := arg.Value.(*parser.LiteralExpr); ok {
		switch lit.Token.Type {
		case parser.TOKEN_TRUE:
			return true
		case parser.TOKEN_FALSE:
			return false
		}
	}
	b.record(fmt.Errorf("invalid '%s' argument", arg.Name), pos)
	return true
}

// lowerCall lowers a direct call by name against the registry. rm is
// handled apart because it consumes the names of its arguments, not
// their values.
func (b *Builder) lowerCall(e *parser.CallExpr) eval.Node {
	if e.Name == "" {
		return b.record(fmt.Errorf("computed function calls are not supported"), e.Pos())
	}
	if e.Name == "rm" {
		return b.lowerRemove(e)
	}
	fn, ok := b.reg.Lookup(e.Name)
	if !ok {
		return b.record(b.unknownFunction(e.Name), e.Pos())
	}
	args := make([]eval.Node, len(e.Args))
	argNames := make([]string, len(e.Args))
	for i, arg := range e.Args {
		argNames[i] = arg.Name
		if arg.Value == nil {
			continue
		}
		args[i] = b.lowerExpr(arg.Value)
	}
	b.tracer.Call(b.unit, e.Name, len(args))
	return &eval.CallNode{Name: e.Name, Fn: fn.Fn, Args: args, ArgNames: argNames, Src: e.Pos()}
}

// lowerRemove lowers rm(x, y, "z"): each argument must be a symbol or a
// character literal, and only its name reaches the builtin
func (b *Builder) lowerRemove(e *parser.CallExpr) eval.Node {
	args := make([]eval.Node, len(e.Args))
	for i, arg := range e.Args {
		var name string
		switch v := arg.Value.(type) {
		case *parser.IdentifierExpr:
			name = v.Name
		case *parser.LiteralExpr:
			if v.Token.Type != parser.TOKEN_STRING {
				return b.record(fmt.Errorf("... must contain names or character strings"), e.Pos())
			}
			name = v.Token.Literal
		default:
			return b.record(fmt.Errorf("... must contain names or character strings"), e.Pos())
		}
		args[i] = &eval.ConstantNode{Val: types.NewStrScalar(name)}
	}
	b.tracer.Call(b.unit, "rm", len(args))
	return &eval.EnvCallNode{
		Name:     "rm",
		Fn:       builtins.RemoveVars,
		Args:     args,
		ArgNames: make([]string, len(args)),
		Src:      e.Pos(),
	}
}

// unknownFunction builds the not-found condition, with a closest-match
// hint when the registry has a near miss
func (b *Builder) unknownFunction(name string) error {
	rerr := &types.RError{Code: types.ErrFunctionNotFound, Detail: name}
	best, bestDist := "", 3
	for _, candidate := range b.reg.Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best != "" {
		return fmt.Errorf("%w (did you mean %q?)", rerr, best)
	}
	return rerr
}

// lowerAssign lowers an assignment. A bare variable target writes
// directly; anything else goes through the replacement sequence.
func (b *Builder) lowerAssign(e *parser.AssignExpr) eval.Node {
	target := unwrapParens(e.Target)
	if ident, ok := target.(*parser.IdentifierExpr); ok {
		return &eval.WriteVariableNode{
			Name:  ident.Name,
			Rhs:   b.lowerExpr(e.Value),
			Super: e.Super,
			Src:   e.Pos(),
		}
	}
	return b.lowerReplacement(e)
}

func unwrapParens(expr parser.Expr) parser.Expr {
	for {
		p, ok := expr.(*parser.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.Inner
	}
}

// literalValue converts a literal token to its runtime value
func literalValue(tok parser.Token) (types.Value, error) {
	switch tok.Type {
	case parser.TOKEN_NUM:
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed numeric literal %q", tok.Value)
		}
		return types.NewDoubleScalar(f), nil
	case parser.TOKEN_INT:
		n, err := strconv.Atoi(strings.TrimSuffix(tok.Value, "L"))
		if err != nil {
			return nil, fmt.Errorf("malformed integer literal %q", tok.Value)
		}
		return types.NewIntScalar(n), nil
	case parser.TOKEN_COMPLEX:
		f, err := strconv.ParseFloat(strings.TrimSuffix(tok.Value, "i"), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed complex literal %q", tok.Value)
		}
		return types.NewComplexScalar(complex(0, f)), nil
	case parser.TOKEN_STRING:
		return types.NewStrScalar(tok.Literal), nil
	case parser.TOKEN_NULL:
		return types.Null, nil
	case parser.TOKEN_TRUE:
		return types.NewLogicalScalar(true), nil
	case parser.TOKEN_FALSE:
		return types.NewLogicalScalar(false), nil
	case parser.TOKEN_NA:
		return types.NewLogicalNA(), nil
	case parser.TOKEN_NA_INT:
		return types.NewIntScalar(types.NAInt), nil
	case parser.TOKEN_NA_REAL:
		return types.NewDoubleScalar(types.NADouble()), nil
	case parser.TOKEN_NA_STR:
		return types.NewStrNA(), nil
	case parser.TOKEN_INF:
		return types.NewDoubleScalar(math.Inf(1)), nil
	case parser.TOKEN_NAN:
		return types.NewDoubleScalar(types.NADouble()), nil
	}
	return nil, fmt.Errorf("unexpected literal token %q", tok.Value)
}
