package lower

import (
	"fmt"

	"rho/eval"
	"rho/parser"
	"rho/types"
)

// lowerReplacement lowers an assignment whose target is an index
// expression, a field access, or a replacement-function call. The
// result is a five-step sequence over two hidden temporaries:
//
//	`*rhsN*` <- value
//	`*tmpN*` <- root
//	root     <- newWhole(`*tmpN*`)
//	rm(`*tmpN*`)
//	answer and rm `*rhsN*`
//
// so the assignment evaluates the right-hand side exactly once, reads
// the root exactly once, and yields the right-hand side invisibly.
// The temporary counter is per-builder, so a replacement nested inside
// another one (in a subscript, say) gets fresh names.
func (b *Builder) lowerReplacement(e *parser.AssignExpr) eval.Node {
	target := unwrapParens(e.Target)
	root, ok := rootVariable(target)
	if !ok {
		return b.record(&types.RError{Code: types.ErrInvalidReplacementTarget}, e.Pos())
	}

	b.tmpCount++
	rhsTmp := fmt.Sprintf("*rhs%d*", b.tmpCount)
	valTmp := fmt.Sprintf("*tmp%d*", b.tmpCount)

	newWhole := b.buildNewWhole(target, valTmp,
		&eval.ReadVariableNode{Name: rhsTmp, Src: e.Pos()})

	b.tracer.Replacement(b.unit, target.String(), []string{rhsTmp, valTmp})
	return &eval.SequenceNode{Nodes: []eval.Node{
		&eval.WriteVariableNode{Name: rhsTmp, Rhs: b.lowerExpr(e.Value), Src: e.Pos()},
		&eval.WriteVariableNode{Name: valTmp, Rhs: &eval.ReadVariableNode{Name: root, Src: e.Pos()}, Src: e.Pos()},
		&eval.WriteVariableNode{Name: root, Rhs: newWhole, Super: e.Super, Src: e.Pos()},
		&eval.RemoveVariableNode{Name: valTmp},
		&eval.RemoveAndAnswerNode{Name: rhsTmp},
	}}
}

// rootVariable finds the variable ultimately assigned through a
// replacement target. For a replacement-function call the root lives in
// the first argument: names(x)[2] <- v updates x.
func rootVariable(target parser.Expr) (string, bool) {
	switch t := unwrapParens(target).(type) {
	case *parser.IdentifierExpr:
		return t.Name, true
	case *parser.IndexExpr:
		return rootVariable(t.Target)
	case *parser.FieldExpr:
		return rootVariable(t.Target)
	case *parser.CallExpr:
		if t.Name != "" {
			if inner := firstArg(t); inner != nil {
				return rootVariable(inner)
			}
		}
		return "", false
	}
	return "", false
}

func firstArg(call *parser.CallExpr) parser.Expr {
	if len(call.Args) == 0 || call.Args[0].Value == nil {
		return nil
	}
	return call.Args[0].Value
}

// buildNewWhole builds the node computing the new value of the root
// variable. Each level of the target wraps the value one update deeper:
// the update for the outermost selector runs first, and its result
// becomes the replacement value for the level above it.
func (b *Builder) buildNewWhole(target parser.Expr, valTmp string, value eval.Node) eval.Node {
	switch t := unwrapParens(target).(type) {
	case *parser.IdentifierExpr:
		return value
	case *parser.IndexExpr:
		subs, _, _ := b.lowerSubscripts(t)
		update := &eval.UpdateVectorNode{
			Target:     b.currentNode(t.Target, valTmp),
			Subscripts: subs,
			Subset:     t.Subset,
			Value:      value,
			Src:        t.Pos(),
		}
		return b.buildNewWhole(t.Target, valTmp, update)
	case *parser.FieldExpr:
		update := &eval.UpdateFieldNode{
			Target: b.currentNode(t.Target, valTmp),
			Field:  t.Field,
			Value:  value,
			Src:    t.Pos(),
		}
		return b.buildNewWhole(t.Target, valTmp, update)
	case *parser.CallExpr:
		inner := firstArg(t)
		if t.Name == "" || inner == nil {
			return b.record(&types.RError{Code: types.ErrInvalidReplacementTarget}, t.Pos())
		}
		replacer := t.Name + "<-"
		fn, ok := b.reg.Lookup(replacer)
		if !ok {
			return b.record(b.unknownFunction(replacer), t.Pos())
		}
		args := []eval.Node{b.currentNode(inner, valTmp)}
		argNames := []string{t.Args[0].Name}
		for _, arg := range t.Args[1:] {
			if arg.Value == nil {
				args = append(args, nil)
			} else {
				args = append(args, b.lowerExpr(arg.Value))
			}
			argNames = append(argNames, arg.Name)
		}
		args = append(args, value)
		argNames = append(argNames, "value")
		call := &eval.CallNode{Name: replacer, Fn: fn.Fn, Args: args, ArgNames: argNames, Src: t.Pos()}
		b.tracer.Call(b.unit, replacer, len(args))
		return b.buildNewWhole(inner, valTmp, call)
	}
	return b.record(&types.RError{Code: types.ErrInvalidReplacementTarget}, target.Pos())
}

// currentNode lowers a replacement-target prefix as a read of its
// current value: the root variable reads from the captured temporary,
// and every selector above it reads through the ordinary access nodes.
func (b *Builder) currentNode(target parser.Expr, valTmp string) eval.Node {
	switch t := unwrapParens(target).(type) {
	case *parser.IdentifierExpr:
		return &eval.ReadVariableNode{Name: valTmp, Src: t.Pos()}
	case *parser.IndexExpr:
		subs, drop, exact := b.lowerSubscripts(t)
		return &eval.AccessVectorNode{
			Target:     b.currentNode(t.Target, valTmp),
			Subscripts: subs,
			Subset:     t.Subset,
			Drop:       drop,
			Exact:      exact,
			Src:        t.Pos(),
		}
	case *parser.FieldExpr:
		return &eval.AccessFieldNode{Target: b.currentNode(t.Target, valTmp), Field: t.Field, Src: t.Pos()}
	case *parser.CallExpr:
		inner := firstArg(t)
		if t.Name == "" || inner == nil {
			return b.record(&types.RError{Code: types.ErrInvalidReplacementTarget}, t.Pos())
		}
		fn, ok := b.reg.Lookup(t.Name)
		if !ok {
			return b.record(b.unknownFunction(t.Name), t.Pos())
		}
		args := []eval.Node{b.currentNode(inner, valTmp)}
		argNames := []string{t.Args[0].Name}
		for _, arg := range t.Args[1:] {
			if arg.Value == nil {
				args = append(args, nil)
			} else {
				args = append(args, b.lowerExpr(arg.Value))
			}
			argNames = append(argNames, arg.Name)
		}
		return &eval.CallNode{Name: t.Name, Fn: fn.Fn, Args: args, ArgNames: argNames, Src: t.Pos()}
	}
	return b.record(&types.RError{Code: types.ErrInvalidReplacementTarget}, target.Pos())
}
