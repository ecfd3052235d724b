package eval

import (
	"rho/parser"
	"rho/types"
)

func stepLimitExceeded() types.Result {
	return types.ErrDetail(types.ErrInternalConsistency, "evaluation step limit exceeded")
}

// Node is one vertex of the executable graph. A graph is built once
// per source expression and replayed on every evaluation; Execute must
// not mutate the node.
type Node interface {
	Execute(ctx *types.EvalContext, env *Environment) types.Result
}

// ConstantNode yields a fixed value
type ConstantNode struct {
	Val types.Value
}

func (n *ConstantNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	return types.Ok(n.Val)
}

// ReadVariableNode reads a variable from the environment chain
type ReadVariableNode struct {
	Name string
	Src  parser.Position
}

func (n *ReadVariableNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	v, ok := env.Get(n.Name)
	if !ok {
		return types.ErrDetail(types.ErrVariableNotFound, n.Name)
	}
	return types.Ok(v)
}

// WriteVariableNode evaluates Rhs and binds it. Super selects <<-
// semantics. Assignments are invisible and yield the assigned value.
type WriteVariableNode struct {
	Name  string
	Rhs   Node
	Super bool
	Src   parser.Position
}

func (n *WriteVariableNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	res := n.Rhs.Execute(ctx, env)
	if !res.IsNormal() {
		return res
	}
	if n.Super {
		env.SetSuper(n.Name, res.Val)
	} else {
		env.Set(n.Name, res.Val)
	}
	return types.OkInvisible(res.Val)
}

// RemoveVariableNode unbinds a variable and yields NULL
type RemoveVariableNode struct {
	Name string
}

func (n *RemoveVariableNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	env.Remove(n.Name)
	return types.OkInvisible(types.Null)
}

// RemoveAndAnswerNode unbinds a variable and yields the value it held.
// Replacement sequences end with one of these so the whole expression
// is value-transparent to its right-hand side.
type RemoveAndAnswerNode struct {
	Name string
}

func (n *RemoveAndAnswerNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	v, ok := env.Get(n.Name)
	if !ok {
		return types.ErrDetail(types.ErrInternalConsistency, "replacement temporary missing: "+n.Name)
	}
	env.Remove(n.Name)
	return types.OkInvisible(v)
}

// SequenceNode executes its children in order and yields the last result
type SequenceNode struct {
	Nodes []Node
}

func (n *SequenceNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	res := types.Ok(types.Null)
	for _, child := range n.Nodes {
		res = child.Execute(ctx, env)
		if !res.IsNormal() {
			return res
		}
	}
	return res
}

// CallNode invokes a builtin function resolved at lowering time
type CallNode struct {
	Name     string
	Fn       types.BuiltinFunc
	Args     []Node
	ArgNames []string
	Src      parser.Position
}

func (n *CallNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	args := make([]types.Value, len(n.Args))
	for i, argNode := range n.Args {
		if argNode == nil {
			args[i] = types.Missing
			continue
		}
		res := argNode.Execute(ctx, env)
		if !res.IsNormal() {
			return res
		}
		args[i] = res.Val
	}
	return n.Fn(ctx, args, n.ArgNames)
}

// EnvCallNode invokes a builtin that needs access to the environment,
// such as rm
type EnvCallNode struct {
	Name     string
	Fn       EnvBuiltinFunc
	Args     []Node
	ArgNames []string
	Src      parser.Position
}

// EnvBuiltinFunc is the signature of environment-touching builtins
type EnvBuiltinFunc func(ctx *types.EvalContext, env *Environment, args []types.Value, names []string) types.Result

func (n *EnvCallNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	args := make([]types.Value, len(n.Args))
	for i, argNode := range n.Args {
		if argNode == nil {
			args[i] = types.Missing
			continue
		}
		res := argNode.Execute(ctx, env)
		if !res.IsNormal() {
			return res
		}
		args[i] = res.Val
	}
	return n.Fn(ctx, env, args, n.ArgNames)
}
