package eval

import (
	"rho/parser"
	"rho/types"
)

// ArithNode is a binary arithmetic operation with recycling
type ArithNode struct {
	Op    string
	Left  Node
	Right Node
	Src   parser.Position
}

func (n *ArithNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	left := n.Left.Execute(ctx, env)
	if !left.IsNormal() {
		return left
	}
	right := n.Right.Execute(ctx, env)
	if !right.IsNormal() {
		return right
	}
	return arith(n.Op, left.Val, right.Val)
}

func arith(op string, left, right types.Value) types.Result {
	lv, lok := numericOperand(left)
	rv, rok := numericOperand(right)
	if !lok || !rok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"non-numeric argument to binary operator")
	}
	if lv.Length() == 0 || rv.Length() == 0 {
		return types.Ok(types.NewDoubleVector(nil))
	}

	// integer arithmetic stays integral except for division
	if lv.Type() == types.TYPE_INT && rv.Type() == types.TYPE_INT && op != "/" {
		li := lv.(*types.IntVector)
		ri := rv.(*types.IntVector)
		n := maxLen(li.Length(), ri.Length())
		data := make([]int, n)
		for i := 0; i < n; i++ {
			a := li.At(i%li.Length() + 1)
			b := ri.At(i%ri.Length() + 1)
			if types.IsNAInt(a) || types.IsNAInt(b) {
				data[i] = types.NAInt
				continue
			}
			switch op {
			case "+":
				data[i] = a + b
			case "-":
				data[i] = a - b
			case "*":
				data[i] = a * b
			}
		}
		return types.Ok(types.NewIntVector(data))
	}

	ld, ok := types.CoerceVector(lv, types.TYPE_DOUBLE)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"non-numeric argument to binary operator")
	}
	rd, ok := types.CoerceVector(rv, types.TYPE_DOUBLE)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch,
			"non-numeric argument to binary operator")
	}
	lf := ld.(*types.DoubleVector)
	rf := rd.(*types.DoubleVector)
	n := maxLen(lf.Length(), rf.Length())
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		a := lf.At(i%lf.Length() + 1)
		b := rf.At(i%rf.Length() + 1)
		switch op {
		case "+":
			data[i] = a + b
		case "-":
			data[i] = a - b
		case "*":
			data[i] = a * b
		case "/":
			data[i] = a / b
		}
	}
	return types.Ok(types.NewDoubleVector(data))
}

// numericOperand accepts the kinds arithmetic is defined over,
// widening logicals to integers
func numericOperand(v types.Value) (types.Vector, bool) {
	switch val := v.(type) {
	case *types.IntVector, *types.DoubleVector:
		return val.(types.Vector), true
	case *types.LogicalVector:
		iv, ok := types.CoerceVector(val, types.TYPE_INT)
		return iv, ok
	}
	return nil, false
}

func maxLen(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NegateNode is unary minus (and plus, which is the identity)
type NegateNode struct {
	Op      string
	Operand Node
	Src     parser.Position
}

func (n *NegateNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	res := n.Operand.Execute(ctx, env)
	if !res.IsNormal() || n.Op == "+" {
		return res
	}
	switch v := res.Val.(type) {
	case *types.IntVector:
		data := make([]int, v.Length())
		for i := 1; i <= v.Length(); i++ {
			if v.NAAt(i) {
				data[i-1] = types.NAInt
			} else {
				data[i-1] = -v.At(i)
			}
		}
		return types.Ok(types.NewIntVector(data))
	case *types.DoubleVector:
		data := make([]float64, v.Length())
		for i := 1; i <= v.Length(); i++ {
			data[i-1] = -v.At(i)
		}
		return types.Ok(types.NewDoubleVector(data))
	case *types.ComplexVector:
		data := make([]complex128, v.Length())
		for i := 1; i <= v.Length(); i++ {
			data[i-1] = -v.Data()[i-1]
		}
		return types.Ok(types.NewComplexVector(data))
	case *types.LogicalVector:
		iv, _ := types.CoerceVector(v, types.TYPE_INT)
		return (&NegateNode{Op: "-", Operand: &ConstantNode{Val: iv}}).Execute(ctx, env)
	}
	return types.ErrDetail(types.ErrTypeMismatch,
		"invalid argument to unary operator")
}

// RangeNode builds low:high integer sequences
type RangeNode struct {
	Low  Node
	High Node
	Src  parser.Position
}

func (n *RangeNode) Execute(ctx *types.EvalContext, env *Environment) types.Result {
	if !ctx.ConsumeStep() {
		return stepLimitExceeded()
	}
	low := n.Low.Execute(ctx, env)
	if !low.IsNormal() {
		return low
	}
	high := n.High.Execute(ctx, env)
	if !high.IsNormal() {
		return high
	}
	lo, ok := scalarWhole(low.Val)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "NA/NaN argument")
	}
	hi, ok := scalarWhole(high.Val)
	if !ok {
		return types.ErrDetail(types.ErrTypeMismatch, "NA/NaN argument")
	}
	return types.Ok(types.IntSeq(lo, hi))
}

// scalarWhole extracts the first element of a numeric value as an
// integer, rejecting NA
func scalarWhole(v types.Value) (int, bool) {
	switch val := v.(type) {
	case *types.IntVector:
		if val.Length() == 0 || val.NAAt(1) {
			return 0, false
		}
		return val.At(1), true
	case *types.DoubleVector:
		if val.Length() == 0 || val.NAAt(1) {
			return 0, false
		}
		return int(val.At(1)), true
	case *types.LogicalVector:
		if val.Length() == 0 || val.NAAt(1) {
			return 0, false
		}
		if val.At(1) == types.LogicalTrue {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
