package builtins

import (
	"rho/eval"
	"rho/types"
)

// RemoveVars implements rm(...): each argument names a binding to drop
// from the nearest frame that has it. Lowering turns the bare symbols
// into their names, so every argument arrives as a character scalar.
func RemoveVars(ctx *types.EvalContext, env *eval.Environment, args []types.Value, names []string) types.Result {
	for _, arg := range args {
		sv, ok := arg.(*types.StrVector)
		if !ok || sv.Length() != 1 || sv.NAAt(1) {
			return types.ErrDetail(types.ErrTypeMismatch,
				"... must contain names or character strings")
		}
		if !env.Remove(sv.At(1)) {
			return types.ErrDetail(types.ErrVariableNotFound,
				"object '"+sv.At(1)+"' not found")
		}
	}
	return types.OkInvisible(types.Null)
}
