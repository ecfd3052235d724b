package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, input string) Expr {
	t.Helper()
	p := NewParser(input)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors for %q", input)
	require.Len(t, prog.Exprs, 1)
	return prog.Exprs[0]
}

func TestParseAssignment(t *testing.T) {
	expr := parseOne(t, "x <- 1")
	assign, ok := expr.(*AssignExpr)
	require.True(t, ok)
	assert.False(t, assign.Super)

	ident, ok := assign.Target.(*IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParseSuperAssignment(t *testing.T) {
	expr := parseOne(t, "x <<- 5")
	assign, ok := expr.(*AssignExpr)
	require.True(t, ok)
	assert.True(t, assign.Super)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	expr := parseOne(t, "a <- b <- 1")
	outer, ok := expr.(*AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Target.(*IdentifierExpr).Name)

	inner, ok := outer.Value.(*AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Target.(*IdentifierExpr).Name)
}

func TestParseIndexSubset(t *testing.T) {
	expr := parseOne(t, "x[2]")
	idx, ok := expr.(*IndexExpr)
	require.True(t, ok)
	assert.True(t, idx.Subset)
	require.Len(t, idx.Args, 1)
	assert.NotNil(t, idx.Args[0].Value)
}

func TestParseIndexSubscript(t *testing.T) {
	expr := parseOne(t, "x[[2]]")
	idx, ok := expr.(*IndexExpr)
	require.True(t, ok)
	assert.False(t, idx.Subset)
	require.Len(t, idx.Args, 1)
}

func TestParseNestedDoubleBracket(t *testing.T) {
	// both closing brackets of the inner subscript belong to it
	expr := parseOne(t, "x[y[[1]]]")
	idx, ok := expr.(*IndexExpr)
	require.True(t, ok)
	assert.True(t, idx.Subset)
	inner, ok := idx.Args[0].Value.(*IndexExpr)
	require.True(t, ok)
	assert.False(t, inner.Subset)
}

func TestParseMatrixIndexWithElidedArgs(t *testing.T) {
	expr := parseOne(t, "m[, 2]")
	idx, ok := expr.(*IndexExpr)
	require.True(t, ok)
	require.Len(t, idx.Args, 2)
	assert.Nil(t, idx.Args[0].Value)
	assert.NotNil(t, idx.Args[1].Value)

	expr = parseOne(t, "m[1, ]")
	idx = expr.(*IndexExpr)
	require.Len(t, idx.Args, 2)
	assert.NotNil(t, idx.Args[0].Value)
	assert.Nil(t, idx.Args[1].Value)
}

func TestParseIndexNamedArgs(t *testing.T) {
	expr := parseOne(t, "m[1, 2, drop = FALSE]")
	idx, ok := expr.(*IndexExpr)
	require.True(t, ok)
	require.Len(t, idx.Args, 3)
	assert.Equal(t, "drop", idx.Args[2].Name)

	expr = parseOne(t, `x[["al", exact = FALSE]]`)
	idx = expr.(*IndexExpr)
	require.Len(t, idx.Args, 2)
	assert.Equal(t, "exact", idx.Args[1].Name)
}

func TestParseFieldAccess(t *testing.T) {
	expr := parseOne(t, "lst$a$b")
	outer, ok := expr.(*FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "b", outer.Field)
	inner, ok := outer.Target.(*FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Field)
}

func TestParseFieldStringName(t *testing.T) {
	expr := parseOne(t, `lst$"odd name"`)
	fe, ok := expr.(*FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "odd name", fe.Field)
}

func TestParseCall(t *testing.T) {
	expr := parseOne(t, "c(1, 2, x = 3)")
	call, ok := expr.(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "c", call.Name)
	require.Len(t, call.Args, 3)
	assert.Equal(t, "", call.Args[0].Name)
	assert.Equal(t, "x", call.Args[2].Name)
}

func TestParseReplacementTarget(t *testing.T) {
	expr := parseOne(t, "names(x) <- v")
	assign, ok := expr.(*AssignExpr)
	require.True(t, ok)
	call, ok := assign.Target.(*CallExpr)
	require.True(t, ok)
	assert.Equal(t, "names", call.Name)
}

func TestParseNestedIndexAssignment(t *testing.T) {
	expr := parseOne(t, "x[1][[2]] <- 10")
	assign, ok := expr.(*AssignExpr)
	require.True(t, ok)
	outer, ok := assign.Target.(*IndexExpr)
	require.True(t, ok)
	assert.False(t, outer.Subset)
	inner, ok := outer.Target.(*IndexExpr)
	require.True(t, ok)
	assert.True(t, inner.Subset)
}

func TestParseAssignmentInsideSubscript(t *testing.T) {
	expr := parseOne(t, "x[y[1] <- 2] <- 7")
	assign, ok := expr.(*AssignExpr)
	require.True(t, ok)
	idx, ok := assign.Target.(*IndexExpr)
	require.True(t, ok)
	require.Len(t, idx.Args, 1)
	inner, ok := idx.Args[0].Value.(*AssignExpr)
	require.True(t, ok)
	assert.IsType(t, &IndexExpr{}, inner.Target)
}

func TestParseAssignmentInsideCallArg(t *testing.T) {
	expr := parseOne(t, "length(y <- c(1, 2))")
	call, ok := expr.(*CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "", call.Args[0].Name)
	_, ok = call.Args[0].Value.(*AssignExpr)
	assert.True(t, ok)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr := parseOne(t, "1 + 2 * 3")
	add, ok := expr.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)
	mul, ok := add.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParseRangeBindsTighterThanArithmetic(t *testing.T) {
	expr := parseOne(t, "1 + 2:5")
	add, ok := expr.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)
	rng, ok := add.Right.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ":", rng.Op)
}

func TestParseUnaryMinus(t *testing.T) {
	expr := parseOne(t, "x[-1]")
	idx := expr.(*IndexExpr)
	neg, ok := idx.Args[0].Value.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, "-", neg.Op)
}

func TestParseMultipleStatements(t *testing.T) {
	p := NewParser("x <- 1; y <- 2\nz <- 3")
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())
	assert.Len(t, prog.Exprs, 3)
}

func TestParseBrace(t *testing.T) {
	expr := parseOne(t, "{ x <- 1; x }")
	brace, ok := expr.(*BraceExpr)
	require.True(t, ok)
	assert.Len(t, brace.Exprs, 2)
}

func TestParseErrorReported(t *testing.T) {
	p := NewParser("x <-")
	p.ParseProgram()
	assert.NotEmpty(t, p.Errors())
}

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x[1, 2]", "x[1, 2]"},
		{"x[[3]]", "x[[3]]"},
		{"lst$a", "lst$a"},
		{"names(x) <- v", "names(x) <- v"},
		{"m[, 2]", "m[, 2]"},
	}
	for _, tt := range tests {
		expr := parseOne(t, tt.input)
		assert.Equal(t, tt.want, expr.String())
	}
}
