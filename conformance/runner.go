package conformance

import (
	"fmt"
	"strings"

	"rho/builtins"
	"rho/eval"
	"rho/lower"
	"rho/parser"
	"rho/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Each test runs in a fresh
// environment so suites cannot leak state into one another.
type Runner struct {
	reg *builtins.Registry
}

// NewRunner creates a test runner
func NewRunner() *Runner {
	return &Runner{reg: builtins.NewRegistry()}
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	env := eval.NewEnvironment(nil)
	ctx := types.NewEvalContext()

	if test.Test.Setup != "" {
		res, err := r.eval(test.Test.Setup, env, ctx)
		if err != nil {
			return failed(test, fmt.Errorf("setup: %w", err))
		}
		if res.IsError() {
			return failed(test, fmt.Errorf("setup raised %s: %s", res.Err.Code, res.Err.Message()))
		}
	}

	res, err := r.eval(test.Test.Code, env, ctx)
	if err != nil {
		// a lowering diagnostic can itself be the expected condition
		if cond := lower.FirstCondition(err); cond != nil {
			return r.checkError(test, cond)
		}
		return failed(test, err)
	}
	if res.IsError() {
		return r.checkError(test, res.Err)
	}
	return r.checkValue(test, res)
}

// RunAll executes all tests and collects the results
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

func (r *Runner) eval(src string, env *eval.Environment, ctx *types.EvalContext) (types.Result, error) {
	p := parser.NewParser(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return types.Result{}, fmt.Errorf("parse: %s", strings.Join(errs, "; "))
	}
	node, err := lower.NewBuilder(r.reg).LowerProgram(prog)
	if err != nil {
		return types.Result{}, err
	}
	return node.Execute(ctx, env), nil
}

func (r *Runner) checkError(test LoadedTest, cond *types.RError) TestResult {
	want := test.Test.Expect.Error
	if want == "" {
		return failed(test, fmt.Errorf("unexpected condition %s: %s", cond.Code, cond.Message()))
	}
	wantCode, ok := types.ErrorFromString(want)
	if !ok {
		return failed(test, fmt.Errorf("unknown expected error name %q", want))
	}
	if cond.Code != wantCode {
		return failed(test, fmt.Errorf("expected %s, got %s: %s", want, cond.Code, cond.Message()))
	}
	if msg := test.Test.Expect.Message; msg != "" && !strings.Contains(cond.Message(), msg) {
		return failed(test, fmt.Errorf("message %q does not contain %q", cond.Message(), msg))
	}
	return TestResult{Test: test, Passed: true}
}

func (r *Runner) checkValue(test LoadedTest, res types.Result) TestResult {
	expect := test.Test.Expect
	if expect.Error != "" {
		return failed(test, fmt.Errorf("expected %s, got value %s", expect.Error, res.Val))
	}
	if expect.Invisible != nil && res.Invisible != *expect.Invisible {
		return failed(test, fmt.Errorf("expected invisible=%v, got %v", *expect.Invisible, res.Invisible))
	}

	// the expected value is itself an expression, evaluated clean
	wantRes, err := r.eval(expect.Value, eval.NewEnvironment(nil), types.NewEvalContext())
	if err != nil {
		return failed(test, fmt.Errorf("expected-value expression: %w", err))
	}
	if wantRes.IsError() {
		return failed(test, fmt.Errorf("expected-value expression raised %s", wantRes.Err.Message()))
	}
	if !wantRes.Val.Equal(res.Val) {
		return failed(test, fmt.Errorf("expected %s, got %s", wantRes.Val, res.Val))
	}
	return TestResult{Test: test, Passed: true}
}

func failed(test LoadedTest, err error) TestResult {
	return TestResult{Test: test, Error: err}
}

// Stats summarises a run
type Stats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats tallies the results of a run
func ComputeStats(results []TestResult) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// FormatStats renders a run summary
func FormatStats(s Stats) string {
	return fmt.Sprintf("%d total, %d passed, %d failed, %d skipped",
		s.Total, s.Passed, s.Failed, s.Skipped)
}
