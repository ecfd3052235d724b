package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"rho/builtins"
	"rho/eval"
	"rho/lower"
	"rho/parser"
	"rho/trace"
	"rho/types"
)

func main() {
	evalExpr := flag.String("e", "", "Evaluate an expression and exit (e.g., \"x <- 1:5; x[2]\")")
	scriptPath := flag.String("f", "", "Run a script file and exit")
	stepLimit := flag.Int("step-limit", 0, "Evaluation step limit (0 for the default)")

	traceEnabled := flag.Bool("trace", false, "Enable lowering and evaluation tracing")
	traceFilter := flag.String("trace-filter", "", "Comma-separated trace filter patterns (glob, e.g. 'names*,replacement')")

	flag.Parse()

	var filters []string
	if *traceFilter != "" {
		filters = strings.Split(*traceFilter, ",")
	}
	trace.Init(*traceEnabled, filters)

	session := newSession(*stepLimit)

	switch {
	case *evalExpr != "":
		os.Exit(session.runSource(*evalExpr))
	case *scriptPath != "":
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rho: %v\n", err)
			os.Exit(1)
		}
		os.Exit(session.runSource(string(src)))
	default:
		session.repl()
	}
}

// session holds the long-lived pieces of an interactive run: one
// registry, one global environment, one step budget per input.
type session struct {
	reg       *builtins.Registry
	env       *eval.Environment
	stepLimit int
}

func newSession(stepLimit int) *session {
	return &session{
		reg:       builtins.NewRegistry(),
		env:       eval.NewEnvironment(nil),
		stepLimit: stepLimit,
	}
}

func (s *session) context() *types.EvalContext {
	if s.stepLimit > 0 {
		return types.NewEvalContextWithLimit(s.stepLimit)
	}
	return types.NewEvalContext()
}

// runSource evaluates a whole program, printing each visible top-level
// result, and reports the exit status
func (s *session) runSource(src string) int {
	p := parser.NewParser(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "rho: parse error: %s\n", msg)
		}
		return 1
	}

	builder := lower.NewBuilder(s.reg)
	ctx := s.context()
	status := 0
	for _, expr := range prog.Exprs {
		node, err := builder.LowerExpr(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rho: %v\n", err)
			return 1
		}
		res := node.Execute(ctx, s.env)
		trace.Get().Result("main", res)
		if res.IsError() {
			fmt.Fprintf(os.Stderr, "Error: %s\n", res.Err.Message())
			status = 1
			continue
		}
		if !res.Invisible {
			fmt.Println(render(res.Val))
		}
	}
	return status
}

// repl reads one line at a time; each line is a complete program
func (s *session) repl() {
	scanner := bufio.NewScanner(os.Stdin)
	builder := lower.NewBuilder(s.reg)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "q" || line == "quit" {
			if line != "" {
				return
			}
			fmt.Print("> ")
			continue
		}

		p := parser.NewParser(line)
		prog := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			for _, msg := range errs {
				fmt.Fprintf(os.Stderr, "parse error: %s\n", msg)
			}
			fmt.Print("> ")
			continue
		}

		ctx := s.context()
		for _, expr := range prog.Exprs {
			node, err := builder.LowerExpr(expr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			res := node.Execute(ctx, s.env)
			trace.Get().Result("repl", res)
			if res.IsError() {
				fmt.Fprintf(os.Stderr, "Error: %s\n", res.Err.Message())
				continue
			}
			if !res.Invisible {
				fmt.Println(render(res.Val))
			}
		}
		fmt.Print("> ")
	}
}

// render formats a top-level value for display
func render(v types.Value) string {
	if types.IsNull(v) {
		return "NULL"
	}
	if nm := types.NamesOf(v); nm != nil {
		var sb strings.Builder
		sb.WriteString(v.String())
		sb.WriteString("  # names: ")
		sb.WriteString(nm.String())
		return sb.String()
	}
	return v.String()
}
