package rules

import (
	"fmt"
	"log/slog"
	"strings"

	"canvas-builder/drag"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// maxSteps bounds one rule evaluation.
const maxSteps = 100_000

// Rule is a starlark drop rule. The script sees x, y, width, height, type
// and source ("palette" or "canvas") and must assign a bool to valid.
//
//	valid = x >= 0 and y >= 0 and not (type == "IMAGE" and width > 400)
type Rule struct {
	name    string
	program *starlark.Program
	logger  *slog.Logger
	lastErr string
}

// inputNames are the globals every rule may read.
var inputNames = Inputs{}.globals()

// Compile parses and resolves script once, then checks that it runs and
// assigns a bool to valid.
func Compile(name, script string, logger *slog.Logger) (*Rule, error) {
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("drop rule %q is empty", name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	prog, err := compile(name, script, inputNames)
	if err != nil {
		return nil, fmt.Errorf("compile drop rule %q: %w", name, err)
	}
	r := &Rule{name: name, program: prog, logger: logger.With("component", "rules", "rule", name)}
	if _, err := r.Eval(Inputs{Source: "palette"}); err != nil {
		return nil, fmt.Errorf("compile drop rule %q: %w", name, err)
	}
	return r, nil
}

// Inputs are the globals a rule can read.
type Inputs struct {
	X, Y          float64
	Width, Height float64
	Type          string
	Source        string
}

func (in Inputs) globals() map[string]interface{} {
	return map[string]interface{}{
		"x":      in.X,
		"y":      in.Y,
		"width":  in.Width,
		"height": in.Height,
		"type":   in.Type,
		"source": in.Source,
	}
}

// Eval runs the compiled script once.
func (r *Rule) Eval(in Inputs) (bool, error) {
	out, err := run(r.name, r.program, in.globals())
	if err != nil {
		return false, err
	}
	v, ok := out["valid"]
	if !ok {
		return false, fmt.Errorf("rule did not assign valid")
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("valid must be a bool, got %T", v)
	}
	return b, nil
}

// ValidDrop implements drag.DropValidator. Evaluation errors reject the drop
// and are logged once per distinct message.
func (r *Rule) ValidDrop(ctx drag.DragContext, pos drag.Point, box drag.Rect) bool {
	in := Inputs{X: pos.X, Y: pos.Y, Source: "palette"}
	size := box.Size()
	in.Width, in.Height = size.Width, size.Height
	if d := ctx.DraggedComponent; d != nil {
		in.Type = string(d.Type)
		if !d.FromPalette() {
			in.Source = "canvas"
		}
	}
	ok, err := r.Eval(in)
	if err != nil {
		if msg := err.Error(); msg != r.lastErr {
			r.logger.Warn("drop rule failed", "error", err)
			r.lastErr = msg
		}
		return false
	}
	r.lastErr = ""
	return ok
}

// Execute compiles and runs script with inputs as predeclared globals and
// returns the script's globals as native Go values.
func Execute(threadName, script string, inputs map[string]interface{}) (map[string]interface{}, error) {
	prog, err := compile(threadName, script, inputs)
	if err != nil {
		return nil, err
	}
	return run(threadName, prog, inputs)
}

func compile(filename, script string, inputs map[string]interface{}) (*starlark.Program, error) {
	isPredeclared := func(name string) bool {
		_, ok := inputs[name]
		return ok
	}
	_, prog, err := starlark.SourceProgramOptions(syntax.LegacyFileOptions(), filename, script, isPredeclared)
	return prog, err
}

func run(threadName string, prog *starlark.Program, inputs map[string]interface{}) (map[string]interface{}, error) {
	thread := &starlark.Thread{Name: threadName, Print: func(_ *starlark.Thread, msg string) {}}
	thread.SetMaxExecutionSteps(maxSteps)

	predeclared := starlark.StringDict{}
	for k, v := range inputs {
		if val, err := toStarlarkValue(v); err == nil {
			predeclared[k] = val
		}
	}

	globals, err := prog.Init(thread, predeclared)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(globals))
	for k, v := range globals {
		out[k] = FromStarlarkValue(v)
	}
	return out, nil
}
