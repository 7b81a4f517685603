package intcode

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Eval evaluates a compile-time integer expression, with vars bound as
// predeclared names.
func Eval(expr string, vars map[string]int64) (value int64, err error) {
	thread := starlark.Thread{Name: "eval"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range vars {
		pred[key] = starlark.MakeInt64(val)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	switch rc := st_rc.(type) {
	case starlark.Int:
		value, ok = rc.Int64()
	case starlark.Bool:
		if rc {
			value = 1
		}
	default:
		ok = false
	}
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
