package pycalc

import (
	"fmt"
	"runtime"
	"strings"

	"fortio.org/log"
)

// maxCallDepth bounds user recursion so a runaway definition faults instead
// of exhausting the goroutine stack (which cannot be recovered).
const maxCallDepth = 512

////////////////////////////////////////////////////////////////////////////////
//                      CORE EXECUTION PLUMBING (PRIVATE)
////////////////////////////////////////////////////////////////////////////////

// rtErr is the panic payload raised by fail/failf inside evaluation.
type rtErr struct{ msg string }

func fail(msg string) { panic(rtErr{msg: msg}) }

func failf(format string, args ...any) { panic(rtErr{msg: fmt.Sprintf(format, args...)}) }

func (ip *Interpreter) runTop(ast S, env *Env) (Value, error) {
	return ip.guard(func() Value { return ip.eval(ast, env) })
}

// guard runs fn and converts any panic raised below it into an *Error.
func (ip *Interpreter) guard(fn func() Value) (out Value, err error) {
	depth := ip.depth
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ip.depth = depth
		out = None
		switch sig := r.(type) {
		case rtErr:
			err = &Error{Kind: DiagRuntime, Msg: sig.msg}
		case *Error:
			err = sig
		case runtime.Error:
			log.LogVf("runtime panic during evaluation: %v", sig)
			err = &Error{Kind: DiagRuntime, Msg: sig.Error()}
		case error:
			err = &Error{Kind: DiagRuntime, Msg: sig.Error()}
		default:
			err = &Error{Kind: DiagRuntime, Msg: fmt.Sprintf("runtime panic: %v", r)}
		}
	}()
	return fn(), nil
}

////////////////////////////////////////////////////////////////////////////////
//                                 EVALUATION
////////////////////////////////////////////////////////////////////////////////

func (ip *Interpreter) eval(n S, env *Env) Value {
	switch n[0].(string) {
	case "block":
		for _, st := range n[1:] {
			ip.eval(st.(S), env)
		}
		return None

	case "assign":
		v := ip.eval(n[2].(S), env)
		ip.assignTo(n[1].(S), v, env)
		for _, t := range n[3:] {
			ip.assignTo(t.(S), v, env)
		}
		return None

	case "augassign":
		target := n[2].(S)
		cur := ip.eval(target, env)
		rhs := ip.eval(n[3].(S), env)
		ip.assignTo(target, binaryOp(n[1].(string), cur, rhs), env)
		return None

	case "def":
		name := n[1].(string)
		env.Define(name, FunVal(&Fun{
			Name:   name,
			Params: paramSpecs(n[2].(S)),
			Body:   n[3].(S),
			Env:    env,
		}))
		return None

	case "lambda":
		return FunVal(&Fun{
			Name:   "<lambda>",
			Params: paramSpecs(n[1].(S)),
			Body:   n[2].(S),
			Env:    env,
		})

	case "id":
		v, err := env.Get(n[1].(string))
		if err != nil {
			fail(err.Error())
		}
		return v
	case "int":
		return Int(n[1].(int64))
	case "num":
		return Num(n[1].(float64))
	case "imag":
		return Complex(complex(0, n[1].(float64)))
	case "str":
		return Str(n[1].(string))
	case "bool":
		return Bool(n[1].(bool))
	case "none":
		return None

	case "list":
		items := make([]Value, 0, len(n)-1)
		for _, e := range n[1:] {
			items = append(items, ip.eval(e.(S), env))
		}
		return List(items)

	case "unop":
		return unaryOp(n[1].(string), ip.eval(n[2].(S), env))

	case "binop":
		op := n[1].(string)
		left := ip.eval(n[2].(S), env)
		switch op {
		case "and":
			if !truthy(left) {
				return left
			}
			return ip.eval(n[3].(S), env)
		case "or":
			if truthy(left) {
				return left
			}
			return ip.eval(n[3].(S), env)
		}
		return binaryOp(op, left, ip.eval(n[3].(S), env))

	case "idx":
		return indexValue(ip.eval(n[1].(S), env), ip.eval(n[2].(S), env))

	case "call":
		fn := ip.eval(n[1].(S), env)
		argNodes := n[2].(S)[1:]
		args := make([]Value, 0, len(argNodes))
		for _, a := range argNodes {
			args = append(args, ip.eval(a.(S), env))
		}
		var kwargs map[string]Value
		for _, kw := range n[3].(S)[1:] {
			k := kw.(S)
			if kwargs == nil {
				kwargs = map[string]Value{}
			}
			name := k[1].(string)
			if _, dup := kwargs[name]; dup {
				failf("keyword argument repeated: %s", name)
			}
			kwargs[name] = ip.eval(k[2].(S), env)
		}
		return ip.apply(fn, args, kwargs)
	}
	failf("unknown node %q", n[0])
	return None
}

func paramSpecs(params S) []ParamSpec {
	out := make([]ParamSpec, 0, len(params)-1)
	for _, p := range params[1:] {
		out = append(out, ParamSpec{Name: p.(string)})
	}
	return out
}

func (ip *Interpreter) assignTo(target S, v Value, env *Env) {
	switch target[0].(string) {
	case "id":
		env.Define(target[1].(string), v)
	case "idx":
		setIndex(ip.eval(target[1].(S), env), ip.eval(target[2].(S), env), v)
	default:
		fail("cannot assign to expression")
	}
}

////////////////////////////////////////////////////////////////////////////////
//                                   CALLS
////////////////////////////////////////////////////////////////////////////////

type callCtx struct {
	fn   *Fun
	args map[string]Value
	rest []Value
}

func (c *callCtx) Arg(name string) (Value, bool) {
	v, ok := c.args[name]
	return v, ok
}

func (c *callCtx) MustArg(name string) Value {
	v, ok := c.args[name]
	if !ok {
		failf("%s() missing argument '%s'", c.fn.Name, name)
	}
	return v
}

func (c *callCtx) Rest() []Value { return c.rest }

// bindArgs matches positional and keyword arguments to f's parameters.
func bindArgs(f *Fun, args []Value, kwargs map[string]Value) *callCtx {
	ctx := &callCtx{fn: f, args: map[string]Value{}}
	i := 0
	for _, p := range f.Params {
		if p.Variadic {
			ctx.rest = append(ctx.rest, args[i:]...)
			i = len(args)
			continue
		}
		if i < len(args) {
			ctx.args[p.Name] = args[i]
			i++
		}
	}
	if i < len(args) {
		failf("%s() takes %d positional arguments but %d were given", f.Name, countPositional(f), len(args))
	}
	for name, v := range kwargs {
		known := false
		for _, p := range f.Params {
			if p.Name == name && !p.Variadic {
				known = true
				break
			}
		}
		if !known {
			failf("%s() got an unexpected keyword argument '%s'", f.Name, name)
		}
		if _, dup := ctx.args[name]; dup {
			failf("%s() got multiple values for argument '%s'", f.Name, name)
		}
		ctx.args[name] = v
	}
	var missing []string
	for _, p := range f.Params {
		if p.Variadic {
			continue
		}
		if _, ok := ctx.args[p.Name]; ok {
			continue
		}
		if p.Default != nil {
			ctx.args[p.Name] = *p.Default
			continue
		}
		missing = append(missing, "'"+p.Name+"'")
	}
	if len(missing) > 0 {
		failf("%s() missing required argument(s): %s", f.Name, strings.Join(missing, ", "))
	}
	return ctx
}

func countPositional(f *Fun) int {
	n := 0
	for _, p := range f.Params {
		if !p.Variadic {
			n++
		}
	}
	return n
}

func (ip *Interpreter) apply(fn Value, args []Value, kwargs map[string]Value) Value {
	if fn.Tag != VTFun {
		failf("'%s' object is not callable", fn.Tag)
	}
	f := fn.Data.(*Fun)
	ctx := bindArgs(f, args, kwargs)

	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > maxCallDepth {
		fail("maximum recursion depth exceeded")
	}

	if f.Native != nil {
		return f.Native(ip, ctx)
	}
	frame := NewEnv(f.Env)
	for name, v := range ctx.args {
		frame.Define(name, v)
	}
	return ip.eval(f.Body, frame)
}
