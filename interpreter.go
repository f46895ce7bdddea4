// interpreter.go: PUBLIC API SURFACE of the calculator's evaluator.
//
// OVERVIEW
// ========
// This file exposes the public surface of the evaluation runtime: the value
// model, environments, native-function registration and the Interpreter entry
// points. Algorithms live in private files:
//   • interpreter_exec.go: tree-walking evaluation, calls, the fault boundary.
//   • interpreter_ops.go:  the numeric kernel (promotion, broadcasting).
//   • printer.go:          Python-style rendering of values.
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates in environments (`*Env`) that form a chain via `parent`. The
// Interpreter owns two well-known frames:
//   • `Core`: the preloaded namespace (constants, units, functions, helpers).
//   • `Global`: user-visible session state; a child of Core.
// Assignments always bind in the environment they run in, so a user rebinding
// a core name (`pi = 3`) shadows it in Global and leaves Core untouched.
//
// ERRORS
// ------
// `Exec`, `Eval` and `EvalIn` return `(…, error)`; failures are `*Error`
// values (see errors.go). Nothing a user types can make them panic.
//
// VALUES
// ------
// `Value` is a tagged sum. `Category()` folds the tags into the four classes
// the REPL cares about (numeric, array, text, other).
package pycalc

import (
	"fmt"
	"io"
	"os"
	"sort"
)

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
// The tag determines which Go type Value.Data holds.
type ValueTag int

const (
	VTNone    ValueTag = iota // no payload
	VTBool                    // bool
	VTInt                     // int64
	VTNum                     // float64
	VTComplex                 // complex128
	VTStr                     // string
	VTArray                   // []float64 (fixed-length numeric vector)
	VTCArray                  // []complex128 (complex vector)
	VTList                    // []Value
	VTMap                     // *MapObject
	VTFun                     // *Fun
)

var tagNames = [...]string{
	VTNone: "NoneType", VTBool: "bool", VTInt: "int", VTNum: "float",
	VTComplex: "complex", VTStr: "str", VTArray: "array", VTCArray: "complex array",
	VTList: "list", VTMap: "dict", VTFun: "function",
}

func (t ValueTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Value is a runtime value.
type Value struct {
	Tag  ValueTag
	Data any
}

// String renders v the way the REPL prints it.
func (v Value) String() string { return FormatValue(v) }

// Category classifies a result for the REPL's "store into ans" rule.
type Category int

const (
	CatNumeric Category = iota
	CatArray
	CatText
	CatOther
)

// Category folds v's tag into a Category.
func (v Value) Category() Category {
	switch v.Tag {
	case VTBool, VTInt, VTNum, VTComplex:
		return CatNumeric
	case VTArray, VTCArray:
		return CatArray
	case VTStr:
		return CatText
	default:
		return CatOther
	}
}

var None = Value{Tag: VTNone}

func Bool(b bool) Value             { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value             { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value           { return Value{Tag: VTNum, Data: f} }
func Complex(c complex128) Value    { return Value{Tag: VTComplex, Data: c} }
func Str(s string) Value            { return Value{Tag: VTStr, Data: s} }
func Arr(xs []float64) Value        { return Value{Tag: VTArray, Data: xs} }
func CArr(xs []complex128) Value    { return Value{Tag: VTCArray, Data: xs} }
func List(xs []Value) Value         { return Value{Tag: VTList, Data: xs} }
func FunVal(f *Fun) Value           { return Value{Tag: VTFun, Data: f} }
func MapVal(m *MapObject) Value     { return Value{Tag: VTMap, Data: m} }
func StrList(xs []string) Value     { return List(strsToVals(xs)) }
func strsToVals(xs []string) []Value {
	out := make([]Value, len(xs))
	for i, s := range xs {
		out[i] = Str(s)
	}
	return out
}

// MapObject is an insertion-ordered string-keyed map. Frozen maps reject
// item assignment from user code.
type MapObject struct {
	Entries map[string]Value
	Keys    []string
	Frozen  bool
}

// NewMap returns an empty MapObject.
func NewMap() *MapObject { return &MapObject{Entries: map[string]Value{}} }

// Set inserts or replaces key, keeping first-insertion order.
func (m *MapObject) Set(key string, v Value) {
	if _, ok := m.Entries[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Entries[key] = v
}

// Fun is a function value: either native (Native != nil) or user-defined
// (Body evaluated in a child of Env with Params bound).
type Fun struct {
	Name   string
	Params []ParamSpec
	Body   S
	Env    *Env
	Native NativeImpl
	Doc    string
}

// ParamSpec documents a parameter. Default makes it optional; Variadic
// collects all remaining positional arguments (CallCtx.Rest).
type ParamSpec struct {
	Name     string
	Default  *Value
	Variadic bool
}

// Opt returns a ParamSpec with a default value.
func Opt(name string, def Value) ParamSpec { return ParamSpec{Name: name, Default: &def} }

// CallCtx is passed to natives and gives access to bound arguments.
type CallCtx interface {
	Arg(name string) (Value, bool)
	MustArg(name string) Value
	Rest() []Value
}

// NativeImpl is the implementation signature of host functions. Natives signal
// faults by calling fail/failf; the interpreter converts them to *Error.
type NativeImpl func(ip *Interpreter, ctx CallCtx) Value

// Env is an environment frame with a parent link. Lookups walk parent-ward.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in this frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) { e.table[name] = v }

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	if v, ok := e.Lookup(name); ok {
		return v, nil
	}
	return Value{}, fmt.Errorf("name '%s' is not defined", name)
}

// Lookup is Get without the error.
func (e *Env) Lookup(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Names returns the names bound in this frame, sorted.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.table))
	for k := range e.table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LineHistory is the optional line-editing collaborator. When present, ldform
// rewrites the most recent history entry with the chosen formula.
type LineHistory interface {
	Len() int
	Replace(index int, line string) error
}

// Host bundles the collaborators an Interpreter talks to. Zero fields degrade
// gracefully: Out defaults to stdout, a nil Prompt makes ldform fail when it
// needs a selection, a nil History skips the rewrite and a nil Renderer makes
// fplot fail.
type Host struct {
	Out      io.Writer
	Prompt   func(prompt string) (string, error)
	History  LineHistory
	Renderer Renderer
	Catalog  *Catalog // formula catalog; DefaultCatalog() when nil
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter evaluates calculator source against the preloaded namespace.
//
// Public fields:
//   - Core  : preloaded namespace; parent of Global.
//   - Global: persistent session environment.
type Interpreter struct {
	Global *Env
	Core   *Env

	host    Host
	catalog *Catalog
	depth   int // call depth guard
}

// NewInterpreter builds the namespace and returns a ready interpreter.
func NewInterpreter(host Host) *Interpreter {
	if host.Out == nil {
		host.Out = os.Stdout
	}
	ip := &Interpreter{host: host, catalog: host.Catalog}
	if ip.catalog == nil {
		ip.catalog = DefaultCatalog()
	}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)

	registerConstants(ip)
	registerMathBuiltins(ip)
	registerFormulaBuiltins(ip)
	registerPlotBuiltins(ip)
	return ip
}

////////////////////////////////////////////////////////////////////////////////
//                         PUBLIC METHODS (THIN DELEGATIONS)
////////////////////////////////////////////////////////////////////////////////

// Exec parses src as a statement block and runs it in Global for effect.
func (ip *Interpreter) Exec(src string) error {
	ast, err := ParseSExpr(src)
	if err != nil {
		return WrapErrorWithSource(err, src)
	}
	_, err = ip.runTop(ast, ip.Global)
	return err
}

// Eval parses src as a single expression and evaluates it in Global.
func (ip *Interpreter) Eval(src string) (Value, error) {
	ast, err := ParseExpr(src)
	if err != nil {
		return None, WrapErrorWithSource(err, src)
	}
	return ip.runTop(ast, ip.Global)
}

// EvalIn evaluates a pre-parsed AST in env.
func (ip *Interpreter) EvalIn(ast S, env *Env) (Value, error) {
	return ip.runTop(ast, env)
}

// Call applies fn to positional args behind the fault boundary.
func (ip *Interpreter) Call(fn Value, args ...Value) (Value, error) {
	return ip.guard(func() Value { return ip.apply(fn, args, nil) })
}

// RegisterNative installs a host function into Core under name.
func (ip *Interpreter) RegisterNative(name string, params []ParamSpec, doc string, impl NativeImpl) {
	ip.Core.Define(name, FunVal(&Fun{
		Name:   name,
		Params: params,
		Env:    ip.Core,
		Native: impl,
		Doc:    doc,
	}))
}

// Out is the writer helpers print to.
func (ip *Interpreter) Out() io.Writer { return ip.host.Out }

//// END_OF_PUBLIC
