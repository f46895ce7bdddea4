package pycalc

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// ---- element-wise math -------------------------------------------------

// elementwise lifts a real function (and optionally its complex counterpart)
// to scalars and arrays. Real inputs stay real; out-of-domain real inputs
// yield nan as the numeric library they mirror does.
func elementwise(name string, fr func(float64) float64, fc func(complex128) complex128) NativeImpl {
	return func(_ *Interpreter, ctx CallCtx) Value {
		x := ctx.MustArg("x")
		switch x.Tag {
		case VTArray:
			xs := x.Data.([]float64)
			out := make([]float64, len(xs))
			for i, v := range xs {
				out[i] = fr(v)
			}
			return Arr(out)
		case VTList:
			return Arr(mapFloats(asFloats(x, -1), fr))
		case VTComplex:
			if fc == nil {
				failf("%s() does not accept complex input", name)
			}
			return Complex(fc(x.Data.(complex128)))
		case VTCArray:
			if fc == nil {
				failf("%s() does not accept complex input", name)
			}
			return CArr(mapComplex(x, fc))
		}
		if !isReal(x) {
			failf("%s() expects a number or array, got %s", name, x.Tag)
		}
		return Num(fr(asFloat(x)))
	}
}

func mapFloats(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = f(v)
	}
	return out
}

func mapComplex(v Value, f func(complex128) complex128) []complex128 {
	xs := v.Data.([]complex128)
	out := make([]complex128, len(xs))
	for i, c := range xs {
		out[i] = f(c)
	}
	return out
}

// complexParts applies f to each element of a complex array.
func complexParts(v Value, f func(complex128) float64) Value {
	xs := v.Data.([]complex128)
	out := make([]float64, len(xs))
	for i, c := range xs {
		out[i] = f(c)
	}
	return Arr(out)
}

func isComplexValue(v Value) bool { return v.Tag == VTComplex || v.Tag == VTCArray }

// binaryElementwise lifts f(a, b) over scalars and arrays with broadcasting.
func binaryElementwise(name string, f func(a, b float64) float64) NativeImpl {
	return func(_ *Interpreter, ctx CallCtx) Value {
		a, b := ctx.MustArg("a"), ctx.MustArg("b")
		if isReal(a) && isReal(b) {
			return Num(f(asFloat(a), asFloat(b)))
		}
		if isComplexValue(a) || isComplexValue(b) {
			failf("%s() does not accept complex input", name)
		}
		n := -1
		for _, v := range []Value{a, b} {
			if v.Tag == VTArray || v.Tag == VTList {
				n = len(asFloats(v, -1))
			}
		}
		xs, ys := asFloats(a, n), asFloats(b, n)
		if len(xs) != len(ys) {
			failf("%s(): operands could not be broadcast together", name)
		}
		out := make([]float64, len(xs))
		for i := range xs {
			out[i] = f(xs[i], ys[i])
		}
		return Arr(out)
	}
}

// lnReal is log for real inputs: nan below zero, -inf at zero.
func lnReal(x float64) float64 {
	if x < 0 {
		return math.NaN()
	}
	return math.Log(x)
}

func sqrtReal(x float64) float64 {
	if x < 0 {
		return math.NaN()
	}
	return math.Sqrt(x)
}

var unaryMath = []struct {
	name string
	fr   func(float64) float64
	fc   func(complex128) complex128
	doc  string
}{
	{"sqrt", sqrtReal, cmplx.Sqrt, "square root"},
	{"exp", math.Exp, cmplx.Exp, "exponential"},
	{"log", lnReal, cmplx.Log, "natural logarithm"},
	{"sin", math.Sin, cmplx.Sin, "sine (radians)"},
	{"cos", math.Cos, cmplx.Cos, "cosine (radians)"},
	{"tan", math.Tan, cmplx.Tan, "tangent (radians)"},
	{"arcsin", math.Asin, cmplx.Asin, "inverse sine"},
	{"arccos", math.Acos, cmplx.Acos, "inverse cosine"},
	{"arctan", math.Atan, cmplx.Atan, "inverse tangent"},
	{"sinh", math.Sinh, cmplx.Sinh, "hyperbolic sine"},
	{"cosh", math.Cosh, cmplx.Cosh, "hyperbolic cosine"},
	{"tanh", math.Tanh, cmplx.Tanh, "hyperbolic tangent"},
	{"arcsinh", math.Asinh, cmplx.Asinh, "inverse hyperbolic sine"},
	{"arccosh", math.Acosh, cmplx.Acosh, "inverse hyperbolic cosine"},
	{"arctanh", math.Atanh, cmplx.Atanh, "inverse hyperbolic tangent"},
	{"F2C", func(f float64) float64 { return (f - 32) * 5 / 9 }, nil, "Fahrenheit to Celsius"},
	{"C2F", func(c float64) float64 { return 32 + c*9/5 }, nil, "Celsius to Fahrenheit"},
	{"C2K", func(c float64) float64 { return c + celsius0 }, nil, "Celsius to Kelvin"},
	{"K2C", func(k float64) float64 { return k - celsius0 }, nil, "Kelvin to Celsius"},
}

func registerMathBuiltins(ip *Interpreter) {
	x := []ParamSpec{{Name: "x"}}
	ab := []ParamSpec{{Name: "a"}, {Name: "b"}}

	for _, m := range unaryMath {
		ip.RegisterNative(m.name, x, m.doc+" (element-wise)", elementwise(m.name, m.fr, m.fc))
	}

	ip.RegisterNative("atan2", ab, "atan2(a, b): angle of the point (b, a)",
		binaryElementwise("atan2", math.Atan2))

	ip.RegisterNative("mod", ab, "mod(a, b): remainder with the sign of b",
		func(_ *Interpreter, ctx CallCtx) Value {
			return binaryOp("%", ctx.MustArg("a"), ctx.MustArg("b"))
		})

	ip.RegisterNative("Re", x, "real part", func(_ *Interpreter, ctx CallCtx) Value {
		v := ctx.MustArg("x")
		switch v.Tag {
		case VTComplex:
			return Num(real(v.Data.(complex128)))
		case VTCArray:
			return complexParts(v, func(c complex128) float64 { return real(c) })
		}
		mustNumeric("Re", v)
		return v
	})
	ip.RegisterNative("Im", x, "imaginary part", func(_ *Interpreter, ctx CallCtx) Value {
		v := ctx.MustArg("x")
		switch v.Tag {
		case VTComplex:
			return Num(imag(v.Data.(complex128)))
		case VTCArray:
			return complexParts(v, func(c complex128) float64 { return imag(c) })
		case VTArray:
			return Arr(make([]float64, len(v.Data.([]float64))))
		}
		mustNumeric("Im", v)
		if v.Tag == VTNum {
			return Num(0)
		}
		return Int(0)
	})
	ip.RegisterNative("conj", x, "complex conjugate", func(_ *Interpreter, ctx CallCtx) Value {
		v := ctx.MustArg("x")
		switch v.Tag {
		case VTComplex:
			return Complex(cmplx.Conj(v.Data.(complex128)))
		case VTCArray:
			return CArr(mapComplex(v, cmplx.Conj))
		}
		mustNumeric("conj", v)
		return v
	})
	realAngle := elementwise("angle", func(f float64) float64 { return math.Atan2(0, f) }, nil)
	ip.RegisterNative("angle", x, "phase angle of a complex number (radians)", func(ip *Interpreter, ctx CallCtx) Value {
		switch v := ctx.MustArg("x"); v.Tag {
		case VTComplex:
			return Num(cmplx.Phase(v.Data.(complex128)))
		case VTCArray:
			return complexParts(v, cmplx.Phase)
		}
		return realAngle(ip, ctx)
	})

	ip.RegisterNative("abs", x, "absolute value / magnitude", func(_ *Interpreter, ctx CallCtx) Value {
		v := ctx.MustArg("x")
		switch v.Tag {
		case VTBool, VTInt:
			n := asInt(v)
			if n < 0 {
				return unaryOp("-", Int(n))
			}
			return Int(n)
		case VTNum:
			return Num(math.Abs(v.Data.(float64)))
		case VTComplex:
			return Num(cmplx.Abs(v.Data.(complex128)))
		case VTCArray:
			return complexParts(v, cmplx.Abs)
		case VTArray, VTList:
			return Arr(mapFloats(asFloats(v, -1), math.Abs))
		}
		failf("bad operand type for abs(): '%s'", v.Tag)
		return None
	})

	ip.RegisterNative("cross", ab, "vector cross product", func(_ *Interpreter, ctx CallCtx) Value {
		return crossProduct(asVector("cross", ctx.MustArg("a")), asVector("cross", ctx.MustArg("b")))
	})
	ip.RegisterNative("dot", ab, "dot product", func(_ *Interpreter, ctx CallCtx) Value {
		a, b := ctx.MustArg("a"), ctx.MustArg("b")
		if isNumeric(a) && isNumeric(b) {
			return binaryOp("*", a, b)
		}
		return binaryOp("@", a, b)
	})

	ip.RegisterNative("vec", []ParamSpec{{Name: "args", Variadic: true}},
		"vec(*args): build a numeric vector", func(_ *Interpreter, ctx CallCtx) Value {
			rest := ctx.Rest()
			complexOut := false
			for i, v := range rest {
				if !isNumeric(v) {
					failf("vec: component %d is %s, not a number", i, v.Tag)
				}
				complexOut = complexOut || v.Tag == VTComplex
			}
			if complexOut {
				return CArr(asComplexes(List(rest), -1))
			}
			return Arr(asFloats(List(rest), -1))
		})

	ip.RegisterNative("linspace", []ParamSpec{{Name: "start"}, {Name: "stop"}, Opt("num", Int(50))},
		"linspace(start, stop, num=50): evenly spaced samples, endpoints included",
		func(_ *Interpreter, ctx CallCtx) Value {
			n := asInt(ctx.MustArg("num"))
			if n < 0 {
				fail("linspace: number of samples must be non-negative")
			}
			checkSize("linspace", n)
			return Arr(linspace(asFloat(ctx.MustArg("start")), asFloat(ctx.MustArg("stop")), int(n)))
		})

	registerPythonBuiltins(ip)
}

func mustNumeric(name string, v Value) {
	if !isNumeric(v) && v.Tag != VTArray {
		failf("%s() expects a number, got %s", name, v.Tag)
	}
}

func asVector(name string, v Value) []float64 {
	if v.Tag != VTArray && v.Tag != VTList {
		failf("%s() expects vectors, got %s", name, v.Tag)
	}
	return asFloats(v, -1)
}

// crossProduct handles 3-vectors and, like numpy, 2-vectors (returning the
// scalar z component).
func crossProduct(a, b []float64) Value {
	switch {
	case len(a) == 3 && len(b) == 3:
		return Arr([]float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		})
	case len(a) == 2 && len(b) == 2:
		return Num(a[0]*b[1] - a[1]*b[0])
	}
	failf("incompatible dimensions for cross product (dimension must be 2 or 3): %d and %d", len(a), len(b))
	return None
}

// linspace returns n evenly spaced samples over [lo, hi].
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// ---- python-flavoured builtins ----------------------------------------

func registerPythonBuiltins(ip *Interpreter) {
	ip.RegisterNative("round", []ParamSpec{{Name: "x"}, Opt("ndigits", None)},
		"round(x, ndigits=None): round half to even", func(_ *Interpreter, ctx CallCtx) Value {
			v, nd := ctx.MustArg("x"), ctx.MustArg("ndigits")
			if nd.Tag == VTNone {
				switch v.Tag {
				case VTBool, VTInt:
					return Int(asInt(v))
				case VTArray:
					return Arr(mapFloats(v.Data.([]float64), math.RoundToEven))
				}
				f := math.RoundToEven(asFloat(v))
				if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= 1<<63 {
					fail("cannot convert float to integer")
				}
				return Int(int64(f))
			}
			scale := math.Pow(10, float64(asInt(nd)))
			r := func(f float64) float64 { return math.RoundToEven(f*scale) / scale }
			switch v.Tag {
			case VTBool, VTInt:
				if asInt(nd) >= 0 {
					return Int(asInt(v))
				}
				return Int(int64(r(asFloat(v))))
			case VTArray:
				return Arr(mapFloats(v.Data.([]float64), r))
			}
			return Num(r(asFloat(v)))
		})

	ip.RegisterNative("int", []ParamSpec{Opt("x", Int(0))}, "int(x): convert to integer (truncating)",
		func(_ *Interpreter, ctx CallCtx) Value {
			v := ctx.MustArg("x")
			switch v.Tag {
			case VTBool, VTInt:
				return Int(asInt(v))
			case VTNum:
				f := math.Trunc(v.Data.(float64))
				if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= 1<<63 {
					fail("cannot convert float to integer")
				}
				return Int(int64(f))
			case VTStr:
				n, err := strconv.ParseInt(strings.TrimSpace(v.Data.(string)), 10, 64)
				if err != nil {
					failf("invalid literal for int(): '%s'", v.Data.(string))
				}
				return Int(n)
			}
			failf("int() argument must be a string or a real number, not '%s'", v.Tag)
			return None
		})

	ip.RegisterNative("float", []ParamSpec{Opt("x", Num(0))}, "float(x): convert to floating point",
		func(_ *Interpreter, ctx CallCtx) Value {
			v := ctx.MustArg("x")
			if v.Tag == VTStr {
				f, err := strconv.ParseFloat(strings.TrimSpace(v.Data.(string)), 64)
				if err != nil {
					failf("could not convert string to float: '%s'", v.Data.(string))
				}
				return Num(f)
			}
			if !isReal(v) {
				failf("float() argument must be a string or a real number, not '%s'", v.Tag)
			}
			return Num(asFloat(v))
		})

	ip.RegisterNative("len", []ParamSpec{{Name: "x"}}, "len(x): number of items",
		func(_ *Interpreter, ctx CallCtx) Value {
			v := ctx.MustArg("x")
			switch v.Tag {
			case VTStr:
				return Int(int64(len([]rune(v.Data.(string)))))
			case VTList:
				return Int(int64(len(v.Data.([]Value))))
			case VTArray:
				return Int(int64(len(v.Data.([]float64))))
			case VTCArray:
				return Int(int64(len(v.Data.([]complex128))))
			case VTMap:
				return Int(int64(len(v.Data.(*MapObject).Keys)))
			}
			failf("object of type '%s' has no len()", v.Tag)
			return None
		})

	ip.RegisterNative("sum", []ParamSpec{{Name: "xs"}}, "sum(xs): total of a list or array",
		func(_ *Interpreter, ctx CallCtx) Value {
			acc := Int(0)
			for _, v := range iterItems("sum", ctx.MustArg("xs")) {
				acc = binaryOp("+", acc, v)
			}
			return acc
		})

	extreme := func(name, op string) NativeImpl {
		return func(_ *Interpreter, ctx CallCtx) Value {
			items := ctx.Rest()
			if len(items) == 1 {
				items = iterItems(name, items[0])
			}
			if len(items) == 0 {
				failf("%s() arg is an empty sequence", name)
			}
			best := items[0]
			for _, v := range items[1:] {
				if truthy(binaryOp(op, v, best)) {
					best = v
				}
			}
			return best
		}
	}
	ip.RegisterNative("min", []ParamSpec{{Name: "args", Variadic: true}}, "min(*args): smallest item", extreme("min", "<"))
	ip.RegisterNative("max", []ParamSpec{{Name: "args", Variadic: true}}, "max(*args): largest item", extreme("max", ">"))

	ip.RegisterNative("help", []ParamSpec{Opt("name", None)},
		"help(name): describe a preloaded name; help() lists them all",
		func(ip *Interpreter, ctx CallCtx) Value {
			v := ctx.MustArg("name")
			if v.Tag == VTNone {
				return Str(ip.helpIndex())
			}
			if v.Tag == VTFun {
				f := v.Data.(*Fun)
				return Str(fmt.Sprintf("%s(%s): %s", f.Name, paramList(f), f.Doc))
			}
			if v.Tag != VTStr {
				failf("help() expects a name string or a function, got %s", v.Tag)
			}
			name := v.Data.(string)
			if doc, ok := constantDoc(name); ok {
				val, _ := ip.Core.Lookup(name)
				return Str(strings.TrimSpace(fmt.Sprintf("%s = %s %s", name, Repr(val), doc)))
			}
			if fv, ok := ip.Core.Lookup(name); ok && fv.Tag == VTFun {
				f := fv.Data.(*Fun)
				return Str(fmt.Sprintf("%s(%s): %s", name, paramList(f), f.Doc))
			}
			failf("no help for '%s'", name)
			return None
		})
}

func iterItems(name string, v Value) []Value {
	switch v.Tag {
	case VTList:
		return v.Data.([]Value)
	case VTArray:
		xs := v.Data.([]float64)
		out := make([]Value, len(xs))
		for i, x := range xs {
			out[i] = Num(x)
		}
		return out
	case VTCArray:
		xs := v.Data.([]complex128)
		out := make([]Value, len(xs))
		for i, c := range xs {
			out[i] = Complex(c)
		}
		return out
	}
	failf("%s(): '%s' object is not iterable", name, v.Tag)
	return nil
}

func paramList(f *Fun) string {
	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		switch {
		case p.Variadic:
			parts = append(parts, "*"+p.Name)
		case p.Default != nil:
			parts = append(parts, p.Name+"="+Repr(*p.Default))
		default:
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// helpIndex lists every preloaded name, constants first.
func (ip *Interpreter) helpIndex() string {
	var consts, funcs []string
	for _, name := range ip.Core.Names() {
		v, _ := ip.Core.Lookup(name)
		if v.Tag == VTFun {
			funcs = append(funcs, name)
		} else {
			consts = append(consts, name)
		}
	}
	sort.Strings(consts)
	sort.Strings(funcs)
	return "constants: " + strings.Join(consts, " ") + "\nfunctions: " + strings.Join(funcs, " ")
}
