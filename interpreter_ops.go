package pycalc

import (
	"math"
	"math/cmplx"
	"strings"
)

// ─────────────────────────────── conversions ────────────────────────────────

func isNumeric(v Value) bool {
	switch v.Tag {
	case VTBool, VTInt, VTNum, VTComplex:
		return true
	}
	return false
}

// isReal reports whether v is a non-complex scalar number.
func isReal(v Value) bool {
	switch v.Tag {
	case VTBool, VTInt, VTNum:
		return true
	}
	return false
}

func asInt(v Value) int64 {
	switch v.Tag {
	case VTBool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case VTInt:
		return v.Data.(int64)
	}
	failf("expected an integer, got %s", v.Tag)
	return 0
}

func asFloat(v Value) float64 {
	switch v.Tag {
	case VTBool, VTInt:
		return float64(asInt(v))
	case VTNum:
		return v.Data.(float64)
	case VTComplex:
		fail("can't convert complex to float")
	}
	failf("expected a number, got %s", v.Tag)
	return 0
}

// maxElements bounds any allocation whose size comes from user input.
const maxElements = 1 << 24

func checkSize(what string, n int64) {
	if n < 0 || n > maxElements {
		failf("%s: %d elements exceed the limit of %d", what, n, maxElements)
	}
}

func asComplex(v Value) complex128 {
	if v.Tag == VTComplex {
		return v.Data.(complex128)
	}
	return complex(asFloat(v), 0)
}

// asFloats converts an array, a list of real numbers or a scalar (broadcast
// to n elements; n < 0 means "length 1") to a float slice.
func asFloats(v Value, n int) []float64 {
	switch v.Tag {
	case VTArray:
		return v.Data.([]float64)
	case VTList:
		items := v.Data.([]Value)
		out := make([]float64, len(items))
		for i, it := range items {
			if !isReal(it) {
				failf("cannot convert %s element to a number", it.Tag)
			}
			out[i] = asFloat(it)
		}
		return out
	case VTComplex, VTCArray:
		failf("cannot convert %s to real numbers", v.Tag)
	}
	if !isReal(v) {
		failf("unsupported operand type for array arithmetic: '%s'", v.Tag)
	}
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	f := asFloat(v)
	for i := range out {
		out[i] = f
	}
	return out
}

// asComplexes is asFloats for the complex array path.
func asComplexes(v Value, n int) []complex128 {
	switch v.Tag {
	case VTCArray:
		return v.Data.([]complex128)
	case VTComplex:
		if n < 1 {
			n = 1
		}
		out := make([]complex128, n)
		for i := range out {
			out[i] = v.Data.(complex128)
		}
		return out
	case VTList:
		items := v.Data.([]Value)
		out := make([]complex128, len(items))
		for i, it := range items {
			if !isNumeric(it) {
				failf("cannot convert %s element to a number", it.Tag)
			}
			out[i] = asComplex(it)
		}
		return out
	}
	xs := asFloats(v, n)
	out := make([]complex128, len(xs))
	for i, x := range xs {
		out[i] = complex(x, 0)
	}
	return out
}

func truthy(v Value) bool {
	switch v.Tag {
	case VTNone:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTNum:
		return v.Data.(float64) != 0
	case VTComplex:
		return v.Data.(complex128) != 0
	case VTStr:
		return v.Data.(string) != ""
	case VTList:
		return len(v.Data.([]Value)) > 0
	case VTMap:
		return len(v.Data.(*MapObject).Keys) > 0
	case VTArray:
		xs := v.Data.([]float64)
		if len(xs) == 1 {
			return xs[0] != 0
		}
		if len(xs) == 0 {
			return false
		}
		fail("the truth value of an array with more than one element is ambiguous")
	case VTCArray:
		xs := v.Data.([]complex128)
		if len(xs) == 1 {
			return xs[0] != 0
		}
		if len(xs) == 0 {
			return false
		}
		fail("the truth value of an array with more than one element is ambiguous")
	}
	return true
}

// ─────────────────────────────── unary ops ──────────────────────────────────

func unaryOp(op string, v Value) Value {
	if op == "not" {
		return Bool(!truthy(v))
	}
	switch v.Tag {
	case VTBool, VTInt:
		n := asInt(v)
		if op == "+" {
			return Int(n)
		}
		if n == math.MinInt64 {
			return Num(-float64(n))
		}
		return Int(-n)
	case VTNum:
		if op == "+" {
			return v
		}
		return Num(-v.Data.(float64))
	case VTComplex:
		if op == "+" {
			return v
		}
		return Complex(-v.Data.(complex128))
	case VTArray:
		xs := v.Data.([]float64)
		out := make([]float64, len(xs))
		for i, x := range xs {
			if op == "-" {
				x = -x
			}
			out[i] = x
		}
		return Arr(out)
	case VTCArray:
		xs := v.Data.([]complex128)
		out := make([]complex128, len(xs))
		for i, x := range xs {
			if op == "-" {
				x = -x
			}
			out[i] = x
		}
		return CArr(out)
	}
	failf("bad operand type for unary %s: '%s'", op, v.Tag)
	return None
}

// ─────────────────────────────── binary ops ─────────────────────────────────

func isComparison(op string) bool {
	switch op {
	case "<", "<=", ">", ">=":
		return true
	}
	return false
}

// binaryOp applies an arithmetic or comparison operator with numeric
// promotion bool < int < float < complex and array broadcasting.
func binaryOp(op string, a, b Value) Value {
	if complexArrays(a, b) {
		return complexArrayOp(op, a, b)
	}
	if a.Tag == VTArray || b.Tag == VTArray {
		return arrayOp(op, a, b)
	}
	switch op {
	case "==":
		return Bool(equalValues(a, b))
	case "!=":
		return Bool(!equalValues(a, b))
	}

	if a.Tag == VTStr && b.Tag == VTStr {
		return stringOp(op, a.Data.(string), b.Data.(string))
	}
	if op == "*" && a.Tag == VTStr && (b.Tag == VTInt || b.Tag == VTBool) {
		n := max(0, asInt(b))
		checkSize("string repetition", n)
		checkSize("string repetition", n*int64(len(a.Data.(string))))
		return Str(strings.Repeat(a.Data.(string), int(n)))
	}
	if a.Tag == VTList && b.Tag == VTList && op == "+" {
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		out := make([]Value, 0, len(xs)+len(ys))
		return List(append(append(out, xs...), ys...))
	}
	if !isNumeric(a) || !isNumeric(b) {
		failf("unsupported operand type(s) for %s: '%s' and '%s'", op, a.Tag, b.Tag)
	}

	if isComparison(op) {
		if a.Tag == VTComplex || b.Tag == VTComplex {
			failf("'%s' not supported between complex numbers", op)
		}
		if a.Tag != VTNum && b.Tag != VTNum {
			return Bool(compareOrdered(op, asInt(a), asInt(b)))
		}
		return Bool(compareOrdered(op, asFloat(a), asFloat(b)))
	}

	switch {
	case a.Tag == VTComplex || b.Tag == VTComplex:
		return complexOp(op, asComplex(a), asComplex(b))
	case a.Tag == VTNum || b.Tag == VTNum:
		return floatOp(op, asFloat(a), asFloat(b))
	default:
		return intOp(op, asInt(a), asInt(b))
	}
}

func compareOrdered[T int64 | float64 | string](op string, x, y T) bool {
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	default:
		return x >= y
	}
}

func stringOp(op string, x, y string) Value {
	if op == "+" {
		return Str(x + y)
	}
	if isComparison(op) {
		return Bool(compareOrdered(op, x, y))
	}
	failf("unsupported operand type(s) for %s: 'str' and 'str'", op)
	return None
}

// intOp keeps int64 results and falls back to float on overflow.
func intOp(op string, x, y int64) Value {
	switch op {
	case "+":
		s := x + y
		if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
			return Num(float64(x) + float64(y))
		}
		return Int(s)
	case "-":
		s := x - y
		if (x >= 0 && y < 0 && s < 0) || (x < 0 && y > 0 && s >= 0) {
			return Num(float64(x) - float64(y))
		}
		return Int(s)
	case "*":
		if x == 0 || y == 0 {
			return Int(0)
		}
		p := x * y
		if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return Num(float64(x) * float64(y))
		}
		return Int(p)
	case "/":
		if y == 0 {
			fail("division by zero")
		}
		return Num(float64(x) / float64(y))
	case "//":
		if y == 0 {
			fail("integer division or modulo by zero")
		}
		if x == math.MinInt64 && y == -1 {
			return Num(-float64(x))
		}
		q := x / y
		if x%y != 0 && (x < 0) != (y < 0) {
			q--
		}
		return Int(q)
	case "%":
		if y == 0 {
			fail("integer division or modulo by zero")
		}
		if y == -1 {
			return Int(0)
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return Int(r)
	case "**":
		if y < 0 {
			if x == 0 {
				fail("0 cannot be raised to a negative power")
			}
			return Num(math.Pow(float64(x), float64(y)))
		}
		return intPow(x, y)
	case "@":
		fail("matmul requires arrays")
	}
	failf("unsupported operator %s", op)
	return None
}

// intPow computes x**y by squaring; overflow switches to float.
func intPow(x, y int64) Value {
	result, base := int64(1), x
	for e := y; e > 0; e >>= 1 {
		if e&1 == 1 {
			r := intOp("*", result, base)
			if r.Tag != VTInt {
				return Num(math.Pow(float64(x), float64(y)))
			}
			result = r.Data.(int64)
		}
		if e > 1 {
			b := intOp("*", base, base)
			if b.Tag != VTInt {
				return Num(math.Pow(float64(x), float64(y)))
			}
			base = b.Data.(int64)
		}
	}
	return Int(result)
}

func floatOp(op string, x, y float64) Value {
	switch op {
	case "+":
		return Num(x + y)
	case "-":
		return Num(x - y)
	case "*":
		return Num(x * y)
	case "/":
		if y == 0 {
			fail("float division by zero")
		}
		return Num(x / y)
	case "//":
		if y == 0 {
			fail("float floor division by zero")
		}
		return Num(math.Floor(x / y))
	case "%":
		if y == 0 {
			fail("float modulo")
		}
		return Num(pyMod(x, y))
	case "**":
		if x == 0 && y < 0 {
			fail("0.0 cannot be raised to a negative power")
		}
		if x < 0 && y != math.Trunc(y) {
			return Complex(cmplx.Pow(complex(x, 0), complex(y, 0)))
		}
		return Num(math.Pow(x, y))
	case "@":
		fail("matmul requires arrays")
	}
	failf("unsupported operator %s", op)
	return None
}

// pyMod is the floored modulo: the result takes the sign of y.
func pyMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

func complexOp(op string, x, y complex128) Value {
	switch op {
	case "+":
		return Complex(x + y)
	case "-":
		return Complex(x - y)
	case "*":
		return Complex(x * y)
	case "/":
		if y == 0 {
			fail("complex division by zero")
		}
		return Complex(x / y)
	case "**":
		if x == 0 {
			if real(y) < 0 || imag(y) != 0 {
				fail("0.0 to a negative or complex power")
			}
			if y == 0 {
				return Complex(1)
			}
			return Complex(0)
		}
		if n := real(y); imag(y) == 0 && n == math.Trunc(n) && math.Abs(n) <= 100 {
			return Complex(complexIntPow(x, int(n)))
		}
		return Complex(cmplx.Pow(x, y))
	case "//", "%":
		fail("can't take floor or mod of complex number.")
	case "@":
		fail("matmul requires arrays")
	}
	failf("unsupported operator %s", op)
	return None
}

// complexIntPow raises x to a small integer power by squaring, which keeps
// results like 1j**2 exact.
func complexIntPow(x complex128, n int) complex128 {
	neg := n < 0
	if neg {
		n = -n
	}
	r := complex(1, 0)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r *= x
		}
		x *= x
	}
	if neg {
		return 1 / r
	}
	return r
}

// broadcastLen is the length of the first array operand, or -1 for none.
func broadcastLen(a, b Value) int {
	for _, v := range []Value{a, b} {
		switch v.Tag {
		case VTArray:
			return len(v.Data.([]float64))
		case VTCArray:
			return len(v.Data.([]complex128))
		}
	}
	return -1
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// arrayOp applies op element-wise, broadcasting scalars. Division by zero
// follows IEEE rules (inf/nan) like numpy rather than faulting. Comparisons
// yield 1/0 arrays.
func arrayOp(op string, a, b Value) Value {
	n := broadcastLen(a, b)
	xs, ys := asFloats(a, n), asFloats(b, n)
	if len(xs) != len(ys) {
		failf("operands could not be broadcast together with shapes (%d,) (%d,)", len(xs), len(ys))
	}
	if op == "@" {
		return Num(dotFloats(xs, ys))
	}
	out := make([]float64, len(xs))
	for i := range xs {
		x, y := xs[i], ys[i]
		switch op {
		case "+":
			out[i] = x + y
		case "-":
			out[i] = x - y
		case "*":
			out[i] = x * y
		case "/":
			out[i] = x / y
		case "//":
			out[i] = math.Floor(x / y)
		case "%":
			if y == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = pyMod(x, y)
			}
		case "**":
			out[i] = math.Pow(x, y)
		case "<", "<=", ">", ">=":
			out[i] = boolFloat(compareOrdered(op, x, y))
		case "==":
			out[i] = boolFloat(x == y)
		case "!=":
			out[i] = boolFloat(x != y)
		default:
			failf("operator %s is not supported on arrays", op)
		}
	}
	return Arr(out)
}

// complexArrays reports whether a binary op between a and b needs the
// complex array path.
func complexArrays(a, b Value) bool {
	if a.Tag == VTCArray || b.Tag == VTCArray {
		return true
	}
	return (a.Tag == VTArray && b.Tag == VTComplex) || (a.Tag == VTComplex && b.Tag == VTArray)
}

// complexArrayOp is arrayOp over complex128. Ordering comparisons and
// floor/mod are undefined for complex values.
func complexArrayOp(op string, a, b Value) Value {
	n := broadcastLen(a, b)
	xs, ys := asComplexes(a, n), asComplexes(b, n)
	if len(xs) != len(ys) {
		failf("operands could not be broadcast together with shapes (%d,) (%d,)", len(xs), len(ys))
	}
	switch op {
	case "@":
		var s complex128
		for i := range xs {
			s += xs[i] * ys[i]
		}
		return Complex(s)
	case "==", "!=":
		out := make([]float64, len(xs))
		for i := range xs {
			out[i] = boolFloat((xs[i] == ys[i]) == (op == "=="))
		}
		return Arr(out)
	}
	out := make([]complex128, len(xs))
	for i := range xs {
		x, y := xs[i], ys[i]
		switch op {
		case "+":
			out[i] = x + y
		case "-":
			out[i] = x - y
		case "*":
			out[i] = x * y
		case "/":
			out[i] = x / y
		case "**":
			if p := real(y); imag(y) == 0 && p == math.Trunc(p) && math.Abs(p) <= 100 {
				out[i] = complexIntPow(x, int(p))
			} else {
				out[i] = cmplx.Pow(x, y)
			}
		default:
			failf("operator %s is not supported on complex arrays", op)
		}
	}
	return CArr(out)
}

func dotFloats(xs, ys []float64) float64 {
	s := 0.0
	for i := range xs {
		s += xs[i] * ys[i]
	}
	return s
}

// ─────────────────────────────── equality ───────────────────────────────────

func equalValues(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		if a.Tag == VTComplex || b.Tag == VTComplex {
			return asComplex(a) == asComplex(b)
		}
		if a.Tag == VTNum || b.Tag == VTNum {
			return asFloat(a) == asFloat(b)
		}
		return asInt(a) == asInt(b)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTNone:
		return true
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		xs, ys := a.Data.([]Value), b.Data.([]Value)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !equalValues(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case VTMap:
		return a.Data.(*MapObject) == b.Data.(*MapObject)
	case VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	}
	return false
}

// ─────────────────────────────── indexing ───────────────────────────────────

func normIndex(idx Value, n int) int {
	if !(idx.Tag == VTInt || idx.Tag == VTBool) {
		failf("indices must be integers, not %s", idx.Tag)
	}
	i := asInt(idx)
	if i < 0 {
		i += int64(n)
	}
	if i < 0 || i >= int64(n) {
		fail("index out of range")
	}
	return int(i)
}

func indexValue(obj, idx Value) Value {
	switch obj.Tag {
	case VTList:
		xs := obj.Data.([]Value)
		return xs[normIndex(idx, len(xs))]
	case VTArray:
		xs := obj.Data.([]float64)
		return Num(xs[normIndex(idx, len(xs))])
	case VTCArray:
		xs := obj.Data.([]complex128)
		return Complex(xs[normIndex(idx, len(xs))])
	case VTStr:
		rs := []rune(obj.Data.(string))
		return Str(string(rs[normIndex(idx, len(rs))]))
	case VTMap:
		if idx.Tag != VTStr {
			failf("dict keys must be str, not %s", idx.Tag)
		}
		m := obj.Data.(*MapObject)
		v, ok := m.Entries[idx.Data.(string)]
		if !ok {
			failf("key not found: '%s'", idx.Data.(string))
		}
		return v
	}
	failf("'%s' object is not subscriptable", obj.Tag)
	return None
}

func setIndex(obj, idx, v Value) {
	switch obj.Tag {
	case VTList:
		xs := obj.Data.([]Value)
		xs[normIndex(idx, len(xs))] = v
		return
	case VTArray:
		xs := obj.Data.([]float64)
		if !isReal(v) {
			failf("cannot store %s in an array", v.Tag)
		}
		xs[normIndex(idx, len(xs))] = asFloat(v)
		return
	case VTCArray:
		xs := obj.Data.([]complex128)
		if !isNumeric(v) {
			failf("cannot store %s in an array", v.Tag)
		}
		xs[normIndex(idx, len(xs))] = asComplex(v)
		return
	case VTMap:
		if idx.Tag != VTStr {
			failf("dict keys must be str, not %s", idx.Tag)
		}
		m := obj.Data.(*MapObject)
		if m.Frozen {
			fail("'dict' object is read-only")
		}
		m.Set(idx.Data.(string), v)
		return
	}
	failf("'%s' object does not support item assignment", obj.Tag)
}
