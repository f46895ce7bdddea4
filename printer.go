package pycalc

import (
	"math"
	"strconv"
	"strings"
)

/* ---------- public ---------- */

// FormatValue renders v the way the REPL prints a result: text is printed
// raw, everything else uses its repr.
func FormatValue(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return Repr(v)
}

// Repr renders v using Python conventions (quoted strings, True/False/None,
// shortest round-trip floats, (a+bj) complex numbers).
func Repr(v Value) string {
	switch v.Tag {
	case VTNone:
		return "None"
	case VTBool:
		if v.Data.(bool) {
			return "True"
		}
		return "False"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return formatFloat(v.Data.(float64))
	case VTComplex:
		return formatComplex(v.Data.(complex128))
	case VTStr:
		return quoteString(v.Data.(string))
	case VTArray:
		return formatArray(v.Data.([]float64))
	case VTCArray:
		return formatComplexArray(v.Data.([]complex128))
	case VTList:
		items := v.Data.([]Value)
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = Repr(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTMap:
		m := v.Data.(*MapObject)
		parts := make([]string, len(m.Keys))
		for i, k := range m.Keys {
			parts[i] = quoteString(k) + ": " + Repr(m.Entries[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFun:
		return "<function " + v.Data.(*Fun).Name + ">"
	}
	return "<?>"
}

/* ---------- numbers ---------- */

// formatFloat mirrors Python's float repr: fixed notation with at least one
// decimal for 1e-4 <= |x| < 1e16, otherwise exponent notation with a signed,
// two-digit exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)
	if f != 0 && (exp < -4 || exp >= 16) {
		sign := "+"
		if exp < 0 {
			sign, exp = "-", -exp
		}
		e := strconv.Itoa(exp)
		if len(e) < 2 {
			e = "0" + e
		}
		return mant + "e" + sign + e
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// complexPart formats one component of a complex number (no forced ".0").
func complexPart(f float64) string {
	return strings.TrimSuffix(formatFloat(f), ".0")
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if re == 0 && !math.Signbit(re) {
		return complexPart(im) + "j"
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return "(" + complexPart(re) + sign + complexPart(im) + "j)"
}

// formatArray prints numpy-style: space separated, whole numbers as "3.".
func formatArray(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = arrayElem(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// formatComplexArray prints elements as "1.+2.j".
func formatComplexArray(xs []complex128) string {
	parts := make([]string, len(xs))
	for i, c := range xs {
		im := imag(c)
		sign := "+"
		if math.Signbit(im) {
			sign, im = "-", -im
		}
		parts[i] = arrayElem(real(c)) + sign + arrayElem(im) + "j"
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func arrayElem(x float64) string {
	if !math.IsNaN(x) && !math.IsInf(x, 0) && x == math.Trunc(x) && math.Abs(x) < 1e16 {
		return strconv.FormatFloat(x, 'f', 0, 64) + "."
	}
	return formatFloat(x)
}

/* ---------- strings ---------- */

func quoteString(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
