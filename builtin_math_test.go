package pycalc

import (
	"math"
	"strings"
	"testing"
)

func Test_Builtins_Constants(t *testing.T) {
	ip := newTestInterpreter()
	wantNum(t, mustEval(t, ip, "pi"), math.Pi)
	wantNum(t, mustEval(t, ip, "tau"), 2*math.Pi)
	wantInt(t, mustEval(t, ip, "c"), 299792458)
	wantInt(t, mustEval(t, ip, "hour"), 3600)
	wantApprox(t, mustEval(t, ip, "foot"), 0.3048)
	wantApprox(t, mustEval(t, ip, "mile"), 1609.344)
	wantApprox(t, mustEval(t, ip, "gallon / quart"), 4)
	wantApprox(t, mustEval(t, ip, "pound"), 0.45359237)
	wantApprox(t, mustEval(t, ip, "sigma_SB"), 5.670374419e-8)
	v := mustEval(t, ip, "i**2")
	if v.Tag != VTComplex || v.Data.(complex128) != -1 {
		t.Fatalf("i**2 = %#v", v)
	}
}

func Test_Builtins_DerivedUnits_RoundLikeFloatArithmetic(t *testing.T) {
	ip := newTestInterpreter()
	in, tsp, oz := 0.0254, 4.92892159375e-6, 28.349523125e-3
	ft := 12 * in
	wantNum(t, mustEval(t, ip, "foot"), ft)
	wantNum(t, mustEval(t, ip, "mile"), 5280*ft)
	wantNum(t, mustEval(t, ip, "acre"), 43560*(ft*ft))
	wantNum(t, mustEval(t, ip, "gallon"), 4*(2*(2*(8*(2*(3*tsp))))))
	wantNum(t, mustEval(t, ip, "us_ton"), 2000*(16*oz))
	wantNum(t, mustEval(t, ip, "foot"), mustEval(t, ip, "12 * inch").Data.(float64))
}

func Test_Builtins_Temperature(t *testing.T) {
	ip := newTestInterpreter()
	wantApprox(t, mustEval(t, ip, "F2C(212)"), 100)
	wantApprox(t, mustEval(t, ip, "C2F(-40)"), -40)
	wantApprox(t, mustEval(t, ip, "C2K(0)"), 273.15)
	wantApprox(t, mustEval(t, ip, "K2C(0)"), -273.15)
	wantArr(t, mustEval(t, ip, "C2F(vec(0, 100))"), 32, 212)
}

func Test_Builtins_Elementwise_ScalarsArraysComplex(t *testing.T) {
	ip := newTestInterpreter()
	wantNum(t, mustEval(t, ip, "sqrt(16)"), 4)
	wantArr(t, mustEval(t, ip, "sqrt(vec(1, 4, 9))"), 1, 2, 3)
	wantApprox(t, mustEval(t, ip, "sin(pi/2)"), 1)
	wantApprox(t, mustEval(t, ip, "arctan(1)"), math.Pi/4)
	wantApprox(t, mustEval(t, ip, "log(e)"), 1)
	wantArr(t, mustEval(t, ip, "exp([0, 0])"), 1, 1)

	v := mustEval(t, ip, "sqrt(-4 + 0j)")
	if v.Tag != VTComplex || v.Data.(complex128) != 2i {
		t.Fatalf("sqrt(-4+0j) = %#v", v)
	}
	if f := mustEval(t, ip, "sqrt(-1)").Data.(float64); !math.IsNaN(f) {
		t.Fatalf("sqrt(-1) = %v, want nan", f)
	}
	_, err := ip.Eval("F2C(1j)")
	wantFault(t, err, "does not accept complex input")
	_, err = ip.Eval("sin('x')")
	wantFault(t, err, "expects a number or array")
}

func Test_Builtins_ComplexParts(t *testing.T) {
	ip := newTestInterpreter()
	wantNum(t, mustEval(t, ip, "Re(3 + 4j)"), 3)
	wantNum(t, mustEval(t, ip, "Im(3 + 4j)"), 4)
	wantInt(t, mustEval(t, ip, "Im(3)"), 0)
	wantNum(t, mustEval(t, ip, "abs(3 + 4j)"), 5)
	wantApprox(t, mustEval(t, ip, "angle(1j)"), math.Pi/2)
	wantNum(t, mustEval(t, ip, "angle(-1)"), math.Pi)
	v := mustEval(t, ip, "conj(1 + 2j)")
	if v.Data.(complex128) != complex(1, -2) {
		t.Fatalf("conj = %#v", v)
	}
}

func Test_Builtins_Mod_Atan2(t *testing.T) {
	ip := newTestInterpreter()
	wantInt(t, mustEval(t, ip, "mod(-7, 3)"), 2)
	wantNum(t, mustEval(t, ip, "mod(7.5, -2)"), -0.5)
	wantApprox(t, mustEval(t, ip, "atan2(1, 1)"), math.Pi/4)
	wantArr(t, mustEval(t, ip, "atan2(vec(0, 1), 1)"), 0, math.Pi/4)
}

func Test_Builtins_Vectors(t *testing.T) {
	ip := newTestInterpreter()
	wantArr(t, mustEval(t, ip, "vec()"))
	wantArr(t, mustEval(t, ip, "cross(vec(1, 0, 0), vec(0, 1, 0))"), 0, 0, 1)
	wantNum(t, mustEval(t, ip, "cross(vec(1, 0), vec(0, 1))"), 1)
	wantNum(t, mustEval(t, ip, "dot(vec(1, 2, 3), vec(4, 5, 6))"), 32)
	wantInt(t, mustEval(t, ip, "dot(2, 3)"), 6)
	wantArr(t, mustEval(t, ip, "abs(vec(-1, 2))"), 1, 2)

	_, err := ip.Eval("cross(vec(1, 2), vec(1, 2, 3))")
	wantFault(t, err, "incompatible dimensions")
	_, err = ip.Eval("vec(1, 'a')")
	wantFault(t, err, "component 1 is str")
}

func Test_Builtins_Formula_WithVectors(t *testing.T) {
	ip := newTestInterpreter()
	mustExec(t, ip, "m = 2\na = vec(0, 0, -9.8)")
	mustExec(t, ip, "F = m*a")
	wantArr(t, mustEval(t, ip, "F"), 0, 0, -19.6)
	mustExec(t, ip, "r = vec(1, 0, 0); p = vec(0, 2, 0)")
	mustExec(t, ip, "L = cross(r, p)")
	wantArr(t, mustEval(t, ip, "L"), 0, 0, 2)
}

func Test_Builtins_Linspace(t *testing.T) {
	if xs := linspace(0, 1, 0); len(xs) != 0 {
		t.Fatalf("n=0: %v", xs)
	}
	if xs := linspace(2, 5, 1); len(xs) != 1 || xs[0] != 2 {
		t.Fatalf("n=1: %v", xs)
	}
	xs := linspace(0, 1, 256)
	if len(xs) != 256 || xs[0] != 0 || xs[255] != 1 {
		t.Fatalf("n=256 endpoints: %v %v (len %d)", xs[0], xs[255], len(xs))
	}
}

func Test_Builtins_PythonHelpers(t *testing.T) {
	ip := newTestInterpreter()
	wantInt(t, mustEval(t, ip, "round(2.5)"), 2)
	wantInt(t, mustEval(t, ip, "round(3.5)"), 4)
	wantNum(t, mustEval(t, ip, "round(3.14159, 2)"), 3.14)
	wantInt(t, mustEval(t, ip, "int(-3.9)"), -3)
	wantInt(t, mustEval(t, ip, "int(' 42 ')"), 42)
	wantNum(t, mustEval(t, ip, "float('1.5')"), 1.5)
	wantInt(t, mustEval(t, ip, "len('αβ')"), 2)
	wantInt(t, mustEval(t, ip, "sum([1, 2, 3])"), 6)
	wantNum(t, mustEval(t, ip, "sum(vec(1, 2))"), 3)
	wantInt(t, mustEval(t, ip, "min(3, 1, 2)"), 1)
	wantInt(t, mustEval(t, ip, "max([3, 1, 2])"), 3)

	_, err := ip.Eval("max([])")
	wantFault(t, err, "empty sequence")
}

func Test_Builtins_Help(t *testing.T) {
	ip := newTestInterpreter()
	v := mustEval(t, ip, "help('G')")
	if !strings.Contains(v.Data.(string), "gravitational constant") {
		t.Fatalf("help('G') = %q", v.Data)
	}
	v = mustEval(t, ip, "help(linspace)")
	if !strings.HasPrefix(v.Data.(string), "linspace(start, stop, num=50)") {
		t.Fatalf("help(linspace) = %q", v.Data)
	}
	v = mustEval(t, ip, "help()")
	idx := v.Data.(string)
	if !strings.Contains(idx, "functions:") || !strings.Contains(idx, "fplot") || !strings.Contains(idx, "k_B") {
		t.Fatalf("help() = %q", idx)
	}
}

func Test_Builtins_GreekSymbols(t *testing.T) {
	ip := newTestInterpreter()
	wantStr(t, mustEval(t, ip, "get_symb['omega']"), "Ωω")
	wantStr(t, mustEval(t, ip, "get_symb['sigma']"), "Σσς")
	wantInt(t, mustEval(t, ip, "len(get_symb)"), 24)
}
