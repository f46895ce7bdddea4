package pycalc

import (
	"math"
	"testing"
)

func Test_Printer_Floats_PythonRepr(t *testing.T) {
	cases := map[float64]string{
		0:                 "0.0",
		1:                 "1.0",
		-2.5:              "-2.5",
		0.1:               "0.1",
		1e-4:              "0.0001",
		1e-5:              "1e-05",
		6.674e-11:         "6.674e-11",
		299792458.5:       "299792458.5",
		1e16:              "1e+16",
		123456789012345.6: "123456789012345.6",
		6.02214076e23:     "6.02214076e+23",
		math.Inf(1):       "inf",
		math.Inf(-1):      "-inf",
	}
	for f, want := range cases {
		if got := formatFloat(f); got != want {
			t.Fatalf("formatFloat(%v) = %q, want %q", f, got, want)
		}
	}
	if got := formatFloat(math.NaN()); got != "nan" {
		t.Fatalf("nan = %q", got)
	}
}

func Test_Printer_Complex(t *testing.T) {
	cases := []struct {
		c    complex128
		want string
	}{
		{1i, "1j"},
		{complex(0, -2.5), "-2.5j"},
		{complex(1, 2), "(1+2j)"},
		{complex(1.5, -2), "(1.5-2j)"},
		{complex(-2, 1), "(-2+1j)"},
	}
	for _, c := range cases {
		if got := Repr(Complex(c.c)); got != c.want {
			t.Fatalf("Repr(%v) = %q, want %q", c.c, got, c.want)
		}
	}
}

func Test_Printer_Arrays_NumpyStyle(t *testing.T) {
	if got := Repr(Arr([]float64{1, 2.5, 3})); got != "[1. 2.5 3.]" {
		t.Fatalf("got %q", got)
	}
	if got := Repr(Arr(nil)); got != "[]" {
		t.Fatalf("empty array = %q", got)
	}
	if got := Repr(Arr([]float64{math.NaN(), math.Inf(1)})); got != "[nan inf]" {
		t.Fatalf("got %q", got)
	}
}

func Test_Printer_ComplexArrays_NumpyStyle(t *testing.T) {
	got := Repr(CArr([]complex128{1i, complex(1.5, -2), complex(-1, 0)}))
	if got != "[0.+1.j 1.5-2.j -1.+0.j]" {
		t.Fatalf("got %q", got)
	}
	if got := Repr(CArr(nil)); got != "[]" {
		t.Fatalf("empty complex array = %q", got)
	}
}

func Test_Printer_Scalars_And_Containers(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(2))
	m.Set("a", Str("x"))
	cases := []struct {
		v    Value
		want string
	}{
		{None, "None"},
		{Bool(true), "True"},
		{Int(-4), "-4"},
		{Str("it's"), `"it's"`},
		{Str("a\nb"), `'a\nb'`},
		{List([]Value{Int(1), Str("x"), None}), "[1, 'x', None]"},
		{MapVal(m), "{'b': 2, 'a': 'x'}"},
		{FunVal(&Fun{Name: "f"}), "<function f>"},
	}
	for _, c := range cases {
		if got := Repr(c.v); got != c.want {
			t.Fatalf("Repr = %q, want %q", got, c.want)
		}
	}
}

func Test_Printer_FormatValue_TextIsRaw(t *testing.T) {
	if got := FormatValue(Str("plot...")); got != "plot..." {
		t.Fatalf("got %q", got)
	}
	if got := FormatValue(Int(4)); got != "4" {
		t.Fatalf("got %q", got)
	}
	if got := Str("x").String(); got != "x" {
		t.Fatalf("Value.String = %q", got)
	}
}
