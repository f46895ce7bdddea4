package pycalc

import "math"

// constant is one preloaded name. Units are SI; the unit comment of each
// entry is kept as its help text.
type constant struct {
	name string
	val  Value
	unit string
}

const celsius0 = 273.15 // [K]

const (
	kB   = 1.380649e-23
	hbar = 1.054571817e-34
	cLux = 299792458
)

// Derived values are float64 variables, evaluated step by step in the order
// they are defined, so each one rounds like the float arithmetic users get.
var (
	sigmaSB = math.Pow(math.Pi, 2) * math.Pow(kB, 4) / (60 * math.Pow(hbar, 3) * math.Pow(cLux, 2))

	inch = 0.0254 // [m]
	foot = 12 * inch
	mile = 5280 * foot
	acre = 43560 * (foot * foot)

	teaspoon   = 4.92892159375e-6 // [m^3]
	tablespoon = 3 * teaspoon
	flOz       = 2 * tablespoon
	cup        = 8 * flOz
	pint       = 2 * cup
	quart      = 2 * pint
	gallon     = 4 * quart

	ounce = 28.349523125e-3 // [kg]
	pound = 16 * ounce
	usTon = 2000 * pound
)

// namespaceConstants is the constant table, in declaration order.
var namespaceConstants = []constant{
	// mathematical constants
	{"pi", Num(math.Pi), ""},
	{"e", Num(math.E), ""},
	{"tau", Num(2 * math.Pi), ""},
	{"i", Complex(1i), "imaginary unit"},
	{"rms_sin", Num(math.Sqrt2), "RMS amplitude to peak amplitude"},

	// physical constants
	{"G", Num(6.674e-11), "[m.m.m/kg.s.s] gravitational constant"},
	{"k_B", Num(kB), "[J/K] Boltzmann constant"},
	{"hbar", Num(hbar), "[J.s] reduced Planck constant"},
	{"c", Int(cLux), "[m/s] speed of light"},
	{"epsilon_0", Num(8.8541878128e-12), "[F/m] vacuum permittivity"},
	{"mu_0", Num(1.25663706212e-6), "[H/m] vacuum permeability"},
	{"N_A", Num(6.02214076e23), "[/mol] Avogadro's number"},
	{"sigma_SB", Num(sigmaSB), "[J/m.m.s.K^4] Stefan-Boltzmann constant"},

	// physical data
	{"q_e", Num(1.602176634e-19), "[C] elementary charge"},
	{"m_e", Num(9.1093837015e-31), "[kg] electron mass"},
	{"m_p", Num(1.67262192369e-27), "[kg] proton mass"},
	{"m_n", Num(1.67492749804e-27), "[kg] neutron mass"},
	{"m_u", Num(1.6605390666e-27), "[kg] atomic mass unit (dalton)"},
	{"r_B", Num(5.29177210904e-11), "[m] Bohr radius"},
	{"minute", Int(60), "[s]"},
	{"hour", Int(60 * 60), "[s]"},
	{"day", Int(86400), "[s]"},
	{"year", Num(365.2425 * 86400), "[s]"},
	{"celsius_0", Num(celsius0), "[K] zero Celsius"},
	{"m_E", Num(5.9722e24), "[kg] Earth mass"},
	{"m_S", Num(1.98847e30), "[kg] Sun mass"},
	{"C_H2O", Num(4179.6), "[J/kg.K] specific heat of liquid water at 25 Celsius"},

	// united states customary units
	{"inch", Num(inch), "[m]"},
	{"foot", Num(foot), "[m]"},
	{"mile", Num(mile), "[m]"},
	{"nautical_mile", Int(1852), "[m]"},
	{"acre", Num(acre), "[m.m]"},
	{"teaspoon", Num(teaspoon), "[m.m.m]"},
	{"tablespoon", Num(tablespoon), "[m.m.m]"},
	{"fl_oz", Num(flOz), "[m.m.m]"},
	{"cup", Num(cup), "[m.m.m]"},
	{"pint", Num(pint), "[m.m.m]"},
	{"quart", Num(quart), "[m.m.m]"},
	{"gallon", Num(gallon), "[m.m.m]"},
	{"ounce", Num(ounce), "[kg]"},
	{"pound", Num(pound), "[kg]"},
	{"us_ton", Num(usTon), "[kg]"},
	{"horsepower", Num(735.49875), "[W] metric horsepower"},
}

// greekLetters maps letter names to their upper- and lower-case glyphs.
var greekLetters = []struct{ name, glyphs string }{
	{"alpha", "Αα"}, {"beta", "Ββ"}, {"gamma", "Γγ"}, {"delta", "Δδ"},
	{"epsilon", "Εε"}, {"zeta", "Ζζ"}, {"eta", "Ηη"}, {"theta", "Θθ"},
	{"iota", "Ιι"}, {"kappa", "Κκ"}, {"lambda", "Λλ"}, {"mu", "Μμ"},
	{"nu", "Νν"}, {"xi", "Ξξ"}, {"omicron", "Οο"}, {"pi", "Ππ"},
	{"rho", "Ρρ"}, {"sigma", "Σσς"}, {"tau", "Ττ"}, {"upsilon", "Υυ"},
	{"phi", "Φφ"}, {"chi", "Χχ"}, {"psi", "Ψψ"}, {"omega", "Ωω"},
}

func registerConstants(ip *Interpreter) {
	for _, c := range namespaceConstants {
		ip.Core.Define(c.name, c.val)
	}
	symb := NewMap()
	for _, g := range greekLetters {
		symb.Set(g.name, Str(g.glyphs))
	}
	symb.Frozen = true
	ip.Core.Define("get_symb", MapVal(symb))
}

// constantDoc returns the help text of a preloaded constant.
func constantDoc(name string) (string, bool) {
	for _, c := range namespaceConstants {
		if c.name == name {
			return c.unit, true
		}
	}
	return "", false
}
