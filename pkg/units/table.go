package units

import "sort"

// Dimension groups units that can be converted into one another.
type Dimension string

// Supported dimensions.
const (
	Length Dimension = "length"
	Time   Dimension = "time"
)

// Unit is one entry of the closed unit table.
type Unit struct {
	Symbol    string    // Canonical symbol, e.g. "km"
	Name      string    // Human-readable name, e.g. "kilometre"
	Dimension Dimension // Physical dimension
	Factor    float64   // Size of one unit in the dimension's base unit
}

const parsec = 3.0856775814913673e16

// table lists every supported unit, base units first within a dimension.
var table = []Unit{
	{"m", "metre", Length, 1},
	{"l_P", "Planck length", Length, 1.616255e-35},
	{"fm", "femtometre", Length, 1e-15},
	{"pm", "picometre", Length, 1e-12},
	{"Å", "ångström", Length, 1e-10},
	{"nm", "nanometre", Length, 1e-9},
	{"um", "micrometre", Length, 1e-6},
	{"mm", "millimetre", Length, 1e-3},
	{"cm", "centimetre", Length, 1e-2},
	{"in", "inch", Length, 0.0254},
	{"ft", "foot", Length, 0.3048},
	{"yd", "yard", Length, 0.9144},
	{"km", "kilometre", Length, 1e3},
	{"mi", "mile", Length, 1609.344},
	{"nmi", "nautical mile", Length, 1852},
	{"Mm", "megametre", Length, 1e6},
	{"Gm", "gigametre", Length, 1e9},
	{"au", "astronomical unit", Length, 149597870700},
	{"ly", "light-year", Length, 9460730472580800},
	{"pc", "parsec", Length, parsec},
	{"kpc", "kiloparsec", Length, parsec * 1e3},
	{"Mpc", "megaparsec", Length, parsec * 1e6},
	{"Gpc", "gigaparsec", Length, parsec * 1e9},

	{"s", "second", Time, 1},
	{"t_P", "Planck time", Time, 5.391247e-44},
	{"as", "attosecond", Time, 1e-18},
	{"fs", "femtosecond", Time, 1e-15},
	{"ps", "picosecond", Time, 1e-12},
	{"ns", "nanosecond", Time, 1e-9},
	{"us", "microsecond", Time, 1e-6},
	{"ms", "millisecond", Time, 1e-3},
	{"min", "minute", Time, 60},
	{"h", "hour", Time, 3600},
	{"d", "day", Time, 86400},
	{"wk", "week", Time, 604800},
	{"yr", "year", Time, 31557600},
	{"kyr", "kiloyear", Time, 31557600e3},
	{"Myr", "megayear", Time, 31557600e6},
	{"Gyr", "gigayear", Time, 31557600e9},
}

// aliases maps alternative spellings onto canonical symbols.
var aliases = map[string]string{
	"meter": "m", "metre": "m", "meters": "m", "metres": "m",
	"planck_length": "l_P",
	"femtometer": "fm", "femtometre": "fm", "fermi": "fm",
	"picometer": "pm", "picometre": "pm",
	"angstrom": "Å", "Å": "Å", "ångström": "Å",
	"nanometer": "nm", "nanometre": "nm",
	"µm": "um", "μm": "um", "micrometer": "um", "micrometre": "um", "micron": "um",
	"millimeter": "mm", "millimetre": "mm",
	"centimeter": "cm", "centimetre": "cm",
	"inch": "in", "inches": "in",
	"foot": "ft", "feet": "ft",
	"yard": "yd", "yards": "yd",
	"kilometer": "km", "kilometre": "km", "kilometers": "km", "kilometres": "km",
	"mile": "mi", "miles": "mi",
	"nautical_mile": "nmi",
	"astronomical_unit": "au", "AU": "au",
	"light_year": "ly", "lightyear": "ly", "light-year": "ly",
	"parsec": "pc", "kiloparsec": "kpc", "megaparsec": "Mpc", "gigaparsec": "Gpc",

	"second": "s", "seconds": "s", "sec": "s",
	"planck_time": "t_P",
	"attosecond": "as", "femtosecond": "fs", "picosecond": "ps", "nanosecond": "ns",
	"µs": "us", "μs": "us", "microsecond": "us",
	"millisecond": "ms",
	"minute": "min", "minutes": "min",
	"hour": "h", "hours": "h", "hr": "h",
	"day": "d", "days": "d",
	"week": "wk", "weeks": "wk",
	"year": "yr", "years": "yr", "a": "yr",
	"kiloyear": "kyr", "megayear": "Myr", "gigayear": "Gyr",
}

var bySymbol = indexUnits(table)

func indexUnits(units []Unit) map[string]Unit {
	m := make(map[string]Unit, len(units))
	for _, u := range units {
		m[u.Symbol] = u
	}
	return m
}

// All returns a copy of the unit table in declaration order.
func All() []Unit {
	out := make([]Unit, len(table))
	copy(out, table)
	return out
}

// Base returns the base unit of a dimension.
func Base(d Dimension) (Unit, bool) {
	for _, u := range table {
		if u.Dimension == d && u.Factor == 1 {
			return u, true
		}
	}
	return Unit{}, false
}

// Aliases returns the alternative spellings of a canonical symbol, sorted.
func Aliases(symbol string) []string {
	var out []string
	for alias, canonical := range aliases {
		if canonical == symbol && alias != symbol {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
