package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/magnitude/pkg/errors"
)

// Quantity is a value normalized into a base unit.
type Quantity struct {
	Value     float64 // Value as given in Unit
	Unit      Unit    // Unit the value was given in
	BaseValue float64 // Value expressed in BaseUnit, always > 0
	BaseUnit  Unit
	Exponent  int // floor(log10(BaseValue))
}

// Lookup resolves a unit symbol or alias against the unit table.
func Lookup(symbol string) (Unit, error) {
	s := strings.TrimSpace(symbol)
	if u, ok := bySymbol[s]; ok {
		return u, nil
	}
	if canonical, ok := aliases[s]; ok {
		return bySymbol[canonical], nil
	}
	if canonical, ok := aliases[strings.ToLower(s)]; ok {
		return bySymbol[canonical], nil
	}
	return Unit{}, &errors.UnsupportedUnitError{Unit: symbol}
}

// ValidateValue checks that v is a strictly positive finite number.
func ValidateValue(v float64) error {
	switch {
	case math.IsNaN(v):
		return &errors.InvalidValueError{Value: "NaN", Reason: "must be a number"}
	case math.IsInf(v, 0):
		return &errors.InvalidValueError{Value: formatFloat(v), Reason: "must be finite"}
	case v <= 0:
		return &errors.InvalidValueError{Value: formatFloat(v), Reason: "must be greater than zero"}
	}
	return nil
}

// ParseValue parses a numeric string such as "1.27e7" and validates it.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &errors.InvalidValueError{Value: strconv.Quote(s), Reason: "is not numeric"}
	}
	if err := ValidateValue(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Normalize converts value, given in unit, into the base unit of the unit's
// dimension.
func Normalize(value float64, unit string) (Quantity, error) {
	u, err := Lookup(unit)
	if err != nil {
		return Quantity{}, err
	}
	base, _ := Base(u.Dimension)
	return convert(value, u, base)
}

// ConvertTo converts value, given in unit, into target. Both units must share
// a dimension.
func ConvertTo(value float64, unit, target string) (Quantity, error) {
	u, err := Lookup(unit)
	if err != nil {
		return Quantity{}, err
	}
	t, err := Lookup(target)
	if err != nil {
		return Quantity{}, err
	}
	if u.Dimension != t.Dimension {
		return Quantity{}, &errors.UnsupportedUnitError{Unit: unit, Target: target}
	}
	return convert(value, u, t)
}

func convert(value float64, from, to Unit) (Quantity, error) {
	if err := ValidateValue(value); err != nil {
		return Quantity{}, err
	}
	base := value * from.Factor
	if from.Symbol != to.Symbol {
		base /= to.Factor
	}
	// Products of extreme values can still leave the float64 range.
	if err := ValidateValue(base); err != nil {
		return Quantity{}, &errors.InvalidValueError{
			Value:  formatFloat(value) + " " + from.Symbol,
			Reason: "is out of range when converted to " + to.Symbol,
		}
	}
	return Quantity{
		Value:     value,
		Unit:      from,
		BaseValue: base,
		BaseUnit:  to,
		Exponent:  Exponent(base),
	}, nil
}

// Exponent returns floor(log10(v)) for a positive finite v.
//
// The exponent is read from the shortest decimal representation of v. That
// representation never crosses a power of ten that v itself does not reach,
// so Exponent(1000) is exactly 3 and Exponent(999.9999999999999) is 2.
func Exponent(v float64) int {
	_, exp := decimalDigits(v)
	return exp
}

// Scientific formats v as a two-decimal mantissa and an exponent, rounding
// half up. A mantissa that rounds to 10.00 carries into the exponent.
//
//	Scientific(1.27e7)  // "1.27", 7
//	Scientific(9.996e2) // "1.00", 3
func Scientific(v float64) (string, int) {
	if v == 0 {
		return "0.00", 0
	}
	digits, exp := decimalDigits(math.Abs(v))
	for len(digits) < 4 {
		digits += "0"
	}
	n, _ := strconv.Atoi(digits[:3])
	if digits[3] >= '5' {
		n++
	}
	if n == 1000 {
		n = 100
		exp++
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + strconv.Itoa(n/100) + "." + twoDigits(n%100), exp
}

// decimalDigits returns the significant digits of the shortest decimal
// representation of v and its base-10 exponent.
func decimalDigits(v float64) (string, int) {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	return strings.Replace(mant, ".", "", 1), exp
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
