package units

import (
	"math"
	"testing"

	"github.com/matzehuels/magnitude/pkg/errors"
)

func TestExponentPowerOfTenBoundaries(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{1, 0},
		{10, 1},
		{100, 2},
		{1e3, 3},
		{999.9999999999999, 2},
		{1000.0000000000001, 3},
		{0.1, -1},
		{0.01, -2},
		{1e-10, -10},
		{1.27e7, 7},
		{9.99e-36, -36},
		{1e22, 22},
		{1e23, 23},
		{1e300, 300},
		{5e-324, -324},
	}

	for _, tt := range tests {
		if got := Exponent(tt.v); got != tt.want {
			t.Errorf("Exponent(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestExponentMatchesFloorLog10(t *testing.T) {
	// Away from boundaries the logarithm is unambiguous.
	for _, v := range []float64{2, 3.5, 42, 1234.5, 0.0042, 6.02e23, 1.6e-19} {
		want := int(math.Floor(math.Log10(v)))
		if got := Exponent(v); got != want {
			t.Errorf("Exponent(%v) = %d, want %d", v, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		wantBase float64
		wantExp  int
		wantUnit string
	}{
		{"metre identity", 1e3, "m", 1e3, 3, "m"},
		{"atom", 1e-10, "m", 1e-10, -10, "m"},
		{"kilometre", 12.7, "km", 12700, 4, "m"},
		{"nanometre", 1, "nm", 1e-9, -9, "m"},
		{"angstrom alias", 1, "angstrom", 1e-10, -10, "m"},
		{"micro sign alias", 1, "µm", 1e-6, -6, "m"},
		{"spelled out", 100, "metres", 100, 2, "m"},
		{"case insensitive alias", 3, "Meter", 3, 0, "m"},
		{"minutes to seconds", 1, "min", 60, 1, "s"},
		{"year", 1, "yr", 31557600, 7, "s"},
		{"light year", 1, "ly", 9460730472580800, 15, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Normalize(tt.value, tt.unit)
			if err != nil {
				t.Fatalf("Normalize(%v, %q) error: %v", tt.value, tt.unit, err)
			}
			if math.Abs(q.BaseValue-tt.wantBase) > 1e-9*tt.wantBase {
				t.Errorf("BaseValue = %v, want %v", q.BaseValue, tt.wantBase)
			}
			if q.Exponent != tt.wantExp {
				t.Errorf("Exponent = %d, want %d", q.Exponent, tt.wantExp)
			}
			if q.BaseUnit.Symbol != tt.wantUnit {
				t.Errorf("BaseUnit = %q, want %q", q.BaseUnit.Symbol, tt.wantUnit)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  string
		code  errors.Code
	}{
		{"unknown unit", 1, "furlong", errors.ErrCodeUnsupportedUnit},
		{"empty unit", 1, "", errors.ErrCodeUnsupportedUnit},
		{"zero", 0, "m", errors.ErrCodeInvalidValue},
		{"negative", -1, "m", errors.ErrCodeInvalidValue},
		{"nan", math.NaN(), "m", errors.ErrCodeInvalidValue},
		{"inf", math.Inf(1), "m", errors.ErrCodeInvalidValue},
		{"overflow after conversion", 1e300, "Gpc", errors.ErrCodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.value, tt.unit)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestConvertTo(t *testing.T) {
	q, err := ConvertTo(1500, "m", "km")
	if err != nil {
		t.Fatalf("ConvertTo error: %v", err)
	}
	if q.BaseValue != 1.5 || q.Exponent != 0 {
		t.Errorf("got %v (exp %d), want 1.5 (exp 0)", q.BaseValue, q.Exponent)
	}

	_, err = ConvertTo(1, "s", "m")
	if !errors.Is(err, errors.ErrCodeUnsupportedUnit) {
		t.Errorf("dimension mismatch: got %v, want UNSUPPORTED_UNIT", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1.27e7", 1.27e7, false},
		{" 100 ", 100, false},
		{"abc", 0, true},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseValue(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidValue) {
			t.Errorf("ParseValue(%q) code = %v", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScientific(t *testing.T) {
	tests := []struct {
		v        float64
		wantMant string
		wantExp  int
	}{
		{1.27e7, "1.27", 7},
		{1e-10, "1.00", -10},
		{100, "1.00", 2},
		{498, "4.98", 2},
		{1.005, "1.01", 0},
		{1.004, "1.00", 0},
		{9.996e2, "1.00", 3},
		{3.48e6, "3.48", 6},
		{-2.5, "-2.50", 0},
		{0, "0.00", 0},
	}

	for _, tt := range tests {
		mant, exp := Scientific(tt.v)
		if mant != tt.wantMant || exp != tt.wantExp {
			t.Errorf("Scientific(%v) = (%q, %d), want (%q, %d)", tt.v, mant, exp, tt.wantMant, tt.wantExp)
		}
	}
}

func TestUnitTable(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range All() {
		if seen[u.Symbol] {
			t.Errorf("duplicate symbol %q", u.Symbol)
		}
		seen[u.Symbol] = true
		if u.Factor <= 0 {
			t.Errorf("unit %q has non-positive factor %v", u.Symbol, u.Factor)
		}
	}

	for alias, symbol := range aliases {
		if _, ok := bySymbol[symbol]; !ok {
			t.Errorf("alias %q points to unknown symbol %q", alias, symbol)
		}
	}

	for _, d := range []Dimension{Length, Time} {
		if _, ok := Base(d); !ok {
			t.Errorf("dimension %q has no base unit", d)
		}
	}
}

func TestAliases(t *testing.T) {
	got := Aliases("ft")
	want := []string{"feet", "foot"}
	if len(got) != len(want) {
		t.Fatalf("Aliases(ft) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Aliases(ft)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, a := range Aliases("Å") {
		if a == "Å" {
			t.Error("Aliases should not repeat the canonical symbol")
		}
	}
	if got := Aliases("nope"); len(got) != 0 {
		t.Errorf("Aliases(nope) = %v, want none", got)
	}
}
