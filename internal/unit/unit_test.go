package unit

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/dimension"
	"github.com/san-kum/unitlab/internal/measure"
	"github.com/san-kum/unitlab/internal/physics"
)

func closeTo(a, b, rel float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func TestProductNormalization(t *testing.T) {
	if Metre.Pow(2) != Metre.Multiply(Metre) {
		t.Error("m^2 and m*m should intern to the same unit")
	}
	if !Metre.Pow(2).Equal(SquareMetre) {
		t.Error("m^2 should equal SquareMetre")
	}

	a := Kilogram.Multiply(Metre).Per(Second.Pow(2))
	b := Second.Pow(-2).Multiply(Metre).Multiply(Kilogram)
	if a != b {
		t.Errorf("%s and %s should be the same product", a, b)
	}

	if Metre.Multiply(Second).Per(Second) != Metre {
		t.Error("a single factor with exponent one should collapse to the unit")
	}
}

func TestPowZeroAndSelfDivision(t *testing.T) {
	for _, u := range []*Unit{Metre, Kilometre, Newton, MetresPerSecond, Celsius} {
		if u.Pow(0) != One {
			t.Errorf("%s^0 = %s, want 1", u, u.Pow(0))
		}
		if u.Per(u) != One {
			t.Errorf("%s/%s = %s, want 1", u, u, u.Per(u))
		}
	}

	c, err := ConverterTo(context.Background(), Metre.Per(Metre), One)
	if err != nil || !c.IsIdentity() {
		t.Errorf("m/m to 1 = %v, %v; want identity", c, err)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name string
		u    *Unit
		n    int
		want *Unit
	}{
		{"square metre", SquareMetre, 2, Metre},
		{"cubic metre", CubicMetre, 3, Metre},
		{"velocity squared", MetresPerSecond.Pow(2), 2, MetresPerSecond},
		{"negative index", Kilometre.Pow(2), -2, Kilometre.Inverse()},
		{"one", One, 4, One},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.u.Root(tt.n)
			if err != nil {
				t.Fatalf("Root(%d) failed: %v", tt.n, err)
			}
			if got != tt.want {
				t.Errorf("Root(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}

	if _, err := Metre.Root(2); !errors.Is(err, measure.ErrArithmetic) {
		t.Errorf("expected ErrArithmetic, got %v", err)
	}
	if _, err := MetresPerSquareSecond.Root(2); !errors.Is(err, measure.ErrArithmetic) {
		t.Errorf("expected ErrArithmetic, got %v", err)
	}
	_, err := SquareMetre.Root(0)
	if !errors.Is(err, measure.ErrArithmetic) || !errors.Is(err, measure.ErrInvalidConverter) {
		t.Errorf("expected zero root to match both sentinels, got %v", err)
	}
}

func TestKilometreIdentities(t *testing.T) {
	fromInt := Must(Metre.Times(float64(int64(1000))))
	fromFloat := Must(Metre.Times(1000.0))
	prefixed := Kilo(Metre)

	units := []*Unit{fromInt, fromFloat, prefixed, Kilometre}
	for _, a := range units {
		if a.String() != "km" {
			t.Errorf("String() = %q, want km", a.String())
		}
		for _, b := range units {
			if a != b {
				t.Errorf("%s and %s are different pointers", a.Key(), b.Key())
			}
			c, err := ConverterTo(context.Background(), a, b)
			if err != nil || !c.IsIdentity() {
				t.Errorf("converter between kilometres = %v, %v", c, err)
			}
		}
	}
}

func TestMultiStepConversion(t *testing.T) {
	ctx := context.Background()
	got, err := Convert(ctx, 30.48, Centimetre, Foot)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !closeTo(got, 1, 1e-15) {
		t.Errorf("30.48 cm = %v ft, want 1", got)
	}

	got, err = Convert(ctx, 1, Mile, Kilometre)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !closeTo(got, 1.609344, 1e-15) {
		t.Errorf("1 mi = %v km", got)
	}

	got, err = Convert(ctx, 36, KilometresPerHour, MetresPerSecond)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !closeTo(got, 10, 1e-15) {
		t.Errorf("36 km/h = %v m/s", got)
	}
}

func TestRoundTrip(t *testing.T) {
	groups := [][]*Unit{
		{Metre, Kilometre, Centimetre, Millimetre, Foot, Inch, Yard, Mile, NauticalMile},
		{Kelvin, Celsius, Fahrenheit},
		{Joule, Kilojoule, Electronvolt, Calorie, Newton.Multiply(Metre)},
		{MetresPerSecond, KilometresPerHour, Knot, Foot.Per(Minute)},
		{CubicMetre, Litre, Centimetre.Pow(3)},
		{Pascal, Bar, Atmosphere, Kilopascal},
		{Kilogram, Gram, Milligram, Pound},
	}
	values := []float64{-1234.5, -1, 0, 0.001, 1, 42, 6.02e23}
	ctx := context.Background()

	for _, g := range groups {
		for _, a := range g {
			for _, b := range g {
				there, err := ConverterTo(ctx, a, b)
				if err != nil {
					t.Fatalf("%s -> %s: %v", a, b, err)
				}
				back, err := ConverterTo(ctx, b, a)
				if err != nil {
					t.Fatalf("%s -> %s: %v", b, a, err)
				}
				for _, v := range values {
					if got := back.Convert(there.Convert(v)); !closeTo(got, v, 1e-9) && math.Abs(got-v) > 1e-9 {
						t.Errorf("%v %s -> %s -> %s = %v", v, a, b, a, got)
					}
				}
			}
		}
	}
}

func TestIdentityConversion(t *testing.T) {
	for _, sym := range Symbols() {
		u, _ := Lookup(sym)
		c, err := ConverterTo(context.Background(), u, u)
		if err != nil || !c.IsIdentity() {
			t.Errorf("%s -> %s = %v, %v", u, u, c, err)
		}
	}
}

func TestIncommensurable(t *testing.T) {
	_, err := ConverterTo(context.Background(), Metre, Kilogram)
	if !errors.Is(err, measure.ErrIncommensurable) {
		t.Fatalf("expected ErrIncommensurable, got %v", err)
	}
	var ce *measure.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConversionError, got %T", err)
	}
	if ce.From != "m" || ce.To != "kg" {
		t.Errorf("ConversionError = %s -> %s", ce.From, ce.To)
	}

	if _, err := ConverterTo(context.Background(), Joule, Watt); !errors.Is(err, measure.ErrIncommensurable) {
		t.Errorf("J -> W: expected ErrIncommensurable, got %v", err)
	}
	if Commensurable(context.Background(), Foot, Second) {
		t.Error("ft and s should not be commensurable")
	}
}

func TestDimensionHomomorphism(t *testing.T) {
	ctx := context.Background()
	units := []*Unit{One, Metre, Kilometre, Second, Hour, Newton, Joule, Celsius, MetresPerSecond, Hertz, Litre}

	for _, a := range units {
		for _, b := range units {
			got := Dimension(ctx, a.Multiply(b))
			want := Dimension(ctx, a).Multiply(Dimension(ctx, b))
			if !got.Equal(want) {
				t.Errorf("dim(%s*%s) = %s, want %s", a, b, got, want)
			}
		}
		for n := -3; n <= 3; n++ {
			got := Dimension(ctx, a.Pow(n))
			want := Dimension(ctx, a).Pow(n)
			if !got.Equal(want) {
				t.Errorf("dim(%s^%d) = %s, want %s", a, n, got, want)
			}
		}
	}
}

func TestDimensionOf(t *testing.T) {
	ctx := context.Background()
	force := dimension.Mass.Multiply(dimension.Length).Divide(dimension.Time.Pow(2))
	tests := []struct {
		u    *Unit
		want dimension.Dimension
	}{
		{Metre, dimension.Length},
		{Kilometre, dimension.Length},
		{Celsius, dimension.Temperature},
		{Newton, force},
		{Joule, force.Multiply(dimension.Length)},
		{Hertz, dimension.None.Divide(dimension.Time)},
		{Radian, dimension.None},
		{Decibel, dimension.None},
	}

	for _, tt := range tests {
		if got := Dimension(ctx, tt.u); !got.Equal(tt.want) {
			t.Errorf("Dimension(%s) = %s, want %s", tt.u, got, tt.want)
		}
	}
}

func TestTemperatures(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		v        float64
		from, to *Unit
		want     float64
	}{
		{100, Celsius, Fahrenheit, 212},
		{-40, Fahrenheit, Celsius, -40},
		{0, Kelvin, Celsius, -273.15},
		{32, Fahrenheit, Kelvin, 273.15},
	}

	for _, tt := range tests {
		got, err := Convert(ctx, tt.v, tt.from, tt.to)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if !closeTo(got, tt.want, 1e-12) {
			t.Errorf("%v %s = %v %s, want %v", tt.v, tt.from, got, tt.to, tt.want)
		}
	}
}

func TestNonLinearProductFails(t *testing.T) {
	celsiusMetre := Celsius.Multiply(Metre)
	if _, err := celsiusMetre.ToSystem(); !errors.Is(err, measure.ErrInvalidConverter) {
		t.Errorf("expected ErrInvalidConverter, got %v", err)
	}
	_, err := ConverterTo(context.Background(), celsiusMetre, Kelvin.Multiply(Metre))
	if !errors.Is(err, measure.ErrInvalidConverter) {
		t.Errorf("expected ErrInvalidConverter, got %v", err)
	}
}

func TestAlternateUnits(t *testing.T) {
	ctx := context.Background()
	c, err := ConverterTo(ctx, Joule, Newton.Multiply(Metre))
	if err != nil {
		t.Fatalf("J -> N·m: %v", err)
	}
	if !c.IsIdentity() {
		t.Errorf("J -> N·m = %s, want identity", c)
	}

	got, err := Convert(ctx, 1, Electronvolt, Joule)
	if err != nil {
		t.Fatalf("eV -> J: %v", err)
	}
	if !closeTo(got, 1.602176634e-19, 1e-15) {
		t.Errorf("1 eV = %v J", got)
	}

	if _, err := NewAlternate("badalt", Kilometre); err == nil {
		t.Error("expected error for alternate over a transformed unit")
	}
	if _, err := NewAlternate("N", Kilogram); err == nil {
		t.Error("expected error redefining N over another parent")
	}
}

func TestStandardUnit(t *testing.T) {
	ctx := context.Background()
	s, err := StandardUnit(Dimension(ctx, Newton))
	if err != nil {
		t.Fatalf("StandardUnit failed: %v", err)
	}
	if s != Kilogram.Multiply(Metre).Per(Second.Pow(2)) {
		t.Errorf("StandardUnit(force) = %s", s)
	}

	if s, _ := StandardUnit(dimension.None); s != One {
		t.Errorf("StandardUnit(none) = %s, want 1", s)
	}

	custom := dimension.Of(dimension.NewBase("Ξ", "test dimension"))
	if _, err := StandardUnit(custom); err == nil {
		t.Error("expected error for base without a standard unit")
	}

	c, err := ToStandard(ctx, Kilometre)
	if err != nil {
		t.Fatalf("ToStandard failed: %v", err)
	}
	if got := c.Convert(2); got != 2000 {
		t.Errorf("2 km = %v m", got)
	}
}

func TestModelScope(t *testing.T) {
	ctx := context.Background()

	if !Dimension(ctx, Metre).Equal(dimension.Length) {
		t.Fatalf("Dimension(m) = %s before scope", Dimension(ctx, Metre))
	}

	err := physics.Within(ctx, physics.Relativistic, func(ctx context.Context) error {
		if got := Dimension(ctx, Metre); !got.Equal(dimension.Time) {
			t.Errorf("Dimension(m) = %s inside relativistic scope", got)
		}
		got, err := Convert(ctx, physics.SpeedOfLight, Metre, Second)
		if err != nil {
			return err
		}
		if got != 1 {
			t.Errorf("c metres = %v s", got)
		}

		c, err := ToStandard(ctx, Kilometre)
		if err != nil {
			return err
		}
		if !closeTo(c.Convert(physics.SpeedOfLight/1000), 1, 1e-15) {
			t.Errorf("km to standard under relativistic model = %s", c)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scope failed: %v", err)
	}

	if !Dimension(ctx, Metre).Equal(dimension.Length) {
		t.Errorf("Dimension(m) = %s after scope", Dimension(ctx, Metre))
	}
	if _, err := ConverterTo(ctx, Metre, Second); !errors.Is(err, measure.ErrIncommensurable) {
		t.Errorf("m -> s outside scope: %v", err)
	}
}

func TestLookupAndRegister(t *testing.T) {
	tests := []struct {
		symbol string
		want   *Unit
	}{
		{"m", Metre},
		{"km", Kilometre},
		{"°C", Celsius},
		{"N", Newton},
		{"km/h", KilometresPerHour},
		{"mg", Milligram},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.symbol)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %v, %v", tt.symbol, got, ok)
		}
	}

	if _, ok := Lookup("furlong"); ok {
		t.Error("furlong should not be registered")
	}

	furlong := Metre.Transform(converter.Must(converter.Exact("201.168", "")))
	if err := Register("fur", furlong); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if furlong.String() != "fur" {
		t.Errorf("String() = %q after Register", furlong.String())
	}
	if err := Register("fur", Metre); err == nil {
		t.Error("expected error rebinding a symbol")
	}
	if err := Register("fur", furlong); err != nil {
		t.Errorf("re-registering the same unit should succeed: %v", err)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		u    *Unit
		want string
	}{
		{One, "1"},
		{Newton, "N"},
		{MetresPerSecond, "m/s"},
		{Metre.Per(Second.Pow(3)), "m·s^-3"},
		{Kilometre.Multiply(Hour.Inverse()), "km/h"},
		{Must(Metre.Times(7)), "m[x*7]"},
		{Kilogram.Multiply(Metre).Multiply(Ampere), "A·kg·m"},
	}

	for _, tt := range tests {
		if got := tt.u.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestStructuralAccessors(t *testing.T) {
	if Kilometre.Kind() != KindTransformed || Kilometre.Parent() != Metre {
		t.Errorf("km kind %s parent %s", Kilometre.Kind(), Kilometre.Parent())
	}
	scale, _, ok := converter.Coefficients(Kilometre.ToParent())
	if !ok || scale.RatString() != "1000" {
		t.Errorf("km scale = %v", scale)
	}

	elems := MetresPerSquareSecond.Elements()
	if len(elems) != 2 || elems[0].Unit != Metre || elems[0].Pow != 1 || elems[1].Unit != Second || elems[1].Pow != -2 {
		t.Errorf("Elements() = %v", elems)
	}
	if len(One.Elements()) != 0 {
		t.Error("One should have no elements")
	}
	if Newton.Kind() != KindAlternate || Newton.Symbol() != "N" {
		t.Errorf("N kind %s symbol %q", Newton.Kind(), Newton.Symbol())
	}
	if !Metre.ToParent().IsIdentity() {
		t.Error("base unit ToParent should be identity")
	}
}

func TestDecibel(t *testing.T) {
	ctx := context.Background()
	got, err := Convert(ctx, 20, Decibel, One)
	if err != nil {
		t.Fatalf("dB -> 1: %v", err)
	}
	if !closeTo(got, 100, 1e-12) {
		t.Errorf("20 dB = %v", got)
	}
	back, err := Convert(ctx, got, One, Decibel)
	if err != nil {
		t.Fatalf("1 -> dB: %v", err)
	}
	if !closeTo(back, 20, 1e-12) {
		t.Errorf("100 = %v dB", back)
	}
	if _, err := Decibel.Multiply(Metre).ToSystem(); !errors.Is(err, measure.ErrInvalidConverter) {
		t.Errorf("dB·m should not have a system converter, got %v", err)
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := Metre.Multiply(Metre)
	b := SquareMetre
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("equal units must hash equally")
	}
	if Metre.Hash() == Second.Hash() {
		t.Error("distinct base units collided")
	}
}

func TestConcurrentInterning(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Unit, 16)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = Candela.Pow(7).Multiply(Mole)
		}(i)
	}
	wg.Wait()

	for _, u := range results[1:] {
		if u != results[0] {
			t.Fatal("concurrent construction produced distinct pointers")
		}
	}
}

func TestLargeValuesStayFinite(t *testing.T) {
	ctx := context.Background()
	got, err := Convert(ctx, 1e305, Mile, NauticalMile)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if want := 1e305 * 1609.344 / 1852; math.IsInf(got, 0) || !closeTo(got, want, 1e-12) {
		t.Errorf("1e305 mi = %g nmi, want %g", got, want)
	}

	back, err := Convert(ctx, got, NauticalMile, Mile)
	if err != nil || !closeTo(back, 1e305, 1e-12) {
		t.Errorf("round trip = %g, %v", back, err)
	}
}
