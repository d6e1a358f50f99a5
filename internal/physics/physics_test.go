package physics

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/san-kum/unitlab/internal/converter"
	"github.com/san-kum/unitlab/internal/dimension"
)

func TestStandardTable(t *testing.T) {
	tests := []struct {
		symbol string
		want   dimension.Dimension
	}{
		{"m", dimension.Length},
		{"kg", dimension.Mass},
		{"s", dimension.Time},
		{"A", dimension.Current},
		{"K", dimension.Temperature},
		{"mol", dimension.AmountOfSubstance},
		{"cd", dimension.LuminousIntensity},
		{"furlong", dimension.None},
	}

	for _, tt := range tests {
		if got := Standard.Dimension(tt.symbol); !got.Equal(tt.want) {
			t.Errorf("Standard.Dimension(%q) = %s, want %s", tt.symbol, got, tt.want)
		}
		if !Standard.Transform(tt.symbol).IsIdentity() {
			t.Errorf("Standard.Transform(%q) should be identity", tt.symbol)
		}
	}
}

func TestRelativisticOverridesLength(t *testing.T) {
	if got := Relativistic.Dimension("m"); !got.Equal(dimension.Time) {
		t.Errorf("Relativistic.Dimension(m) = %s, want [T]", got)
	}
	if got := Relativistic.Dimension("kg"); !got.Equal(dimension.Mass) {
		t.Errorf("Relativistic.Dimension(kg) = %s, want [M]", got)
	}
	if got := Relativistic.Transform("m").Convert(SpeedOfLight); got != 1 {
		t.Errorf("c metres = %v seconds, want 1", got)
	}
}

func TestNewFillsIdentityTransform(t *testing.T) {
	m := New("info", nil, map[string]Mapping{
		"bit": {Dimension: dimension.Of(dimension.NewBase("B", "information"))},
	})
	if !m.Transform("bit").IsIdentity() {
		t.Error("missing transform should default to identity")
	}
	if !m.Dimension("m").Equal(dimension.Length) {
		t.Error("nil base should fall back to Standard")
	}
}

func TestActiveDefaultsToStandard(t *testing.T) {
	if Active(context.Background()) != Standard {
		t.Error("expected Standard with nothing selected")
	}
	if Active(nil) != Standard {
		t.Error("expected Standard for nil context")
	}
}

func TestSelectRestoreIsAStack(t *testing.T) {
	custom := New("custom", Standard, nil)

	ctx := context.Background()
	ctx1 := Select(ctx, Relativistic)
	ctx2 := Select(ctx1, custom)

	if Active(ctx2) != custom || Depth(ctx2) != 2 {
		t.Fatalf("Active = %s depth %d, want custom depth 2", Active(ctx2).Name(), Depth(ctx2))
	}

	back := Restore(ctx2)
	if Active(back) != Relativistic || Depth(back) != 1 {
		t.Errorf("after one Restore: %s depth %d", Active(back).Name(), Depth(back))
	}

	back = Restore(back)
	if Active(back) != Standard || Depth(back) != 0 {
		t.Errorf("after two Restores: %s depth %d", Active(back).Name(), Depth(back))
	}

	if Restore(ctx) != ctx {
		t.Error("Restore with nothing selected should return ctx")
	}

	if Active(ctx1) != Relativistic {
		t.Error("selecting on a child context leaked into the parent")
	}
}

func TestWithinRestoresOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := Within(ctx, Relativistic, func(ctx context.Context) error {
		if Active(ctx) != Relativistic {
			t.Error("model not active inside scope")
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error not propagated: %v", err)
	}
	if Active(ctx) != Standard {
		t.Error("model still active after scope returned an error")
	}
}

func TestWithinRestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	func() {
		defer func() { _ = recover() }()
		_ = Within(ctx, Relativistic, func(context.Context) error {
			panic("boom")
		})
	}()
	if Active(ctx) != Standard {
		t.Error("model still active after scope panicked")
	}
}

func TestConcurrentScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan string, 64)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			want := Standard
			if idx%2 == 0 {
				want = Relativistic
			}
			_ = Within(ctx, want, func(ctx context.Context) error {
				for j := 0; j < 100; j++ {
					if Active(ctx) != want {
						errs <- want.Name()
						return nil
					}
				}
				return nil
			})
		}(i)
	}

	wg.Wait()
	close(errs)
	for name := range errs {
		t.Errorf("goroutine expecting %s observed another model", name)
	}
}

func TestRegistry(t *testing.T) {
	if m, ok := Lookup("standard"); !ok || m != Standard {
		t.Error("standard model not registered")
	}
	if _, ok := Lookup("relativistic"); !ok {
		t.Error("relativistic model not registered")
	}

	m := New("registry-test", Standard, map[string]Mapping{
		"s": {Dimension: dimension.Time, Transform: converter.Must(converter.Rational(1, 60))},
	})
	if err := Register(m); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := Register(m); err == nil {
		t.Error("expected error registering duplicate name")
	}

	found := false
	for _, n := range Names() {
		if n == "registry-test" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing registry-test", Names())
	}
}
