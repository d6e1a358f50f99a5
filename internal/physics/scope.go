package physics

import "context"

type scope struct {
	model Model
	prev  *scope
}

type scopeKey struct{}

func current(ctx context.Context) *scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// Active returns the model selected in ctx, or Standard.
func Active(ctx context.Context) Model {
	if s := current(ctx); s != nil {
		return s.model
	}
	return Standard
}

// Select returns a child context in which m is active.
func Select(ctx context.Context, m Model) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, &scope{model: m, prev: current(ctx)})
}

// Restore returns a context in which the model selected before the most
// recent Select is active again. With nothing selected it returns ctx.
func Restore(ctx context.Context) context.Context {
	s := current(ctx)
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, s.prev)
}

// Depth is the number of models stacked in ctx.
func Depth(ctx context.Context) int {
	n := 0
	for s := current(ctx); s != nil; s = s.prev {
		n++
	}
	return n
}

// Within runs fn with m active. The caller's ctx is left untouched, so the
// previous model is back in effect however fn returns.
func Within(ctx context.Context, m Model, fn func(ctx context.Context) error) error {
	return fn(Select(ctx, m))
}
