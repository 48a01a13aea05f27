package typeormlint

import (
	"context"
	"errors"
	"testing"

	"github.com/broady/typeormlint/tsast"
)

func testPass() *Pass {
	return NewPass(context.Background(), "test-rule", &tsast.File{Path: "a.ts"}, Options{})
}

func TestChainInterceptors_Empty(t *testing.T) {
	chain := chainInterceptors([]Interceptor{})
	if chain != nil {
		t.Error("expected nil chain for empty interceptors")
	}
}

func TestChainInterceptors_Single(t *testing.T) {
	called := false
	interceptor := func(ctx context.Context, pass *Pass, next PassFunc) error {
		called = true
		return next(ctx, pass)
	}

	chain := chainInterceptors([]Interceptor{interceptor})
	if chain == nil {
		t.Fatal("expected non-nil chain")
	}

	ran := false
	err := chain(context.Background(), testPass(), func(ctx context.Context, pass *Pass) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called || !ran {
		t.Errorf("expected interceptor and pass to run, got called=%v ran=%v", called, ran)
	}
}

func TestChainInterceptors_Multiple(t *testing.T) {
	var order []string
	mk := func(name string) Interceptor {
		return func(ctx context.Context, pass *Pass, next PassFunc) error {
			order = append(order, "before-"+name)
			err := next(ctx, pass)
			order = append(order, "after-"+name)
			return err
		}
	}

	chain := chainInterceptors([]Interceptor{mk("1"), mk("2"), mk("3")})
	err := chain(context.Background(), testPass(), func(ctx context.Context, pass *Pass) error {
		order = append(order, "pass")
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	expectedOrder := []string{"before-1", "before-2", "before-3", "pass", "after-3", "after-2", "after-1"}
	if len(order) != len(expectedOrder) {
		t.Fatalf("expected %d calls, got %d", len(expectedOrder), len(order))
	}
	for i, expected := range expectedOrder {
		if order[i] != expected {
			t.Errorf("at position %d: expected %s, got %s", i, expected, order[i])
		}
	}
}

func TestChainInterceptors_ErrorPropagation(t *testing.T) {
	testErr := errors.New("test error")

	pass1 := func(ctx context.Context, pass *Pass, next PassFunc) error { return next(ctx, pass) }
	fail := func(ctx context.Context, pass *Pass, next PassFunc) error { return testErr }

	chain := chainInterceptors([]Interceptor{pass1, fail, pass1})
	err := chain(context.Background(), testPass(), func(ctx context.Context, pass *Pass) error {
		t.Error("pass should not run when an interceptor returns an error")
		return nil
	})
	if err != testErr {
		t.Errorf("expected test error, got %v", err)
	}
}

func TestChainInterceptors_SeesDiagnostics(t *testing.T) {
	var seen int
	counter := func(ctx context.Context, pass *Pass, next PassFunc) error {
		err := next(ctx, pass)
		seen = len(pass.Diagnostics())
		return err
	}

	chain := chainInterceptors([]Interceptor{counter})
	err := chain(context.Background(), testPass(), func(ctx context.Context, pass *Pass) error {
		pass.Report(Diagnostic{MessageID: MsgPreferRelation})
		pass.Report(Diagnostic{MessageID: MsgExpectedRelation})
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if seen != 2 {
		t.Errorf("expected 2 diagnostics, got %d", seen)
	}
}

func TestChainInterceptors_ContextPropagation(t *testing.T) {
	type ctxKey string
	key := ctxKey("test-key")

	interceptor := func(ctx context.Context, pass *Pass, next PassFunc) error {
		return next(context.WithValue(ctx, key, "test-value"), pass)
	}

	chain := chainInterceptors([]Interceptor{interceptor})
	err := chain(context.Background(), testPass(), func(ctx context.Context, pass *Pass) error {
		if val := ctx.Value(key); val != "test-value" {
			t.Errorf("expected 'test-value' in context, got %v", val)
		}
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
