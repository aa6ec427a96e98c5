package fblock

import (
	"context"
	"errors"
	"testing"
)

func TestEffect(t *testing.T) {
	t.Run("Passes Input Through", func(t *testing.T) {
		var seen string
		log := Effect("log", func(_ *Context, s string) error {
			seen = s
			return nil
		})

		result, err := log.Process(NewContext(context.Background(), testOwner("owner")), "value")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "value" || seen != "value" {
			t.Errorf("expected value to pass through and be seen, got %q and %q", result, seen)
		}
	})

	t.Run("Writes Context", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		remember := Effect("remember", func(jc *Context, n int) error {
			jc.Set("remembered", n)
			return nil
		})

		if _, err := remember.Process(jc, 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if Get[int](jc, "remembered") != 9 {
			t.Error("expected effect to write the context")
		}
	})

	t.Run("Error Returns Zero", func(t *testing.T) {
		boom := errors.New("invalid")
		validate := Effect("validate", func(_ *Context, _ int) error { return boom })

		result, err := validate.Process(NewContext(context.Background(), testOwner("owner")), 5)
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
		if result != 0 {
			t.Errorf("expected zero value on error, got %d", result)
		}
	})
}
