package fblock

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

type testOwner string

func (o testOwner) Name() Name { return Name(o) }

type ctxKey struct{}

func TestContext(t *testing.T) {
	t.Run("Set And Get", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("answer", 42)

		if got := Get[int](jc, "answer"); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("Last Set Wins", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("key", "first")
		jc.Set("key", "second")

		if got := Get[string](jc, "key"); got != "second" {
			t.Errorf("expected second, got %q", got)
		}
		if jc.Len() != 1 {
			t.Errorf("expected 1 value, got %d", jc.Len())
		}
	})

	t.Run("Missing Key Returns Zero", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))

		if got := Get[int](jc, "missing"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := Get[string](jc, "missing"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
		if got := Get[*testing.T](jc, "missing"); got != nil {
			t.Errorf("expected nil pointer, got %v", got)
		}
	})

	t.Run("Type Mismatch Returns Zero", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("number", "not a number")

		if got := Get[int](jc, "number"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("Stored Zero Is Indistinguishable Through Get", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("zero", 0)

		if Get[int](jc, "zero") != Get[int](jc, "never-set") {
			t.Error("Get should not distinguish a stored zero from a missing key")
		}
	})

	t.Run("Lookup Reports Presence", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("zero", 0)
		jc.Set("text", "hello")

		if v, ok := Lookup[int](jc, "zero"); !ok || v != 0 {
			t.Errorf("expected (0, true), got (%d, %v)", v, ok)
		}
		if _, ok := Lookup[int](jc, "never-set"); ok {
			t.Error("expected missing key to report false")
		}
		if _, ok := Lookup[int](jc, "text"); ok {
			t.Error("expected type mismatch to report false")
		}
	})

	t.Run("Lookup On Nil Context", func(t *testing.T) {
		if v, ok := Lookup[int](nil, "key"); ok || v != 0 {
			t.Errorf("expected (0, false), got (%d, %v)", v, ok)
		}
	})

	t.Run("Interface Values", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("err", context.Canceled)

		got := Get[error](jc, "err")
		if got != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", got)
		}
	})

	t.Run("Has And Delete", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("key", 1)

		if !jc.Has("key") {
			t.Error("expected key to be present")
		}
		jc.Delete("key")
		if jc.Has("key") {
			t.Error("expected key to be deleted")
		}
		jc.Delete("never-set")
		if jc.Len() != 0 {
			t.Errorf("expected empty context, got %d values", jc.Len())
		}
	})

	t.Run("Keys Are Sorted", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))
		jc.Set("charlie", 3)
		jc.Set("alpha", 1)
		jc.Set("bravo", 2)

		expected := []string{"alpha", "bravo", "charlie"}
		if keys := jc.Keys(); !reflect.DeepEqual(keys, expected) {
			t.Errorf("expected %v, got %v", expected, keys)
		}
	})

	t.Run("Owner", func(t *testing.T) {
		jc := NewContext(context.Background(), testOwner("owner"))

		if jc.Job().Name() != "owner" {
			t.Errorf("expected owner, got %q", jc.Job().Name())
		}
	})

	t.Run("Run ID", func(t *testing.T) {
		first := NewContext(context.Background(), testOwner("owner"))
		second := NewContext(context.Background(), testOwner("owner"))

		if first.ID() == uuid.Nil {
			t.Error("expected a non-nil run ID")
		}
		if first.ID() == second.ID() {
			t.Error("expected distinct run IDs")
		}
	})

	t.Run("Go Context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), ctxKey{}, "value")
		jc := NewContext(ctx, testOwner("owner"))

		if jc.Context().Value(ctxKey{}) != "value" {
			t.Error("expected the Go context to be carried")
		}
	})

	t.Run("Nil Go Context", func(t *testing.T) {
		jc := NewContext(nil, testOwner("owner")) //nolint:staticcheck // SA1012: testing nil context handling

		if jc.Context() == nil {
			t.Error("expected nil context to be replaced")
		}
	})
}
