package fblock

import (
	"context"
	"testing"
)

func TestBuilder(t *testing.T) {
	t.Run("End Returns Job", func(t *testing.T) {
		job := NewJob[int, string]("built")
		defer job.Close()

		returned := Start(job, Transform("inc", func(_ *Context, n int) int { return n + 1 })).
			End(Transform("fmt", func(_ *Context, n int) string { return string(rune('a' + n)) }))
		if returned != job {
			t.Error("End should return the job")
		}

		result, err := job.Run(context.Background(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "b" {
			t.Errorf("expected b, got %q", result)
		}
	})

	t.Run("Same Type Then", func(t *testing.T) {
		job := NewJob[int, int]("same")
		defer job.Close()

		Start(job, Transform("a", func(_ *Context, n int) int { return n + 1 })).
			Then(Transform("b", func(_ *Context, n int) int { return n + 1 })).
			Then(Transform("c", func(_ *Context, n int) int { return n + 1 }))

		result, err := job.Run(context.Background(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != 3 {
			t.Errorf("expected 3, got %d", result)
		}
	})

	t.Run("Long Chain", func(t *testing.T) {
		job := NewJob[int, int]("long")
		defer job.Close()

		inc := Transform("inc", func(_ *Context, n int) int { return n + 1 })
		b := Start(job, inc)
		for i := 1; i < 10000; i++ {
			b = b.Then(inc)
		}

		result, err := job.Run(context.Background(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != 10000 {
			t.Errorf("expected 10000, got %d", result)
		}
	})

	t.Run("Node Name Of Nil Component", func(t *testing.T) {
		n := &node[int, int]{}
		if n.name() != "" {
			t.Errorf("expected empty name, got %q", n.name())
		}
	})
}
