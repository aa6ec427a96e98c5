package table_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fblock "github.com/YuukanOO/FBlock"
	"github.com/YuukanOO/FBlock/components/table"
)

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("projects in requested order", func(t *testing.T) {
		job := fblock.NewJob[*table.Table, *table.Table]("select").StartAndEnd(table.Select("city", "id"))

		got, err := job.Run(ctx, sample(t))
		require.NoError(t, err)

		if diff := cmp.Diff([]string{"city", "id"}, got.Columns()); diff != "" {
			t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
		}
		want := []map[string]string{
			{"city": "paris", "id": "1"},
			{"city": "lyon", "id": "2"},
		}
		if diff := cmp.Diff(want, got.Records()); diff != "" {
			t.Errorf("Records() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no columns keeps the table", func(t *testing.T) {
		in := sample(t)
		got, err := table.Select().Process(nil, in)
		require.NoError(t, err)
		assert.Same(t, in, got)
	})

	t.Run("unknown column", func(t *testing.T) {
		job := fblock.NewJob[*table.Table, *table.Table]("select").StartAndEnd(table.Select("id", "country"))

		_, err := job.Run(ctx, sample(t))
		assert.ErrorIs(t, err, table.ErrUnknownColumn)
		assert.Contains(t, err.Error(), "country")
	})

	t.Run("nil table", func(t *testing.T) {
		_, err := table.Select("id").Process(nil, nil)
		assert.Error(t, err)
	})
}
