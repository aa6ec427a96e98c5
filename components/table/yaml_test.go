package table_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	fblock "github.com/YuukanOO/FBlock"
	"github.com/YuukanOO/FBlock/components/table"
)

type decoded struct {
	Source  string              `yaml:"source"`
	Columns []string            `yaml:"columns"`
	Rows    []map[string]string `yaml:"rows"`
}

func TestEncodeYAML(t *testing.T) {
	const sourceKey = "test.source"

	t.Run("writes source and rows", func(t *testing.T) {
		setSource := fblock.Transform("set-source", func(jc *fblock.Context, in *table.Table) *table.Table {
			jc.Set(sourceKey, "people.csv")
			return in
		})
		job := fblock.Start(fblock.NewJob[*table.Table, []byte]("encode"), setSource).End(table.EncodeYAML(sourceKey))

		out, err := job.Run(context.Background(), sample(t))
		require.NoError(t, err)

		var got decoded
		require.NoError(t, yaml.Unmarshal(out, &got))

		want := decoded{
			Source:  "people.csv",
			Columns: []string{"id", "name", "city"},
			Rows: []map[string]string{
				{"id": "1", "name": "alice", "city": "paris"},
				{"id": "2", "name": "bob", "city": "lyon"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps column order and quotes numbers", func(t *testing.T) {
		out, err := table.EncodeYAML("").Process(fblock.NewContext(context.Background(), nil), sample(t))
		require.NoError(t, err)

		text := string(out)
		assert.NotContains(t, text, "source:")
		assert.Contains(t, text, `id: "1"`)
		assert.Less(t, strings.Index(text, "name: alice"), strings.Index(text, "city: paris"))
	})

	t.Run("empty table", func(t *testing.T) {
		out, err := table.EncodeYAML(sourceKey).Process(nil, table.New("a"))
		require.NoError(t, err)

		var got decoded
		require.NoError(t, yaml.Unmarshal(out, &got))
		assert.Empty(t, got.Rows)
		assert.Equal(t, []string{"a"}, got.Columns)
	})

	t.Run("nil table", func(t *testing.T) {
		_, err := table.EncodeYAML("").Process(nil, nil)
		assert.Error(t, err)
	})
}
