package table

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	fblock "github.com/YuukanOO/FBlock"
)

// Document is the YAML layout written by EncodeYAML.
type Document struct {
	Source  string       `yaml:"source,omitempty"`
	Columns []string     `yaml:"columns"`
	Rows    []*yaml.Node `yaml:"rows"`
}

// YAMLEncoder renders a table as a YAML document. Each row becomes a
// mapping whose keys follow the column order.
type YAMLEncoder struct {
	sourceKey string
}

// EncodeYAML creates a YAMLEncoder. When sourceKey is set, the string stored
// under that key in the execution context is written as the document source.
func EncodeYAML(sourceKey string) *YAMLEncoder {
	return &YAMLEncoder{sourceKey: sourceKey}
}

// Name implements fblock.Component.
func (*YAMLEncoder) Name() fblock.Name {
	return "table.encode_yaml"
}

// Process implements fblock.Component.
func (e *YAMLEncoder) Process(jc *fblock.Context, in *Table) ([]byte, error) {
	if in == nil {
		return nil, errors.New("encode yaml: nil table")
	}

	doc := Document{
		Columns: in.Columns(),
		Rows:    make([]*yaml.Node, 0, in.Len()),
	}
	if e.sourceKey != "" {
		doc.Source = fblock.Get[string](jc, e.sourceKey)
	}

	for _, row := range in.rows {
		node := &yaml.Node{Kind: yaml.MappingNode}
		for i, c := range in.columns {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: row[i]},
			)
		}
		doc.Rows = append(doc.Rows, node)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "unable to encode table")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "unable to flush yaml encoder")
	}
	return buf.Bytes(), nil
}
