package gridfmt

import (
	"io"

	"gopkg.in/yaml.v3"
)

func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range r.keys {
		var v yaml.Node
		if err := v.Encode(r.values[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&v,
		)
	}
	return node, nil
}

func writeYAML(w io.Writer, s *sheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.records()); err != nil {
		return err
	}
	return enc.Close()
}
