package suite

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/subsel/internal/ir"
)

// ParseYAML extracts selections from YAML source. Decoding goes through
// yaml.Node so that mapping order survives.
func ParseYAML(src []byte) ([]Selection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}

	root, ok := lookup(doc.Content[0], "selection")
	if !ok {
		return nil, fmt.Errorf("line %d: no selection mapping found", doc.Content[0].Line)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: selection must be a mapping", root.Line)
	}

	var out []Selection
	for i := 0; i+1 < len(root.Content); i += 2 {
		sel, err := yamlSelection(root.Content[i].Value, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// selectionBody is the part of a selection plain decoding can handle.
type selectionBody struct {
	Description string      `yaml:"description"`
	Rows        int         `yaml:"rows"`
	User        *ir.User    `yaml:"user"`
	Subject     *ir.Subject `yaml:"subject"`
	Criteria    yaml.Node   `yaml:"criteria"`
}

func yamlSelection(name string, n *yaml.Node) (Selection, error) {
	var body selectionBody
	if err := n.Decode(&body); err != nil {
		return Selection{}, fmt.Errorf("selection %q: %w", name, err)
	}
	if body.Criteria.Kind == 0 {
		return Selection{}, fmt.Errorf("line %d: selection %q: criteria is required", n.Line, name)
	}
	crit, err := DecodeCriteria(&body.Criteria)
	if err != nil {
		return Selection{}, fmt.Errorf("selection %q: %w", name, err)
	}
	return Selection{
		Name:        name,
		Description: body.Description,
		Rows:        body.Rows,
		User:        body.User,
		Subject:     body.Subject,
		Criteria:    crit,
	}, nil
}

// DecodeCriteria reads criteria from a mapping, or from a sequence of
// single-pair mappings, in document order.
func DecodeCriteria(n *yaml.Node) ([]ir.Criterion, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return pairs(n)
	case yaml.SequenceNode:
		var out []ir.Criterion
		for _, item := range n.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return nil, fmt.Errorf("line %d: criteria list entries must have exactly one key", item.Line)
			}
			crit, err := pairs(item)
			if err != nil {
				return nil, err
			}
			out = append(out, crit...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: criteria must be a mapping or a list", n.Line)
	}
}

func pairs(n *yaml.Node) ([]ir.Criterion, error) {
	var out []ir.Criterion
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value of %q must be a scalar", v.Line, k.Value)
		}
		out = append(out, ir.C(k.Value, yamlScalar(v)))
	}
	return out, nil
}

// yamlScalar maps YAML booleans to yes/no; everything else is used as written.
func yamlScalar(n *yaml.Node) string {
	if n.Tag == "!!bool" {
		var b bool
		if err := n.Decode(&b); err == nil {
			if b {
				return "yes"
			}
			return "no"
		}
	}
	return n.Value
}

func lookup(n *yaml.Node, key string) (*yaml.Node, bool) {
	if n.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1], true
		}
	}
	return nil, false
}
