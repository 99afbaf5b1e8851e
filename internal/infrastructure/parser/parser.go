package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/miorlan/swagger-validator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Parser provides parsing functionality that preserves key order
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses YAML/JSON data into a yaml.Node preserving order.
// JSON is a subset of YAML, so both formats go through the YAML decoder.
func (p *Parser) ParseFile(data []byte) (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// MarshalNode marshals a yaml.Node to YAML or JSON bytes
func (p *Parser) MarshalNode(node *yaml.Node, format domain.FileFormat) ([]byte, error) {
	if format == domain.FormatJSON {
		return p.marshalJSON(node)
	}
	return p.marshalYAML(node)
}

// Marshal serializes a Go value (e.g. a report) to YAML or JSON
func (p *Parser) Marshal(v any, format domain.FileFormat) ([]byte, error) {
	if format == domain.FormatJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalYAML marshals to YAML format
func (p *Parser) marshalYAML(node *yaml.Node) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return []byte(buf.String()), nil
}

// marshalJSON marshals to JSON format preserving key order
func (p *Parser) marshalJSON(node *yaml.Node) ([]byte, error) {
	var buf strings.Builder
	if err := p.writeJSONNode(&buf, node, 0); err != nil {
		return nil, err
	}
	buf.WriteString("\n")
	return []byte(buf.String()), nil
}

// writeJSONNode writes a yaml.Node as JSON
func (p *Parser) writeJSONNode(buf *strings.Builder, node *yaml.Node, indent int) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	indentStr := strings.Repeat("  ", indent)
	nextIndent := strings.Repeat("  ", indent+1)

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return p.writeJSONNode(buf, node.Content[0], indent)
		}
		buf.WriteString("null")

	case yaml.AliasNode:
		return p.writeJSONNode(buf, node.Alias, indent)

	case yaml.MappingNode:
		if len(node.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(nextIndent)
			if err := p.writeJSONValue(buf, node.Content[i].Value); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := p.writeJSONNode(buf, node.Content[i+1], indent+1); err != nil {
				return err
			}
		}
		buf.WriteString("\n")
		buf.WriteString(indentStr)
		buf.WriteString("}")

	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(nextIndent)
			if err := p.writeJSONNode(buf, item, indent+1); err != nil {
				return err
			}
		}
		buf.WriteString("\n")
		buf.WriteString(indentStr)
		buf.WriteString("]")

	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			v = node.Value
		}
		return p.writeJSONValue(buf, v)

	default:
		return fmt.Errorf("unsupported node kind %d", node.Kind)
	}
	return nil
}

// writeJSONValue writes a scalar Go value as JSON
func (p *Parser) writeJSONValue(buf *strings.Builder, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
