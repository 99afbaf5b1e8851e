// Package nodeutil provides helpers for reading yaml.Node trees while preserving key order.
package nodeutil

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// NodeHelper provides utilities for working with yaml.Node while preserving order
type NodeHelper struct{}

// Pair is one key/value entry of a mapping node
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Resolve follows alias nodes and unwraps document nodes
func (h *NodeHelper) Resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		default:
			return node
		}
	}
	return nil
}

// IsMap reports whether node is a mapping node
func (h *NodeHelper) IsMap(node *yaml.Node) bool {
	node = h.Resolve(node)
	return node != nil && node.Kind == yaml.MappingNode
}

// IsSeq reports whether node is a sequence node
func (h *NodeHelper) IsSeq(node *yaml.Node) bool {
	node = h.Resolve(node)
	return node != nil && node.Kind == yaml.SequenceNode
}

// GetMapValue gets a value from a mapping node by key
func (h *NodeHelper) GetMapValue(node *yaml.Node, key string) *yaml.Node {
	node = h.Resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return h.Resolve(node.Content[i+1])
		}
	}
	return nil
}

// HasMapKey checks if a mapping node has a key
func (h *NodeHelper) HasMapKey(node *yaml.Node, key string) bool {
	return h.GetMapValue(node, key) != nil
}

// MapPairs returns the entries of a mapping node in document order
func (h *NodeHelper) MapPairs(node *yaml.Node) []Pair {
	node = h.Resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, Pair{Key: node.Content[i].Value, Value: h.Resolve(node.Content[i+1])})
	}
	return pairs
}

// GetMapKeys returns all keys from a mapping node in order
func (h *NodeHelper) GetMapKeys(node *yaml.Node) []string {
	pairs := h.MapPairs(node)
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// SeqItems returns the items of a sequence node
func (h *NodeHelper) SeqItems(node *yaml.Node) []*yaml.Node {
	node = h.Resolve(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]*yaml.Node, 0, len(node.Content))
	for _, item := range node.Content {
		items = append(items, h.Resolve(item))
	}
	return items
}

// GetStringValue gets a string value from a scalar node
func (h *NodeHelper) GetStringValue(node *yaml.Node) string {
	node = h.Resolve(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// GetRef gets the $ref value from a node
func (h *NodeHelper) GetRef(node *yaml.Node) string {
	return h.GetStringValue(h.GetMapValue(node, "$ref"))
}

// IsRef checks if a node is a $ref object
func (h *NodeHelper) IsRef(node *yaml.Node) bool {
	ref := h.GetMapValue(node, "$ref")
	return ref != nil && ref.Kind == yaml.ScalarNode
}

// Lookup follows tokens from node; array tokens are decimal indices
func (h *NodeHelper) Lookup(node *yaml.Node, tokens []string) *yaml.Node {
	current := h.Resolve(node)
	for _, token := range tokens {
		if current == nil {
			return nil
		}
		switch current.Kind {
		case yaml.MappingNode:
			current = h.GetMapValue(current, token)
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(token)
			if err != nil || idx < 0 || idx >= len(current.Content) {
				return nil
			}
			current = h.Resolve(current.Content[idx])
		default:
			return nil
		}
	}
	return current
}

// NodeToInterface converts yaml.Node to interface{}; mapping keys are always strings
func (h *NodeHelper) NodeToInterface(node *yaml.Node) interface{} {
	node = h.Resolve(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		result := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			result[node.Content[i].Value] = h.NodeToInterface(node.Content[i+1])
		}
		return result
	case yaml.SequenceNode:
		result := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			result = append(result, h.NodeToInterface(item))
		}
		return result
	case yaml.ScalarNode:
		var v interface{}
		if err := node.Decode(&v); err == nil {
			return v
		}
		return node.Value
	default:
		return node.Value
	}
}

// CloneNode creates a deep copy of a yaml.Node; aliases are expanded
func (h *NodeHelper) CloneNode(node *yaml.Node) *yaml.Node {
	node = h.Resolve(node)
	if node == nil {
		return nil
	}
	clone := &yaml.Node{
		Kind:   node.Kind,
		Style:  node.Style,
		Tag:    node.Tag,
		Value:  node.Value,
		Line:   node.Line,
		Column: node.Column,
	}
	if len(node.Content) > 0 {
		clone.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			clone.Content[i] = h.CloneNode(child)
		}
	}
	return clone
}
