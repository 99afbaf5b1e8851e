package nodeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, content string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(content), &doc))
	return &doc
}

func TestNodeHelper_MapAccess(t *testing.T) {
	h := &NodeHelper{}
	root := parse(t, `
zeta: 1
alpha:
  $ref: '#/definitions/Pet'
list: [a, b]
`)

	assert.True(t, h.IsMap(root))
	assert.Equal(t, []string{"zeta", "alpha", "list"}, h.GetMapKeys(root))
	assert.True(t, h.HasMapKey(root, "list"))
	assert.False(t, h.HasMapKey(root, "missing"))
	assert.Equal(t, "1", h.GetStringValue(h.GetMapValue(root, "zeta")))

	alpha := h.GetMapValue(root, "alpha")
	assert.True(t, h.IsRef(alpha))
	assert.Equal(t, "#/definitions/Pet", h.GetRef(alpha))
	assert.False(t, h.IsRef(root))

	list := h.GetMapValue(root, "list")
	assert.True(t, h.IsSeq(list))
	require.Len(t, h.SeqItems(list), 2)
	assert.Nil(t, h.SeqItems(alpha))
	assert.Nil(t, h.MapPairs(list))
}

func TestNodeHelper_RefMustBeScalar(t *testing.T) {
	h := &NodeHelper{}
	node := parse(t, "$ref:\n  nested: true\n")

	assert.False(t, h.IsRef(node))
	assert.Empty(t, h.GetRef(node))
}

func TestNodeHelper_Aliases(t *testing.T) {
	h := &NodeHelper{}
	root := parse(t, `
base: &base
  type: string
copy: *base
`)

	copied := h.GetMapValue(root, "copy")
	require.NotNil(t, copied)
	assert.Equal(t, yaml.MappingNode, copied.Kind)
	assert.Equal(t, "string", h.GetStringValue(h.GetMapValue(copied, "type")))

	clone := h.CloneNode(root)
	assert.Equal(t, yaml.MappingNode, clone.Kind)
	assert.Equal(t, yaml.MappingNode, clone.Content[3].Kind)
}

func TestNodeHelper_Lookup(t *testing.T) {
	h := &NodeHelper{}
	root := parse(t, `
definitions:
  Dog:
    allOf:
      - type: object
      - type: string
`)

	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{"sequence index", []string{"definitions", "Dog", "allOf", "1", "type"}, "string"},
		{"missing key", []string{"definitions", "Cat"}, ""},
		{"index out of range", []string{"definitions", "Dog", "allOf", "2"}, ""},
		{"non numeric index", []string{"definitions", "Dog", "allOf", "first"}, ""},
		{"through scalar", []string{"definitions", "Dog", "allOf", "0", "type", "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.Lookup(root, tt.tokens)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, h.GetStringValue(got))
		})
	}

	assert.Equal(t, yaml.MappingNode, h.Lookup(root, nil).Kind)
}

func TestNodeHelper_NodeToInterface(t *testing.T) {
	h := &NodeHelper{}
	root := parse(t, `
count: 3
ratio: 0.5
enabled: true
name: rex
tags: [a, 1]
nothing: null
`)

	assert.Equal(t, map[string]interface{}{
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"name":    "rex",
		"tags":    []interface{}{"a", 1},
		"nothing": nil,
	}, h.NodeToInterface(root))
}

func TestNodeHelper_CloneIsIndependent(t *testing.T) {
	h := &NodeHelper{}
	root := parse(t, "name: rex\n")

	clone := h.CloneNode(root)
	h.GetMapValue(clone, "name").Value = "fido"

	assert.Equal(t, "rex", h.GetStringValue(h.GetMapValue(root, "name")))
}
