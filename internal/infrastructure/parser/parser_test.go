package parser

import (
	"encoding/json"
	"testing"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParser_ParseFile_YAML(t *testing.T) {
	p := NewParser()
	node, err := p.ParseFile([]byte(`
swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
paths: {}
`))
	require.NoError(t, err)
	require.Equal(t, yaml.DocumentNode, node.Kind)

	root := node.Content[0]
	require.Equal(t, yaml.MappingNode, root.Kind)
	assert.Equal(t, "swagger", root.Content[0].Value)
	assert.Equal(t, "info", root.Content[2].Value)
	assert.Equal(t, "paths", root.Content[4].Value)
}

func TestParser_ParseFile_JSONKeepsOrder(t *testing.T) {
	p := NewParser()
	node, err := p.ParseFile([]byte(`{"paths":{"/b":{},"/a":{}},"swagger":"2.0"}`))
	require.NoError(t, err)

	root := node.Content[0]
	paths := root.Content[1]
	assert.Equal(t, "/b", paths.Content[0].Value)
	assert.Equal(t, "/a", paths.Content[2].Value)
}

func TestParser_ParseFile_Invalid(t *testing.T) {
	_, err := NewParser().ParseFile([]byte("a: [1, 2"))
	assert.Error(t, err)
}

func TestParser_MarshalNode_JSON(t *testing.T) {
	p := NewParser()
	node, err := p.ParseFile([]byte(`
b: 1
a:
  - "x"
  - true
  - null
c: {}
"200": 2.5
`))
	require.NoError(t, err)

	data, err := p.MarshalNode(node, domain.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    \"x\",\n    true,\n    null\n  ],\n  \"c\": {},\n  \"200\": 2.5\n}\n", string(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
}

func TestParser_MarshalNode_YAML(t *testing.T) {
	p := NewParser()
	node, err := p.ParseFile([]byte("swagger: \"2.0\"\npaths: {}\n"))
	require.NoError(t, err)

	data, err := p.MarshalNode(node, domain.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), `swagger: "2.0"`)
}

func TestParser_Marshal(t *testing.T) {
	p := NewParser()
	value := map[string]interface{}{"valid": true}

	data, err := p.Marshal(value, domain.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true}`, string(data))

	data, err = p.Marshal(value, domain.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "valid: true\n", string(data))
}
