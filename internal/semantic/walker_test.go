package semantic

import (
	"testing"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// recorder returns a handler that records every visited path
func recorder(visited *[]string) Handler {
	return func(c *Context, node *yaml.Node, path domain.Pointer) {
		*visited = append(*visited, path.String())
	}
}

func walkRecorded(t *testing.T, content string, path domain.Pointer, skip SkipList) []string {
	t.Helper()
	var visited []string
	var results domain.Results
	c := &Context{Sink: &results}
	Walk(c, skip, parseNode(t, content), path, []Handler{recorder(&visited)})
	return visited
}

func TestWalk_PostOrder(t *testing.T) {
	visited := walkRecorded(t, `
type: object
additionalProperties:
  type: string
allOf:
  - type: object
    properties:
      x:
        type: string
properties:
  tags:
    type: array
    items:
      type: string
  name:
    type: string
`, domain.NewPointer("definitions", "Pet"), SkipList{})

	assert.Equal(t, []string{
		"#/definitions/Pet/additionalProperties",
		"#/definitions/Pet/allOf/0/properties/x",
		"#/definitions/Pet/allOf/0",
		"#/definitions/Pet/properties/tags/items",
		"#/definitions/Pet/properties/tags",
		"#/definitions/Pet/properties/name",
		"#/definitions/Pet",
	}, visited)
}

func TestWalk_SkipList(t *testing.T) {
	content := `
type: object
properties:
  owner:
    type: object
    properties:
      name:
        type: string
  id:
    type: integer
`
	skip := SkipList{}
	skip.Add(domain.NewPointer("definitions", "Pet", "properties", "owner"))

	visited := walkRecorded(t, content, domain.NewPointer("definitions", "Pet"), skip)
	assert.Equal(t, []string{
		"#/definitions/Pet/properties/id",
		"#/definitions/Pet",
	}, visited)

	skip.Add(domain.NewPointer("definitions", "Pet"))
	assert.Empty(t, walkRecorded(t, content, domain.NewPointer("definitions", "Pet"), skip))
}

func TestWalk_SchemaWrapper(t *testing.T) {
	visited := walkRecorded(t, `
name: body
in: body
schema:
  type: array
  items:
    type: string
`, domain.NewPointer("parameters", "body"), SkipList{})

	assert.Equal(t, []string{
		"#/parameters/body/schema/items",
		"#/parameters/body/schema",
	}, visited)
}

func TestWalk_LeafStillHandled(t *testing.T) {
	visited := walkRecorded(t, "type: string\n", domain.NewPointer("definitions", "Name"), SkipList{})
	assert.Equal(t, []string{"#/definitions/Name"}, visited)
}

func TestWalk_IgnoresNonSchemaChildren(t *testing.T) {
	visited := walkRecorded(t, `
type: object
additionalProperties: false
properties:
  list:
    type: array
`, domain.NewPointer("definitions", "Thing"), SkipList{})

	assert.Equal(t, []string{
		"#/definitions/Thing/properties/list",
		"#/definitions/Thing",
	}, visited)
}

func TestWalk_NestedCompositionInsideItems(t *testing.T) {
	visited := walkRecorded(t, `
type: array
items:
  type: object
  allOf:
    - type: object
  properties:
    a:
      type: string
`, domain.NewPointer("definitions", "List"), SkipList{})

	assert.Equal(t, []string{
		"#/definitions/List/items/allOf/0",
		"#/definitions/List/items/properties/a",
		"#/definitions/List/items",
		"#/definitions/List",
	}, visited)
}

func TestNewSkipList(t *testing.T) {
	skip := NewSkipList([]domain.RefMetadata{
		{Ptr: domain.NewPointer("definitions", "Dog", "allOf", "0"), Ref: "#/definitions/Pet"},
		{Ptr: domain.NewPointer("paths", "/pets", "get", "parameters", "0"), Ref: "#/parameters/limit", Missing: true},
	})

	require.Len(t, skip, 2)
	assert.True(t, skip.Has(domain.NewPointer("definitions", "Dog", "allOf", "0")))
	assert.False(t, skip.Has(domain.NewPointer("definitions", "Dog")))
}
