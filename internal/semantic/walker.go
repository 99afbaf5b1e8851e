package semantic

import (
	"strconv"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/nodeutil"
	"gopkg.in/yaml.v3"
)

var nodes = &nodeutil.NodeHelper{}

// Context is the per-run state handed to every schema handler
type Context struct {
	Document *yaml.Node
	Sink     *domain.Results
	Schemas  domain.SchemaValidator
}

// Handler inspects one schema node and appends findings to c.Sink.
// Handlers never modify node.
type Handler func(c *Context, node *yaml.Node, path domain.Pointer)

// SkipList holds pointers whose subtrees are validated at their canonical location
type SkipList map[string]struct{}

// NewSkipList builds a skip-list from reference metadata: every location that held
// a $ref contains a copy of its target.
func NewSkipList(refs []domain.RefMetadata) SkipList {
	skip := make(SkipList, len(refs))
	for _, ref := range refs {
		skip.Add(ref.Ptr)
	}
	return skip
}

// Add adds ptr to the list
func (s SkipList) Add(ptr domain.Pointer) {
	s[ptr.String()] = struct{}{}
}

// Has reports whether ptr is in the list
func (s SkipList) Has(ptr domain.Pointer) bool {
	_, ok := s[ptr.String()]
	return ok
}

// Walk visits node and the schemas it composes with, children first, then runs
// handlers on node. Paths in skip are neither descended into nor handled.
func Walk(c *Context, skip SkipList, node *yaml.Node, path domain.Pointer, handlers []Handler) {
	node = nodes.Resolve(node)
	if node == nil || skip.Has(path) {
		return
	}

	// Parameters and responses wrap their schema; the wrapper is not a schema itself.
	if schema := nodes.GetMapValue(node, "schema"); schema != nil {
		Walk(c, skip, schema, path.Append("schema"), handlers)
		return
	}

	switch schemaType(node) {
	case "array":
		if items := nodes.GetMapValue(node, "items"); nodes.IsMap(items) {
			Walk(c, skip, items, path.Append("items"), handlers)
		}
	case "object":
		if ap := nodes.GetMapValue(node, "additionalProperties"); nodes.IsMap(ap) {
			Walk(c, skip, ap, path.Append("additionalProperties"), handlers)
		}
		for i, member := range nodes.SeqItems(nodes.GetMapValue(node, "allOf")) {
			Walk(c, skip, member, path.Append("allOf", strconv.Itoa(i)), handlers)
		}
		for _, prop := range nodes.MapPairs(nodes.GetMapValue(node, "properties")) {
			Walk(c, skip, prop.Value, path.Append("properties", prop.Key), handlers)
		}
	}

	for _, h := range handlers {
		h(c, node, path)
	}
}

// schemaType returns the declared type, "object" when absent
func schemaType(node *yaml.Node) string {
	t := nodes.GetMapValue(node, "type")
	if t == nil {
		return "object"
	}
	return nodes.GetStringValue(t)
}
