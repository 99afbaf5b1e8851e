package semantic

import (
	"strconv"
	"strings"

	"github.com/miorlan/swagger-validator/internal/domain"
	"gopkg.in/yaml.v3"
)

// schemaHandlers run, in this order, at every node the walker visits
var schemaHandlers = []Handler{
	validateArrayItems,
	validateDefaultValue,
	validateRequiredDefinitions,
}

// ValidateSchemaObjects walks every schema-bearing location of the document:
// definitions, global parameters and responses, and the parameters and
// responses of every path and operation.
func ValidateSchemaObjects(doc *domain.ResolvedDocument, schemas domain.SchemaValidator) domain.Results {
	var results domain.Results
	c := &Context{Document: doc.Root, Sink: &results, Schemas: schemas}
	skip := NewSkipList(doc.References)

	walk := func(node *yaml.Node, path domain.Pointer) {
		Walk(c, skip, node, path, schemaHandlers)
	}
	walkResponse := func(node *yaml.Node, path domain.Pointer) {
		if skip.Has(path) {
			return
		}
		walk(node, path)
		for _, header := range nodes.MapPairs(nodes.GetMapValue(node, "headers")) {
			walk(header.Value, path.Append("headers", header.Key))
		}
	}

	for _, def := range nodes.MapPairs(nodes.GetMapValue(doc.Root, "definitions")) {
		walk(def.Value, domain.NewPointer("definitions", def.Key))
	}
	for _, param := range nodes.MapPairs(nodes.GetMapValue(doc.Root, "parameters")) {
		walk(param.Value, domain.NewPointer("parameters", param.Key))
	}
	for _, resp := range nodes.MapPairs(nodes.GetMapValue(doc.Root, "responses")) {
		walkResponse(resp.Value, domain.NewPointer("responses", resp.Key))
	}

	for _, item := range pathItems(doc.Root) {
		pathPtr := domain.NewPointer("paths", item.Key)
		for i, param := range nodes.SeqItems(nodes.GetMapValue(item.Value, "parameters")) {
			walk(param, pathPtr.Append("parameters", strconv.Itoa(i)))
		}
		for _, op := range operations(item.Value) {
			opPtr := pathPtr.Append(op.Key)
			for i, param := range nodes.SeqItems(nodes.GetMapValue(op.Value, "parameters")) {
				walk(param, opPtr.Append("parameters", strconv.Itoa(i)))
			}
			for _, resp := range nodes.MapPairs(nodes.GetMapValue(op.Value, "responses")) {
				if strings.HasPrefix(resp.Key, "x-") {
					continue
				}
				walkResponse(resp.Value, opPtr.Append("responses", resp.Key))
			}
		}
	}

	return results
}

// validateArrayItems reports array schemas without items
func validateArrayItems(c *Context, node *yaml.Node, path domain.Pointer) {
	if schemaType(node) == "array" && !nodes.HasMapKey(node, "items") {
		c.Sink.AddError(domain.NewDiagnostic(domain.CodeObjectMissingRequiredProperty, path,
			"Missing required property: items"))
	}
}

// validateDefaultValue checks default against the schema that declares it
func validateDefaultValue(c *Context, node *yaml.Node, path domain.Pointer) {
	def := nodes.GetMapValue(node, "default")
	if def == nil || c.Schemas == nil {
		return
	}

	results := c.Schemas.ValidateAgainstSchema(node, nodes.NodeToInterface(def))
	for _, d := range results.Errors {
		d.Path = path.Append(d.Path...).Append("default")
		c.Sink.AddError(d)
	}
	for _, d := range results.Warnings {
		d.Path = path.Append(d.Path...).Append("default")
		c.Sink.AddWarning(d)
	}
}

// validateRequiredDefinitions reports required properties that neither the schema
// nor any schema it inherits from via allOf defines
func validateRequiredDefinitions(c *Context, node *yaml.Node, path domain.Pointer) {
	required := nodes.SeqItems(nodes.GetMapValue(node, "required"))
	if len(required) == 0 {
		return
	}

	defined := make(map[string]bool)
	collectProperties(node, defined, make(map[*yaml.Node]bool))

	for _, r := range required {
		name := nodes.GetStringValue(r)
		if !defined[name] {
			c.Sink.AddError(domain.NewDiagnostic(domain.CodeObjectMissingRequiredPropertyDefinition, path,
				"Missing required property definition: %s", name))
		}
	}
}

// collectProperties adds the effective property names of node to out
func collectProperties(node *yaml.Node, out map[string]bool, seen map[*yaml.Node]bool) {
	node = nodes.Resolve(node)
	if node == nil || seen[node] {
		return
	}
	seen[node] = true

	for _, name := range nodes.GetMapKeys(nodes.GetMapValue(node, "properties")) {
		out[name] = true
	}
	for _, parent := range nodes.SeqItems(nodes.GetMapValue(node, "allOf")) {
		collectProperties(parent, out, seen)
	}
}
