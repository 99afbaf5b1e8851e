// Package semantic implements the validation rules a JSON-Schema validator cannot
// express for a resolved Swagger 2.0 document: reference-graph integrity, schema
// composition correctness, and path/operation consistency.
//
// All validators are pure functions of the resolved document. Each run owns its
// accumulators, so independent documents may be validated concurrently.
package semantic

import (
	"strings"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/nodeutil"
	"gopkg.in/yaml.v3"
)

// supportedMethods are the path item keys treated as operations
var supportedMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
}

// Validate runs the reference, schema object and path validators and
// concatenates their results in that order.
func Validate(doc *domain.ResolvedDocument, model domain.DocumentModel, schemas domain.SchemaValidator) domain.Results {
	var results domain.Results
	results.Merge(ValidateReferences(doc))
	results.Merge(ValidateSchemaObjects(doc, schemas))
	results.Merge(ValidatePaths(doc.Root, model))
	return results
}

// CheckShape reports whether root has the minimal structure the validators rely on.
// The returned error matches domain.ErrCannotValidate.
func CheckShape(root *yaml.Node) error {
	root = nodes.Resolve(root)
	if root == nil || root.Kind != yaml.MappingNode {
		return &domain.MalformedDocumentError{Path: domain.NewPointer(), Reason: "document must be a mapping"}
	}

	version := nodes.GetMapValue(root, "swagger")
	if version == nil {
		return &domain.MalformedDocumentError{Path: domain.NewPointer("swagger"), Reason: "missing swagger version"}
	}
	if v := nodes.GetStringValue(version); v != "2.0" {
		return &domain.MalformedDocumentError{Path: domain.NewPointer("swagger"), Reason: "unsupported swagger version " + v}
	}

	for _, section := range []string{"paths", "definitions", "parameters", "responses", "securityDefinitions"} {
		if value := nodes.GetMapValue(root, section); value != nil && value.Kind != yaml.MappingNode {
			return &domain.MalformedDocumentError{Path: domain.NewPointer(section), Reason: "must be a mapping"}
		}
	}
	if security := nodes.GetMapValue(root, "security"); security != nil && security.Kind != yaml.SequenceNode {
		return &domain.MalformedDocumentError{Path: domain.NewPointer("security"), Reason: "must be a sequence"}
	}

	for _, item := range pathItems(root) {
		if !nodes.IsMap(item.Value) {
			return &domain.MalformedDocumentError{Path: domain.NewPointer("paths", item.Key), Reason: "path item must be a mapping"}
		}
	}
	return nil
}

// pathItems returns the entries of paths in document order, skipping vendor extensions
func pathItems(root *yaml.Node) []nodeutil.Pair {
	var items []nodeutil.Pair
	for _, pair := range nodes.MapPairs(nodes.GetMapValue(root, "paths")) {
		if strings.HasPrefix(pair.Key, "x-") {
			continue
		}
		items = append(items, pair)
	}
	return items
}

// operations returns the operations of a path item in document order
func operations(item *yaml.Node) []nodeutil.Pair {
	var ops []nodeutil.Pair
	for _, pair := range nodes.MapPairs(item) {
		if supportedMethods[pair.Key] {
			ops = append(ops, pair)
		}
	}
	return ops
}
