package semantic

import (
	"regexp"
	"strconv"

	"github.com/miorlan/swagger-validator/internal/domain"
	"gopkg.in/yaml.v3"
)

var pathParamRegex = regexp.MustCompile(`\{(.*?)\}`)

// pathAccumulator is the state carried across all paths of one run
type pathAccumulator struct {
	shapes       map[string]bool
	operationIDs map[string]bool
}

// normalizePath replaces every {name} placeholder with a positional marker and
// returns the declared names in order: "/pet/{id}" -> "/pet/{arg0}", ["id"]
func normalizePath(path string) (string, []string) {
	var names []string
	shape := pathParamRegex.ReplaceAllStringFunc(path, func(match string) string {
		names = append(names, match[1:len(match)-1])
		return "{arg" + strconv.Itoa(len(names)-1) + "}"
	})
	return shape, names
}

// ValidatePaths checks path equivalence, duplicate parameters and operationIds,
// body/formData exclusivity, and path parameter declarations against definitions.
func ValidatePaths(root *yaml.Node, model domain.DocumentModel) domain.Results {
	var results domain.Results
	acc := &pathAccumulator{
		shapes:       make(map[string]bool),
		operationIDs: make(map[string]bool),
	}

	for _, item := range pathItems(root) {
		pathPtr := domain.NewPointer("paths", item.Key)
		shape, declared := normalizePath(item.Key)

		if acc.shapes[shape] {
			results.AddError(domain.NewDiagnostic(domain.CodeEquivalentPath, pathPtr,
				"Equivalent path already exists: %s", item.Key))
		} else {
			acc.shapes[shape] = true
		}

		validateDuplicateParameters(nodes.GetMapValue(item.Value, "parameters"), pathPtr.Append("parameters"), &results)

		for _, op := range operations(item.Value) {
			validateOperation(acc, model, item.Key, op.Key, op.Value, declared, &results)
		}
	}

	return results
}

func validateOperation(acc *pathAccumulator, model domain.DocumentModel, path, method string, op *yaml.Node, declared []string, results *domain.Results) {
	opPtr := domain.NewPointer("paths", path, method)

	if id := nodes.GetStringValue(nodes.GetMapValue(op, "operationId")); id != "" {
		if acc.operationIDs[id] {
			results.AddError(domain.NewDiagnostic(domain.CodeDuplicateOperationID, opPtr.Append("operationId"),
				"Cannot have multiple operations with the same operationId: %s", id))
		} else {
			acc.operationIDs[id] = true
		}
	}

	validateDuplicateParameters(nodes.GetMapValue(op, "parameters"), opPtr.Append("parameters"), results)

	var params []domain.ParameterDescriptor
	if model != nil {
		if operation := model.GetOperation(path, method); operation != nil {
			params = operation.Parameters()
		}
	}

	bodyCount, formCount := 0, 0
	var pathParams []domain.ParameterDescriptor
	defined := make(map[string]bool)
	for _, p := range params {
		switch p.In {
		case "body":
			bodyCount++
		case "formData":
			formCount++
		case "path":
			pathParams = append(pathParams, p)
			defined[p.Name] = true
		}
	}

	if bodyCount > 1 {
		results.AddError(domain.NewDiagnostic(domain.CodeMultipleBodyParameters, opPtr,
			"Operation cannot have multiple body parameters"))
	}
	if bodyCount > 0 && formCount > 0 {
		results.AddError(domain.NewDiagnostic(domain.CodeInvalidParameterCombination, opPtr,
			"Operation cannot have a body parameter and a formData parameter"))
	}

	isDeclared := make(map[string]bool, len(declared))
	for _, name := range declared {
		isDeclared[name] = true
		if !defined[name] {
			results.AddError(domain.NewDiagnostic(domain.CodeMissingPathParameterDefinition, opPtr,
				"Path parameter is declared but is not defined: %s", name))
		}
	}
	for _, p := range pathParams {
		if !isDeclared[p.Name] {
			results.AddError(domain.NewDiagnostic(domain.CodeMissingPathParameterDeclaration, p.Ptr,
				"Path parameter is defined but is not declared: %s", p.Name))
		}
	}
}

// validateDuplicateParameters reports parameters repeating an in:name pair within one list
func validateDuplicateParameters(list *yaml.Node, listPtr domain.Pointer, results *domain.Results) {
	seen := make(map[string]bool)
	for i, param := range nodes.SeqItems(list) {
		if nodes.IsRef(param) {
			continue
		}
		key := nodes.GetStringValue(nodes.GetMapValue(param, "in")) + ":" +
			nodes.GetStringValue(nodes.GetMapValue(param, "name"))
		if seen[key] {
			results.AddError(domain.NewDiagnostic(domain.CodeDuplicateParameter, listPtr.Append(strconv.Itoa(i)),
				"Operation cannot have duplicate parameters: %s", key))
			continue
		}
		seen[key] = true
	}
}
