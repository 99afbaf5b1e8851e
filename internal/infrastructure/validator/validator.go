// Package validator wraps kin-openapi's JSON-Schema evaluation so default values
// can be checked against the Swagger 2.0 schema that declares them.
package validator

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/nodeutil"
	"gopkg.in/yaml.v3"
)

// Validator validates JSON values against schema nodes
type Validator struct {
	helper *nodeutil.NodeHelper
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{helper: &nodeutil.NodeHelper{}}
}

// ValidateAgainstSchema validates value against the schema held by schemaNode.
// Diagnostic paths point inside value.
func (v *Validator) ValidateAgainstSchema(schemaNode *yaml.Node, value any) domain.Results {
	var results domain.Results

	schema, err := v.compile(schemaNode)
	if err != nil {
		results.AddError(domain.NewDiagnostic(domain.CodeSchemaValidationFailed, domain.NewPointer(),
			"Schema could not be compiled: %v", err).WithCause(err))
		return results
	}

	value, err = normalizeValue(value)
	if err != nil {
		results.AddError(domain.NewDiagnostic(domain.CodeSchemaValidationFailed, domain.NewPointer(),
			"Value is not JSON compatible: %v", err).WithCause(err))
		return results
	}

	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		for _, e := range flatten(err) {
			results.AddError(toDiagnostic(e))
		}
	}
	return results
}

// compile converts a Swagger 2.0 schema node into an openapi3.Schema
func (v *Validator) compile(schemaNode *yaml.Node) (*openapi3.Schema, error) {
	raw := toJSONSchema(v.helper.NodeToInterface(schemaNode))
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}

	schema := &openapi3.Schema{}
	if err := json.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return schema, nil
}

// normalizeValue round-trips value through encoding/json so numbers become float64
func normalizeValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(err error) []error {
	switch e := err.(type) {
	case openapi3.MultiError:
		var out []error
		for _, inner := range e {
			out = append(out, flatten(inner)...)
		}
		return out
	default:
		return []error{err}
	}
}

func toDiagnostic(err error) domain.Diagnostic {
	schemaErr, ok := err.(*openapi3.SchemaError)
	if !ok {
		return domain.NewDiagnostic(domain.CodeSchemaValidationFailed, domain.NewPointer(), "%s", err.Error()).WithCause(err)
	}

	message := schemaErr.Reason
	if message == "" {
		message = schemaErr.Error()
	}
	return domain.NewDiagnostic(codeFor(schemaErr.SchemaField), domain.NewPointer(schemaErr.JSONPointer()...), "%s", message).
		WithCause(schemaErr)
}

func codeFor(schemaField string) domain.Code {
	switch schemaField {
	case "type":
		return domain.CodeInvalidType
	case "enum":
		return domain.CodeEnumMismatch
	case "format":
		return domain.CodeInvalidFormat
	case "pattern":
		return domain.CodePattern
	case "minimum", "exclusiveMinimum":
		return domain.CodeMinimum
	case "maximum", "exclusiveMaximum":
		return domain.CodeMaximum
	case "minLength":
		return domain.CodeMinLength
	case "maxLength":
		return domain.CodeMaxLength
	case "minItems":
		return domain.CodeArrayLengthShort
	case "maxItems":
		return domain.CodeArrayLengthLong
	case "uniqueItems":
		return domain.CodeArrayUnique
	case "required":
		return domain.CodeObjectMissingRequiredProperty
	default:
		return domain.CodeSchemaValidationFailed
	}
}
