package domain

import "fmt"

// Code identifies the kind of a validation finding
type Code uint8

const (
	CodeObjectMissingRequiredProperty Code = iota + 1
	CodeObjectMissingRequiredPropertyDefinition
	CodeUnresolvableReference
	CodeCircularInheritance
	CodeUnusedDefinition
	CodeEquivalentPath
	CodeDuplicateParameter
	CodeDuplicateOperationID
	CodeMultipleBodyParameters
	CodeInvalidParameterCombination
	CodeMissingPathParameterDefinition
	CodeMissingPathParameterDeclaration

	// Codes reported by the generic schema validator for default values.
	CodeInvalidType
	CodeEnumMismatch
	CodeInvalidFormat
	CodePattern
	CodeMinimum
	CodeMaximum
	CodeMinLength
	CodeMaxLength
	CodeArrayLengthShort
	CodeArrayLengthLong
	CodeArrayUnique
	CodeSchemaValidationFailed
)

var codeNames = map[Code]string{
	CodeObjectMissingRequiredProperty:           "OBJECT_MISSING_REQUIRED_PROPERTY",
	CodeObjectMissingRequiredPropertyDefinition: "OBJECT_MISSING_REQUIRED_PROPERTY_DEFINITION",
	CodeUnresolvableReference:                   "UNRESOLVABLE_REFERENCE",
	CodeCircularInheritance:                     "CIRCULAR_INHERITANCE",
	CodeUnusedDefinition:                        "UNUSED_DEFINITION",
	CodeEquivalentPath:                          "EQUIVALENT_PATH",
	CodeDuplicateParameter:                      "DUPLICATE_PARAMETER",
	CodeDuplicateOperationID:                    "DUPLICATE_OPERATIONID",
	CodeMultipleBodyParameters:                  "MULTIPLE_BODY_PARAMETERS",
	CodeInvalidParameterCombination:             "INVALID_PARAMETER_COMBINATION",
	CodeMissingPathParameterDefinition:          "MISSING_PATH_PARAMETER_DEFINITION",
	CodeMissingPathParameterDeclaration:         "MISSING_PATH_PARAMETER_DECLARATION",
	CodeInvalidType:                             "INVALID_TYPE",
	CodeEnumMismatch:                            "ENUM_MISMATCH",
	CodeInvalidFormat:                           "INVALID_FORMAT",
	CodePattern:                                 "PATTERN",
	CodeMinimum:                                 "MINIMUM",
	CodeMaximum:                                 "MAXIMUM",
	CodeMinLength:                               "MIN_LENGTH",
	CodeMaxLength:                               "MAX_LENGTH",
	CodeArrayLengthShort:                        "ARRAY_LENGTH_SHORT",
	CodeArrayLengthLong:                         "ARRAY_LENGTH_LONG",
	CodeArrayUnique:                             "ARRAY_UNIQUE",
	CodeSchemaValidationFailed:                  "SCHEMA_VALIDATION_FAILED",
}

// String returns the wire name of the code
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// MarshalText implements encoding.TextMarshaler
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Diagnostic is a single validation finding
type Diagnostic struct {
	Code    Code
	Message string
	Path    Pointer
	// Cause is the underlying error, if any (e.g. why a reference failed to resolve)
	Cause error
}

// NewDiagnostic creates a Diagnostic with a formatted message
func NewDiagnostic(code Code, path Pointer, format string, args ...any) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

// WithCause returns a copy of d carrying cause
func (d Diagnostic) WithCause(cause error) Diagnostic {
	d.Cause = cause
	return d
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Path, d.Message, d.Code)
}

// Results accumulates errors and warnings in the order they are reported
type Results struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// AddError appends an error
func (r *Results) AddError(d Diagnostic) {
	r.Errors = append(r.Errors, d)
}

// AddWarning appends a warning
func (r *Results) AddWarning(d Diagnostic) {
	r.Warnings = append(r.Warnings, d)
}

// Merge appends other's errors and warnings after the receiver's
func (r *Results) Merge(other Results) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Valid reports whether no errors were recorded
func (r Results) Valid() bool {
	return len(r.Errors) == 0
}
