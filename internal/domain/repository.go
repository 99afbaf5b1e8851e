package domain

import (
	"context"

	"gopkg.in/yaml.v3"
)

// Config contains resolver configuration
type Config struct {
	MaxFileSize int64
	MaxDepth    int
}

// FileLoader loads files from filesystem or URL
type FileLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileWriter writes files to filesystem
type FileWriter interface {
	Write(path string, data []byte) error
}

// Parser parses documents preserving key order and serializes output
type Parser interface {
	ParseFile(data []byte) (*yaml.Node, error)
	MarshalNode(node *yaml.Node, format FileFormat) ([]byte, error)
	Marshal(v any, format FileFormat) ([]byte, error)
}

// ReferenceResolver dereferences local $ref pointers and records reference metadata
type ReferenceResolver interface {
	Resolve(ctx context.Context, root *yaml.Node, config Config) (*ResolvedDocument, error)
}

// SchemaValidator validates a value against a JSON-Schema-style schema node
type SchemaValidator interface {
	ValidateAgainstSchema(schema *yaml.Node, value any) Results
}

// ModelBuilder builds the document model accessor from a resolved tree
type ModelBuilder interface {
	Build(root *yaml.Node) (DocumentModel, error)
}

// DocumentModel exposes operations of a resolved document
type DocumentModel interface {
	// GetOperation returns nil when the path or method is not defined
	GetOperation(path, method string) Operation
}

// Operation exposes the consolidated parameter list of an operation
type Operation interface {
	// Parameters merges path-level and operation-level parameters;
	// operation-level parameters win on the same in:name key
	Parameters() []ParameterDescriptor
}

// ParameterDescriptor describes one consolidated parameter
type ParameterDescriptor struct {
	In   string
	Name string
	Ptr  Pointer
}
