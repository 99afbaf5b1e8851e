package domain

import "gopkg.in/yaml.v3"

// RefMetadata describes one location that originally held a $ref
type RefMetadata struct {
	// Ptr is the location of the $ref object in the document
	Ptr Pointer
	// Ref is the raw reference string
	Ref string
	// Target is the referenced location; nil when the reference is missing
	Target   Pointer
	Missing  bool
	Err      error
	Circular bool
}

// ResolvedDocument is a document with local references dereferenced
type ResolvedDocument struct {
	// Root is the mapping node of the resolved tree
	Root *yaml.Node
	// References holds one entry per original $ref location, in document order
	References []RefMetadata
}
