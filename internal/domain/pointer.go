package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Pointer is a token-sequence address into the document tree.
// Array indices are stored as their decimal string form.
type Pointer []string

// NewPointer creates a Pointer from the given tokens
func NewPointer(tokens ...string) Pointer {
	p := make(Pointer, len(tokens))
	copy(p, tokens)
	return p
}

// ParsePointer converts a local reference ("#/definitions/Pet") into a Pointer
func ParsePointer(ref string) (Pointer, error) {
	fragment := strings.TrimPrefix(ref, "#")
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}

	jp, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON pointer %q: %w", ref, err)
	}
	return NewPointer(jp.DecodedTokens()...), nil
}

// Append returns a new Pointer with tokens appended; the receiver is never modified
func (p Pointer) Append(tokens ...string) Pointer {
	out := make(Pointer, 0, len(p)+len(tokens))
	out = append(out, p...)
	return append(out, tokens...)
}

// String formats the pointer as a URI fragment ("#/paths/~1pets/get")
func (p Pointer) String() string {
	var b strings.Builder
	b.WriteString("#")
	for _, token := range p {
		b.WriteString("/")
		b.WriteString(jsonpointer.Escape(token))
	}
	return b.String()
}

// Equal reports whether both pointers hold the same token sequence
func (p Pointer) Equal(other Pointer) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Contains reports whether any token equals token
func (p Pointer) Contains(token string) bool {
	return p.LastIndex(token) >= 0
}

// LastIndex returns the index of the last occurrence of token, or -1
func (p Pointer) LastIndex(token string) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == token {
			return i
		}
	}
	return -1
}

// Last returns the final token, or "" for the root pointer
func (p Pointer) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}
