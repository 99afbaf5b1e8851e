// Package resolver dereferences local $ref pointers of a Swagger 2.0 document
// and records metadata about every reference it met.
package resolver

import (
	"context"
	"strconv"
	"strings"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/nodeutil"
	"gopkg.in/yaml.v3"
)

// Resolver resolves local references while preserving key order
type Resolver struct {
	helper   *nodeutil.NodeHelper
	rootNode *yaml.Node
	maxDepth int

	// Reference metadata, one entry per original $ref location
	refs     []domain.RefMetadata
	circular map[string]bool

	// Expansions of targets whose subtree holds no cycle, keyed by target pointer
	expanded map[string]expansion
	cycles   int
	// deepest is the longest chain at which a reference was met, -1 when none
	deepest int
}

// expansion is a shared expanded copy of a reference target. depth is the
// chain length of its deepest nested reference relative to the target, -1 when
// it holds none.
type expansion struct {
	node  *yaml.Node
	depth int
}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{
		helper: &nodeutil.NodeHelper{},
	}
}

// Resolve returns a resolved copy of root; root itself is not modified
func (r *Resolver) Resolve(ctx context.Context, root *yaml.Node, config domain.Config) (*domain.ResolvedDocument, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	node := r.helper.Resolve(root)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, &domain.MalformedDocumentError{Path: domain.NewPointer(), Reason: "root node must be a mapping"}
	}

	// Per-call state; a Resolver is safe for concurrent use.
	run := &Resolver{helper: r.helper}
	run.reset(node, config)

	resolved, err := run.resolveNode(ctx, node, domain.NewPointer(), nil)
	if err != nil {
		return nil, err
	}

	for i := range run.refs {
		if run.circular[run.refs[i].Ptr.String()] {
			run.refs[i].Circular = true
		}
	}

	return &domain.ResolvedDocument{
		Root:       resolved,
		References: run.refs,
	}, nil
}

// reset initializes state for a new resolution
func (r *Resolver) reset(root *yaml.Node, config domain.Config) {
	r.rootNode = root
	r.maxDepth = config.MaxDepth
	r.refs = nil
	r.circular = make(map[string]bool)
	r.expanded = make(map[string]expansion)
	r.cycles = 0
	r.deepest = -1
}

// resolveNode copies node, expanding references. origin is the location of node in
// the original document; chain holds the origins of the references being expanded.
func (r *Resolver) resolveNode(ctx context.Context, node *yaml.Node, origin domain.Pointer, chain []domain.Pointer) (*yaml.Node, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	node = r.helper.Resolve(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		if r.helper.IsRef(node) {
			return r.resolveRef(ctx, node, origin, chain)
		}
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: node.Tag, Style: node.Style, Line: node.Line, Column: node.Column}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			value, err := r.resolveNode(ctx, node.Content[i+1], origin.Append(key.Value), chain)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, r.helper.CloneNode(key), value)
		}
		return out, nil

	case yaml.SequenceNode:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: node.Tag, Style: node.Style, Line: node.Line, Column: node.Column}
		for i, item := range node.Content {
			value, err := r.resolveNode(ctx, item, origin.Append(strconv.Itoa(i)), chain)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, value)
		}
		return out, nil

	default:
		return r.helper.CloneNode(node), nil
	}
}

// resolveRef expands a $ref object. Unresolvable and circular references are left in place.
// Targets expanded without meeting a cycle are expanded once and the copy is shared.
func (r *Resolver) resolveRef(ctx context.Context, node *yaml.Node, origin domain.Pointer, chain []domain.Pointer) (*yaml.Node, error) {
	ref := r.helper.GetRef(node)
	meta := domain.RefMetadata{Ptr: origin, Ref: ref}

	target, targetNode, err := r.lookupTarget(ref)
	if err != nil {
		meta.Missing = true
		meta.Err = err
		r.record(chain, meta)
		return r.helper.CloneNode(node), nil
	}
	meta.Target = target

	if start := cycleStart(target, origin, chain); start >= 0 {
		r.cycles++
		meta.Circular = true
		for _, p := range chain[start:] {
			r.circular[p.String()] = true
		}
		r.circular[origin.String()] = true
		r.record(chain, meta)
		return r.helper.CloneNode(node), nil
	}
	r.record(chain, meta)

	if err := r.reach(ref, len(chain)); err != nil {
		return nil, err
	}

	key := target.String()
	if cached, ok := r.expanded[key]; ok {
		if cached.depth >= 0 {
			if err := r.reach(ref, len(chain)+1+cached.depth); err != nil {
				return nil, err
			}
		}
		return cached.node, nil
	}

	next := make([]domain.Pointer, 0, len(chain)+1)
	next = append(next, chain...)
	next = append(next, origin)

	cycles, deepest := r.cycles, r.deepest
	r.deepest = -1
	node, err = r.resolveNode(ctx, targetNode, target, next)
	if err != nil {
		return nil, err
	}
	inner := r.deepest
	r.deepest = max(deepest, inner)

	if r.cycles == cycles {
		depth := -1
		if inner >= 0 {
			depth = inner - len(next)
		}
		r.expanded[key] = expansion{node: node, depth: depth}
	}
	return node, nil
}

// reach notes a reference met at the given chain length and enforces MaxDepth
func (r *Resolver) reach(ref string, depth int) error {
	if r.maxDepth > 0 && depth >= r.maxDepth {
		return &domain.MaxDepthError{Ref: ref, Depth: r.maxDepth}
	}
	r.deepest = max(r.deepest, depth)
	return nil
}

// record stores metadata only for references met at their original location
func (r *Resolver) record(chain []domain.Pointer, meta domain.RefMetadata) {
	if len(chain) > 0 {
		return
	}
	r.refs = append(r.refs, meta)
}

// lookupTarget resolves a local reference against the original document
func (r *Resolver) lookupTarget(ref string) (domain.Pointer, *yaml.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, nil, &domain.ErrRemoteReference{Ref: ref}
	}

	ptr, err := domain.ParsePointer(ref)
	if err != nil {
		return nil, nil, &domain.ErrInvalidReference{Ref: ref, Cause: err}
	}

	target := r.helper.Lookup(r.rootNode, ptr)
	if target == nil {
		return nil, nil, &domain.ErrReferenceNotFound{Ref: ref}
	}
	return ptr, target, nil
}

// cycleStart returns the index in chain where a cycle through target begins,
// len(chain) when target contains origin itself, or -1 when there is no cycle.
func cycleStart(target, origin domain.Pointer, chain []domain.Pointer) int {
	for i, p := range chain {
		if p.HasPrefix(target) {
			return i
		}
	}
	if origin.HasPrefix(target) {
		return len(chain)
	}
	return -1
}

