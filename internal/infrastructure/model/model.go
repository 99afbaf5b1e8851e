// Package model exposes the operations of a resolved Swagger 2.0 document through
// kin-openapi's openapi2 types.
package model

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/nodeutil"
	"gopkg.in/yaml.v3"
)

// Builder reads the operations of resolved trees into Documents
type Builder struct {
	helper *nodeutil.NodeHelper
}

// NewBuilder creates a new Builder
func NewBuilder() *Builder {
	return &Builder{helper: &nodeutil.NodeHelper{}}
}

// Build implements domain.ModelBuilder. Only the fields the parameter rules need
// (in, name, $ref) are read, so a mistyped field elsewhere never fails the build.
func (b *Builder) Build(root *yaml.Node) (domain.DocumentModel, error) {
	doc := &Document{items: make(map[string]*openapi2.PathItem)}

	for _, pair := range b.helper.MapPairs(b.helper.GetMapValue(root, "paths")) {
		if strings.HasPrefix(pair.Key, "x-") || !b.helper.IsMap(pair.Value) {
			continue
		}
		item := &openapi2.PathItem{Parameters: b.parameters(pair.Value)}
		for _, op := range b.helper.MapPairs(pair.Value) {
			if b.helper.IsMap(op.Value) {
				setOperation(item, op.Key, &openapi2.Operation{Parameters: b.parameters(op.Value)})
			}
		}
		doc.items[pair.Key] = item
	}
	return doc, nil
}

// parameters reads the parameter list of owner. Entries keep their list index;
// an entry that is not a mapping stays nil.
func (b *Builder) parameters(owner *yaml.Node) openapi2.Parameters {
	items := b.helper.SeqItems(b.helper.GetMapValue(owner, "parameters"))
	if len(items) == 0 {
		return nil
	}
	params := make(openapi2.Parameters, len(items))
	for i, node := range items {
		if !b.helper.IsMap(node) {
			continue
		}
		params[i] = &openapi2.Parameter{
			Ref:  b.helper.GetRef(node),
			In:   b.helper.GetStringValue(b.helper.GetMapValue(node, "in")),
			Name: b.helper.GetStringValue(b.helper.GetMapValue(node, "name")),
		}
	}
	return params
}

func setOperation(item *openapi2.PathItem, method string, op *openapi2.Operation) {
	switch method {
	case "get":
		item.Get = op
	case "put":
		item.Put = op
	case "post":
		item.Post = op
	case "delete":
		item.Delete = op
	case "options":
		item.Options = op
	case "head":
		item.Head = op
	case "patch":
		item.Patch = op
	}
}

// Document is the operation accessor of one resolved document
type Document struct {
	items map[string]*openapi2.PathItem
}

// GetOperation returns nil when path or method is not defined
func (d *Document) GetOperation(path, method string) domain.Operation {
	item, ok := d.items[path]
	if !ok || item == nil {
		return nil
	}
	op := operationFor(item, strings.ToLower(method))
	if op == nil {
		return nil
	}
	return &Operation{
		path:      path,
		method:    strings.ToLower(method),
		pathLevel: item.Parameters,
		opLevel:   op.Parameters,
	}
}

func operationFor(item *openapi2.PathItem, method string) *openapi2.Operation {
	switch method {
	case "get":
		return item.Get
	case "put":
		return item.Put
	case "post":
		return item.Post
	case "delete":
		return item.Delete
	case "options":
		return item.Options
	case "head":
		return item.Head
	case "patch":
		return item.Patch
	default:
		return nil
	}
}

// Operation is one operation together with the parameters of its path item
type Operation struct {
	path      string
	method    string
	pathLevel openapi2.Parameters
	opLevel   openapi2.Parameters
}

// Parameters merges path-level and operation-level parameters.
// Operation-level parameters replace path-level ones with the same in:name key.
// Parameters that are still unresolved references are skipped.
func (o *Operation) Parameters() []domain.ParameterDescriptor {
	overridden := make(map[string]bool, len(o.opLevel))
	for _, p := range o.opLevel {
		if p != nil && p.Ref == "" {
			overridden[p.In+":"+p.Name] = true
		}
	}

	var params []domain.ParameterDescriptor
	for i, p := range o.pathLevel {
		if p == nil || p.Ref != "" || overridden[p.In+":"+p.Name] {
			continue
		}
		params = append(params, domain.ParameterDescriptor{
			In:   p.In,
			Name: p.Name,
			Ptr:  domain.NewPointer("paths", o.path, "parameters", strconv.Itoa(i)),
		})
	}
	for i, p := range o.opLevel {
		if p == nil || p.Ref != "" {
			continue
		}
		params = append(params, domain.ParameterDescriptor{
			In:   p.In,
			Name: p.Name,
			Ptr:  domain.NewPointer("paths", o.path, o.method, "parameters", strconv.Itoa(i)),
		})
	}
	return params
}
