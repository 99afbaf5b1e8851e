package semantic

import (
	"strconv"

	"github.com/miorlan/swagger-validator/internal/domain"
	"gopkg.in/yaml.v3"
)

// refGraph tracks which referenceable locations are used and by whom
type refGraph struct {
	referenceable []domain.Pointer
	known         map[string]bool
	usage         map[string][]domain.Pointer
}

func newRefGraph(root *yaml.Node) *refGraph {
	g := &refGraph{
		known: make(map[string]bool),
		usage: make(map[string][]domain.Pointer),
	}

	for _, section := range []string{"definitions", "parameters", "responses"} {
		for _, key := range nodes.GetMapKeys(nodes.GetMapValue(root, section)) {
			g.declare(domain.NewPointer(section, key))
		}
	}
	for _, scheme := range nodes.MapPairs(nodes.GetMapValue(root, "securityDefinitions")) {
		schemePtr := domain.NewPointer("securityDefinitions", scheme.Key)
		g.declare(schemePtr)
		for _, scope := range nodes.GetMapKeys(nodes.GetMapValue(scheme.Value, "scopes")) {
			g.declare(schemePtr.Append("scopes", scope))
		}
	}
	return g
}

func (g *refGraph) declare(ptr domain.Pointer) {
	if g.known[ptr.String()] {
		return
	}
	g.known[ptr.String()] = true
	g.referenceable = append(g.referenceable, ptr)
}

func (g *refGraph) has(ptr domain.Pointer) bool {
	return g.known[ptr.String()]
}

// use records that from references target. A target inside an allOf also marks
// the schema owning that allOf as used.
func (g *refGraph) use(target, from domain.Pointer) {
	key := target.String()
	g.usage[key] = append(g.usage[key], from)

	if i := target.LastIndex("allOf"); i > 0 {
		g.use(target[:i], from)
	}
}

// ValidateReferences reports unresolvable references, circular composition and
// unused definitions.
func ValidateReferences(doc *domain.ResolvedDocument) domain.Results {
	var results domain.Results
	g := newRefGraph(doc.Root)

	for _, ref := range doc.References {
		realPath := ref.Ptr.Append("$ref")

		if ref.Missing {
			d := domain.NewDiagnostic(domain.CodeUnresolvableReference, realPath,
				"Reference could not be resolved: %s", ref.Ref)
			if ref.Err != nil {
				d = d.WithCause(ref.Err)
			}
			results.AddError(d)
			continue
		}

		if ref.Circular && ref.Ptr.Contains("allOf") {
			results.AddError(domain.NewDiagnostic(domain.CodeCircularInheritance, realPath,
				"Schema object inherits from itself: %s", ref.Ref).
				WithCause(&domain.ErrCircularReference{Ref: ref.Ref}))
		}

		g.use(ref.Target, ref.Ptr)
	}

	for _, req := range securityRequirements(doc.Root) {
		validateSecurityRequirement(g, req.node, req.path, &results)
	}

	for _, ptr := range g.referenceable {
		if len(g.usage[ptr.String()]) == 0 {
			results.AddWarning(domain.NewDiagnostic(domain.CodeUnusedDefinition, ptr,
				"Definition is not used: %s", ptr))
		}
	}

	return results
}

type securityRequirement struct {
	node *yaml.Node
	path domain.Pointer
}

// securityRequirements collects requirement objects at document, path and operation level
func securityRequirements(root *yaml.Node) []securityRequirement {
	var reqs []securityRequirement
	collect := func(owner *yaml.Node, base domain.Pointer) {
		for i, req := range nodes.SeqItems(nodes.GetMapValue(owner, "security")) {
			reqs = append(reqs, securityRequirement{node: req, path: base.Append("security", strconv.Itoa(i))})
		}
	}

	collect(root, domain.NewPointer())
	for _, item := range pathItems(root) {
		pathPtr := domain.NewPointer("paths", item.Key)
		collect(item.Value, pathPtr)
		for _, op := range operations(item.Value) {
			collect(op.Value, pathPtr.Append(op.Key))
		}
	}
	return reqs
}

func validateSecurityRequirement(g *refGraph, req *yaml.Node, path domain.Pointer, results *domain.Results) {
	for _, scheme := range nodes.MapPairs(req) {
		reqPath := path.Append(scheme.Key)
		schemePtr := domain.NewPointer("securityDefinitions", scheme.Key)

		if !g.has(schemePtr) {
			results.AddError(domain.NewDiagnostic(domain.CodeUnresolvableReference, reqPath,
				"Security definition could not be resolved: %s", scheme.Key))
			continue
		}
		g.use(schemePtr, reqPath)

		for i, scope := range nodes.SeqItems(scheme.Value) {
			name := nodes.GetStringValue(scope)
			scopePtr := schemePtr.Append("scopes", name)
			scopePath := reqPath.Append(strconv.Itoa(i))

			if !g.has(scopePtr) {
				results.AddError(domain.NewDiagnostic(domain.CodeUnresolvableReference, scopePath,
					"Security scope definition could not be resolved: %s", name))
				continue
			}
			g.use(scopePtr, scopePath)
		}
	}
}
