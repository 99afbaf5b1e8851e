package semantic

import (
	"context"
	"testing"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/infrastructure/model"
	"github.com/miorlan/swagger-validator/internal/infrastructure/parser"
	"github.com/miorlan/swagger-validator/internal/infrastructure/resolver"
	"github.com/miorlan/swagger-validator/internal/infrastructure/validator"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parseNode(t *testing.T, content string) *yaml.Node {
	t.Helper()
	node, err := parser.NewParser().ParseFile([]byte(content))
	require.NoError(t, err)
	return nodes.Resolve(node)
}

func resolveDoc(t *testing.T, content string) *domain.ResolvedDocument {
	t.Helper()
	doc, err := resolver.NewResolver().Resolve(context.Background(), parseNode(t, content), domain.Config{})
	require.NoError(t, err)
	return doc
}

func buildModel(t *testing.T, doc *domain.ResolvedDocument) domain.DocumentModel {
	t.Helper()
	m, err := model.NewBuilder().Build(doc.Root)
	require.NoError(t, err)
	return m
}

func validateAll(t *testing.T, content string) domain.Results {
	t.Helper()
	doc := resolveDoc(t, content)
	return Validate(doc, buildModel(t, doc), validator.NewValidator())
}

func withCode(diagnostics []domain.Diagnostic, code domain.Code) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func paths(diagnostics []domain.Diagnostic) []string {
	out := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, d.Path.String())
	}
	return out
}

func describe(diagnostics []domain.Diagnostic) []string {
	out := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, d.String())
	}
	return out
}
