package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSpec = `swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
paths:
  /test:
    get:
      responses:
        '200':
          description: Success
`

const invalidSpec = `swagger: "2.0"
paths:
  /pets/{id}:
    get:
      responses:
        '200':
          description: Success
definitions:
  Unused:
    type: object
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Commands(t *testing.T) {
	code, stdout, _ := runCLI("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "swagger-validator version "+version+"\n", stdout)

	code, stdout, _ = runCLI("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "swagger-validator <команда>")

	code, _, stderr := runCLI("bundle")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Неизвестная команда: bundle")

	code, _, _ = runCLI()
	assert.Equal(t, 1, code)
}

func TestRun_ValidateValid(t *testing.T) {
	input := writeFile(t, t.TempDir(), "api.yaml", validSpec)

	code, stdout, _ := runCLI("validate", "-i", input)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "✅")
	assert.NotContains(t, stdout, "✗")
}

func TestRun_ValidateInvalid(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "api.yaml", invalidSpec)
	report := filepath.Join(dir, "report.json")

	code, stdout, _ := runCLI("validate", "-o", report, input)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "✗ #/paths/~1pets~1{id}/get: Path parameter is declared but is not defined: id (MISSING_PATH_PARAMETER_DEFINITION)")
	assert.Contains(t, stdout, "⚠ #/definitions/Unused: Definition is not used: #/definitions/Unused (UNUSED_DEFINITION)")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"valid": false`)
}

func TestRun_ValidateNoWarnings(t *testing.T) {
	input := writeFile(t, t.TempDir(), "api.yaml", invalidSpec)

	_, stdout, _ := runCLI("validate", "--no-warnings", "-i", input)
	assert.NotContains(t, stdout, "⚠")
}

func TestRun_ValidateErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "api.yaml", validSpec)
	notSwagger := writeFile(t, dir, "openapi.yaml", "openapi: 3.0.0\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing input", []string{"validate"}, "необходимо указать входной файл"},
		{"same input and output", []string{"validate", "-i", input, "-o", input}, "не могут быть одинаковыми"},
		{"unknown format", []string{"validate", "-i", input, "-o", filepath.Join(dir, "r.json"), "--format", "xml"}, "неизвестный формат отчета"},
		{"file not found", []string{"validate", "-i", filepath.Join(dir, "missing.yaml")}, "Ошибка"},
		{"cannot validate", []string{"validate", "-i", notSwagger}, "Невозможно провести валидацию"},
		{"bad flag", []string{"validate", "--unknown"}, "Ошибка парсинга флагов"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRun_ResolvedOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "api.yaml", `swagger: "2.0"
paths:
  /pets:
    get:
      responses:
        '200':
          description: ok
          schema:
            $ref: '#/definitions/Pet'
definitions:
  Pet:
    type: object
`)
	resolved := filepath.Join(dir, "resolved.json")

	code, _, _ := runCLI("validate", "--resolved", resolved, input)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(resolved)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
	assert.NotContains(t, string(data), "$ref")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &domain.Report{
		Source: "api.yaml",
		Errors: []domain.Diagnostic{
			domain.NewDiagnostic(domain.CodeEquivalentPath, domain.NewPointer("paths", "/a/{b}"), "Equivalent path already exists: %s", "/a/{b}"),
		},
	})

	assert.Equal(t,
		"✗ #/paths/~1a~1{b}: Equivalent path already exists: /a/{b} (EQUIVALENT_PATH)\n"+
			"❌ Спецификация содержит ошибки: api.yaml (ошибок: 1, предупреждений: 0)\n",
		buf.String())
}
