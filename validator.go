// Package swaggervalidator checks Swagger 2.0 documents for the semantic errors a
// JSON-Schema validator cannot catch: unresolvable and circular references, unused
// definitions, equivalent paths, duplicate parameters and operationIds, invalid
// parameter combinations and invalid default values.
package swaggervalidator

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/infrastructure/loader"
	"github.com/miorlan/swagger-validator/internal/infrastructure/model"
	"github.com/miorlan/swagger-validator/internal/infrastructure/parser"
	"github.com/miorlan/swagger-validator/internal/infrastructure/resolver"
	schemavalidator "github.com/miorlan/swagger-validator/internal/infrastructure/validator"
	"github.com/miorlan/swagger-validator/internal/infrastructure/writer"
	"github.com/miorlan/swagger-validator/internal/usecase"
)

type (
	// Report is the result of validating one document
	Report = domain.Report
	// Diagnostic is a single finding; Path is a JSON pointer into the document
	Diagnostic = domain.Diagnostic
	// Code identifies the kind of a finding
	Code = domain.Code
)

// Finding codes
const (
	CodeObjectMissingRequiredProperty           = domain.CodeObjectMissingRequiredProperty
	CodeObjectMissingRequiredPropertyDefinition = domain.CodeObjectMissingRequiredPropertyDefinition
	CodeUnresolvableReference                   = domain.CodeUnresolvableReference
	CodeCircularInheritance                     = domain.CodeCircularInheritance
	CodeUnusedDefinition                        = domain.CodeUnusedDefinition
	CodeEquivalentPath                          = domain.CodeEquivalentPath
	CodeDuplicateParameter                      = domain.CodeDuplicateParameter
	CodeDuplicateOperationID                    = domain.CodeDuplicateOperationID
	CodeMultipleBodyParameters                  = domain.CodeMultipleBodyParameters
	CodeInvalidParameterCombination             = domain.CodeInvalidParameterCombination
	CodeMissingPathParameterDefinition          = domain.CodeMissingPathParameterDefinition
	CodeMissingPathParameterDeclaration         = domain.CodeMissingPathParameterDeclaration
)

// ErrCannotValidate is matched (errors.Is) by every error returned for documents
// that lack the structure validation needs
var ErrCannotValidate = domain.ErrCannotValidate

// Option represents a configuration option for the validator
type Option func(*Config)

// Config holds the configuration for the validator
type Config struct {
	MaxFileSize     int64
	MaxDepth        int
	HTTPTimeout     time.Duration
	IncludeWarnings bool
	Logger          *slog.Logger
}

// WithMaxFileSize sets the maximum file size in bytes (0 = unlimited)
func WithMaxFileSize(size int64) Option {
	return func(c *Config) {
		c.MaxFileSize = size
	}
}

// WithMaxDepth sets the maximum nesting of reference expansion (0 = unlimited)
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.MaxDepth = depth
	}
}

// WithHTTPTimeout sets the timeout for HTTP requests
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithWarnings controls whether warnings are included in reports
func WithWarnings(include bool) Option {
	return func(c *Config) {
		c.IncludeWarnings = include
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		MaxFileSize:     0, // unlimited
		MaxDepth:        0, // unlimited
		HTTPTimeout:     30 * time.Second,
		IncludeWarnings: true,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Validator provides a simple API for validating Swagger 2.0 specifications
type Validator struct {
	useCase *usecase.ValidateUseCase
	config  *Config
}

// New creates a new Validator instance with default configuration
func New(opts ...Option) *Validator {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	useCase := usecase.NewValidateUseCase(
		loader.NewFileLoaderWithTimeout(config.HTTPTimeout),
		writer.NewFileWriter(),
		parser.NewParser(),
		resolver.NewResolver(),
		model.NewBuilder(),
		schemavalidator.NewValidator(),
		config.Logger,
	)

	return &Validator{
		useCase: useCase,
		config:  config,
	}
}

func (v *Validator) useCaseConfig() usecase.Config {
	return usecase.Config{
		MaxFileSize:     v.config.MaxFileSize,
		MaxDepth:        v.config.MaxDepth,
		IncludeWarnings: v.config.IncludeWarnings,
	}
}

// Validate validates the specification at inputPath, a file path or an http(s) URL.
// Findings are returned in the report; the error is non-nil only when validation
// could not run.
//
// Example:
//
//	v := swaggervalidator.New()
//	report, err := v.Validate(context.Background(), "api.yaml")
func (v *Validator) Validate(ctx context.Context, inputPath string) (*Report, error) {
	return v.useCase.Execute(ctx, inputPath, v.useCaseConfig())
}

// ValidateData validates an in-memory YAML or JSON document; source names it in the report
func (v *Validator) ValidateData(ctx context.Context, source string, data []byte) (*Report, error) {
	return v.useCase.ExecuteData(ctx, source, data, v.useCaseConfig())
}

// ValidateToFile validates inputPath and writes the report to reportPath.
// The report format follows the extension of reportPath.
//
// Example:
//
//	v := swaggervalidator.New(swaggervalidator.WithWarnings(false))
//	report, err := v.ValidateToFile(context.Background(), "api.yaml", "report.json")
func (v *Validator) ValidateToFile(ctx context.Context, inputPath, reportPath string) (*Report, error) {
	config := v.useCaseConfig()
	config.ReportPath = reportPath
	return v.useCase.Execute(ctx, inputPath, config)
}

// Validate is a convenience function that creates a new Validator and validates the specification
//
// Example:
//
//	report, err := swaggervalidator.Validate(context.Background(), "api.yaml")
func Validate(ctx context.Context, inputPath string) (*Report, error) {
	return New().Validate(ctx, inputPath)
}
