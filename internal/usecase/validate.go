package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/semantic"
)

// Config holds configuration for validate execution
type Config struct {
	MaxFileSize     int64
	MaxDepth        int
	IncludeWarnings bool
	// ReportPath - куда сохранить отчет; пустая строка - не сохранять
	ReportPath   string
	ReportFormat domain.FileFormat
	// ResolvedPath - куда сохранить документ с развернутыми ссылками
	ResolvedPath string
}

// ValidateUseCase реализует семантическую валидацию Swagger 2.0 спецификаций
type ValidateUseCase struct {
	fileLoader        domain.FileLoader
	fileWriter        domain.FileWriter
	parser            domain.Parser
	referenceResolver domain.ReferenceResolver
	modelBuilder      domain.ModelBuilder
	schemaValidator   domain.SchemaValidator
	logger            *slog.Logger
}

// NewValidateUseCase создает новый экземпляр ValidateUseCase
func NewValidateUseCase(
	fileLoader domain.FileLoader,
	fileWriter domain.FileWriter,
	parser domain.Parser,
	referenceResolver domain.ReferenceResolver,
	modelBuilder domain.ModelBuilder,
	schemaValidator domain.SchemaValidator,
	logger *slog.Logger,
) *ValidateUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ValidateUseCase{
		fileLoader:        fileLoader,
		fileWriter:        fileWriter,
		parser:            parser,
		referenceResolver: referenceResolver,
		modelBuilder:      modelBuilder,
		schemaValidator:   schemaValidator,
		logger:            logger,
	}
}

// Execute загружает и валидирует спецификацию по пути или URL
func (uc *ValidateUseCase) Execute(ctx context.Context, inputPath string, config Config) (*domain.Report, error) {
	// Проверяем контекст
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	uc.logger.Debug("loading document", "source", inputPath)
	data, err := uc.fileLoader.Load(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load input file: %w", err)
	}

	return uc.ExecuteData(ctx, inputPath, data, config)
}

// ExecuteData валидирует уже загруженный документ; source используется в отчете
func (uc *ValidateUseCase) ExecuteData(ctx context.Context, source string, data []byte, config Config) (*domain.Report, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Проверяем размер файла
	if config.MaxFileSize > 0 && int64(len(data)) > config.MaxFileSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed size %d", len(data), config.MaxFileSize)
	}

	root, err := uc.parser.ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input file: %w", err)
	}

	// Без минимальной структуры валидаторы не могут работать
	if err := semantic.CheckShape(root); err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", source, err)
	}

	doc, err := uc.referenceResolver.Resolve(ctx, root, domain.Config{
		MaxFileSize: config.MaxFileSize,
		MaxDepth:    config.MaxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}
	uc.logger.Debug("references resolved", "source", source, "references", len(doc.References))

	if config.ResolvedPath != "" {
		if err := uc.writeResolved(doc, config.ResolvedPath); err != nil {
			return nil, err
		}
	}

	model, err := uc.modelBuilder.Build(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to build document model: %w", err)
	}

	results := semantic.Validate(doc, model, uc.schemaValidator)
	uc.logger.Debug("validation finished", "source", source,
		"errors", len(results.Errors), "warnings", len(results.Warnings))

	report := &domain.Report{
		Source: source,
		Errors: results.Errors,
	}
	if config.IncludeWarnings {
		report.Warnings = results.Warnings
	}

	if config.ReportPath != "" {
		if err := uc.writeReport(report, config.ReportPath, config.ReportFormat); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// writeResolved сохраняет документ с развернутыми локальными ссылками
func (uc *ValidateUseCase) writeResolved(doc *domain.ResolvedDocument, path string) error {
	data, err := uc.parser.MarshalNode(doc.Root, domain.DetectFormat(path))
	if err != nil {
		return fmt.Errorf("failed to marshal resolved document: %w", err)
	}
	if err := uc.fileWriter.Write(path, data); err != nil {
		return fmt.Errorf("failed to write resolved document: %w", err)
	}
	uc.logger.Debug("resolved document written", "path", path)
	return nil
}

// writeReport сохраняет отчет; формат по умолчанию определяется по расширению
func (uc *ValidateUseCase) writeReport(report *domain.Report, path string, format domain.FileFormat) error {
	if format == "" {
		format = domain.DetectFormat(path)
	}
	data, err := uc.parser.Marshal(report.Document(), format)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := uc.fileWriter.Write(path, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	uc.logger.Debug("report written", "path", path, "format", string(format))
	return nil
}
