package main

import (
	"log/slog"
	"time"

	"github.com/miorlan/swagger-validator/internal/infrastructure/loader"
	"github.com/miorlan/swagger-validator/internal/infrastructure/model"
	"github.com/miorlan/swagger-validator/internal/infrastructure/parser"
	"github.com/miorlan/swagger-validator/internal/infrastructure/resolver"
	"github.com/miorlan/swagger-validator/internal/infrastructure/validator"
	"github.com/miorlan/swagger-validator/internal/infrastructure/writer"
	"github.com/miorlan/swagger-validator/internal/usecase"
)

// newValidator создает новый экземпляр ValidateUseCase с зависимостями
func newValidator(timeout time.Duration, logger *slog.Logger) *usecase.ValidateUseCase {
	return usecase.NewValidateUseCase(
		loader.NewFileLoaderWithTimeout(timeout),
		writer.NewFileWriter(),
		parser.NewParser(),
		resolver.NewResolver(),
		model.NewBuilder(),
		validator.NewValidator(),
		logger,
	)
}
