package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/miorlan/swagger-validator/internal/domain"
	"github.com/miorlan/swagger-validator/internal/usecase"
)

//go:embed version.txt
var version string

func init() {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "0.1.0" // fallback
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет команду и возвращает код завершения
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]

	// Обработка команд версии и помощи
	switch command {
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "swagger-validator version %s\n", version)
		return 0

	case "help", "-help", "-h", "--help", "--h":
		printUsage(stdout)
		return 0

	case "validate":
		return runValidate(args[1:], stdout, stderr)
	}

	// Неизвестная команда
	fmt.Fprintf(stderr, "❌ Неизвестная команда: %s\n\n", command)
	printUsage(stderr)
	return 1
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	var (
		inputPath    string
		outputPath   string
		resolvedPath string
		format       string
		noWarnings   bool
		maxDepth     int
		maxSize      int64
		timeout      time.Duration
		verbose      bool
	)

	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	validateCmd.SetOutput(stderr)
	validateCmd.StringVar(&inputPath, "i", "", "Путь или URL входной Swagger 2.0 спецификации")
	validateCmd.StringVar(&inputPath, "input", "", "Путь или URL входной Swagger 2.0 спецификации")
	validateCmd.StringVar(&outputPath, "o", "", "Путь к файлу отчета")
	validateCmd.StringVar(&outputPath, "output", "", "Путь к файлу отчета")
	validateCmd.StringVar(&format, "format", "", "Формат отчета (yaml/json), по умолчанию определяется по расширению")
	validateCmd.StringVar(&resolvedPath, "resolved", "", "Сохранить спецификацию с развернутыми ссылками")
	validateCmd.BoolVar(&noWarnings, "no-warnings", false, "Не выводить предупреждения")
	validateCmd.IntVar(&maxDepth, "max-depth", 0, "Максимальная глубина вложенности ссылок (0 - без ограничений)")
	validateCmd.Int64Var(&maxSize, "max-size", 0, "Максимальный размер файла в байтах (0 - без ограничений)")
	validateCmd.DurationVar(&timeout, "timeout", 30*time.Second, "Таймаут HTTP запросов")
	validateCmd.BoolVar(&verbose, "verbose", false, "Подробный вывод")
	validateCmd.BoolVar(&verbose, "v", false, "Подробный вывод (краткая форма)")

	if err := validateCmd.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "❌ Ошибка парсинга флагов: %v\n", err)
		return 1
	}

	// Позиционный аргумент для input
	if inputPath == "" && len(validateCmd.Args()) > 0 {
		inputPath = validateCmd.Args()[0]
	}

	if inputPath == "" {
		fmt.Fprintf(stderr, "❌ Ошибка: необходимо указать входной файл\n")
		fmt.Fprintf(stderr, "Использование:\n")
		fmt.Fprintf(stderr, "  swagger-validator validate -i <input> [-o <report>]\n")
		fmt.Fprintf(stderr, "  swagger-validator validate <input>\n")
		return 1
	}

	if inputPath == outputPath || inputPath == resolvedPath {
		fmt.Fprintf(stderr, "❌ Ошибка: входной и выходной файлы не могут быть одинаковыми\n")
		return 1
	}

	var reportFormat domain.FileFormat
	if format != "" {
		parsed, ok := domain.ParseFormat(format)
		if !ok {
			fmt.Fprintf(stderr, "❌ Ошибка: неизвестный формат отчета: %s\n", format)
			return 1
		}
		reportFormat = parsed
	}

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	progress := NewSimpleProgress(stderr, verbose)
	progress.Update(fmt.Sprintf("📦 Загрузка входного файла: %s", inputPath))

	config := usecase.Config{
		MaxFileSize:     maxSize,
		MaxDepth:        maxDepth,
		IncludeWarnings: !noWarnings,
		ReportPath:      outputPath,
		ReportFormat:    reportFormat,
		ResolvedPath:    resolvedPath,
	}

	report, err := newValidator(timeout, logger).Execute(context.Background(), inputPath, config)
	if err != nil {
		if errors.Is(err, domain.ErrCannotValidate) {
			fmt.Fprintf(stderr, "❌ Невозможно провести валидацию: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "❌ Ошибка: %v\n", err)
		}
		return 1
	}

	progress.Update("🔍 Валидация завершена")
	if resolvedPath != "" {
		progress.Update(fmt.Sprintf("💾 Развернутая спецификация сохранена: %s", resolvedPath))
	}
	if outputPath != "" {
		progress.Update(fmt.Sprintf("💾 Отчет сохранен: %s", outputPath))
	}

	printReport(stdout, report)
	if !report.Valid() {
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `swagger-validator - утилита для семантической валидации Swagger 2.0 спецификаций

Использование:
  swagger-validator <команда> [флаги]

Команды:
  validate  Проверить спецификацию: ссылки, пути, параметры, значения по умолчанию
            Используйте 'swagger-validator validate --help' для справки по флагам
  version   Показать версию
  help      Показать эту справку

Примеры:
  swagger-validator validate -i api.yaml
  swagger-validator validate -i api.yaml -o report.json --no-warnings
  swagger-validator validate --resolved resolved.yaml api.yaml
  swagger-validator version

`)
}
