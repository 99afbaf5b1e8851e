package domain

import (
	"path/filepath"
	"strings"
)

// FileFormat представляет формат файла
type FileFormat string

const (
	FormatYAML FileFormat = "yaml"
	FormatJSON FileFormat = "json"
)

// DetectFormat определяет формат файла по пути
func DetectFormat(filePath string) FileFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML // По умолчанию
	}
}

// ParseFormat разбирает значение флага формата; пустая строка означает автоопределение
func ParseFormat(value string) (FileFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return "", false
	}
}
