package main

import (
	"fmt"
	"io"

	"github.com/miorlan/swagger-validator/internal/domain"
)

// printReport выводит найденные ошибки и предупреждения, затем итоговую строку
func printReport(w io.Writer, report *domain.Report) {
	for _, d := range report.Errors {
		fmt.Fprintf(w, "✗ %s\n", d)
	}
	for _, d := range report.Warnings {
		fmt.Fprintf(w, "⚠ %s\n", d)
	}

	if report.Valid() {
		fmt.Fprintf(w, "✅ Спецификация валидна: %s", report.Source)
	} else {
		fmt.Fprintf(w, "❌ Спецификация содержит ошибки: %s", report.Source)
	}
	fmt.Fprintf(w, " (ошибок: %d, предупреждений: %d)\n", len(report.Errors), len(report.Warnings))
}
