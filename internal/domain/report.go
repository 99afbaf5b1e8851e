package domain

// Report - результат валидации одного документа
type Report struct {
	Source   string
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Valid возвращает true, если ошибок не найдено
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// ReportEntry - сериализуемое представление Diagnostic
type ReportEntry struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Path    string `json:"path" yaml:"path"`
	Cause   string `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// ReportDocument - сериализуемое представление Report
type ReportDocument struct {
	Source   string        `json:"source" yaml:"source"`
	Valid    bool          `json:"valid" yaml:"valid"`
	Errors   []ReportEntry `json:"errors" yaml:"errors"`
	Warnings []ReportEntry `json:"warnings" yaml:"warnings"`
}

// Document преобразует отчет в форму для записи в JSON/YAML
func (r *Report) Document() ReportDocument {
	return ReportDocument{
		Source:   r.Source,
		Valid:    r.Valid(),
		Errors:   toEntries(r.Errors),
		Warnings: toEntries(r.Warnings),
	}
}

func toEntries(diagnostics []Diagnostic) []ReportEntry {
	entries := make([]ReportEntry, 0, len(diagnostics))
	for _, d := range diagnostics {
		entry := ReportEntry{
			Code:    d.Code.String(),
			Message: d.Message,
			Path:    d.Path.String(),
		}
		if d.Cause != nil {
			entry.Cause = d.Cause.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}
