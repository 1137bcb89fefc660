package infrastructure

import (
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

// GetReportFileType возвращает расширение файла и Content-Type для формата отчета.
// Поддерживает csv и json. Для остальных форматов возвращает e.ErrUnsupportedFormat.
func GetReportFileType(format string) (string, string, error) {
	switch format {
	case domain.ReportFormatCSV:
		return "csv", "text/csv; charset=utf-8", nil
	case domain.ReportFormatJSON:
		return "json", "application/json", nil
	default:
		return "bin", "application/octet-stream", e.ErrUnsupportedFormat
	}
}
