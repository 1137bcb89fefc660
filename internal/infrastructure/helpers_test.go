package infrastructure

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/production-admin/pkg/e"
)

func TestGetReportFileType(t *testing.T) {
	ext, contentType, err := GetReportFileType("csv")
	if err != nil || ext != "csv" || contentType != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected csv mapping: %s %s %v", ext, contentType, err)
	}

	ext, contentType, err = GetReportFileType("json")
	if err != nil || ext != "json" || contentType != "application/json" {
		t.Fatalf("unexpected json mapping: %s %s %v", ext, contentType, err)
	}

	if _, _, err := GetReportFileType("xlsx"); !errors.Is(err, e.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}
