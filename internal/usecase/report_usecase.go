package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/logger"
)

var reportHeader = []string{"priorityRank", "productId", "productName", "productValue", "suggestedQuantity", "totalValue"}

// ReportUseCase выгружает полный отчет по рекомендациям (все страницы) в объектное хранилище.
type ReportUseCase struct {
	api      ProductionSuggestionAPI
	reports  ReportsInfra
	audit    AuditPublisher
	pageSize int
	maxPages int
	logger   logger.Logger
}

func NewReportUC(
	api ProductionSuggestionAPI,
	reports ReportsInfra,
	audit AuditPublisher,
	pageSize int,
	maxPages int,
	logger logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		api:      api,
		reports:  reports,
		audit:    audit,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger,
	}
}

// ExportSuggestions собирает все рекомендации по фильтру, формирует файл с итоговой суммой,
// выгружает его и публикует событие аудита.
func (r *ReportUseCase) ExportSuggestions(ctx context.Context, req *ExportReportReq) (*ExportReportRes, error) {
	const op = "ReportUseCase.ExportSuggestions"

	if req.Format != domain.ReportFormatCSV && req.Format != domain.ReportFormatJSON {
		return nil, e.Wrap(op, e.ErrUnsupportedFormat)
	}

	suggestions, err := r.collect(ctx, req.Filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	summary := domain.NewProductionSummary(suggestions)

	data, err := render(req.Format, summary)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	uploaded, err := r.reports.UploadReport(ctx, NewUploadReportReq(req.Format, data))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	r.logger.Infof("suggestion report exported, key=%s, rows=%d", uploaded.ObjectKey, len(suggestions))
	r.audit.Publish(
		domain.NewAuditEvent(req.SessionID, domain.ResourceSuggestionReport, domain.ActionExport, nil).
			WithObjectKey(uploaded.ObjectKey),
	)

	return NewExportReportRes(uploaded.ObjectKey, uploaded.URL, len(suggestions), summary.TotalProductionValue), nil
}

// collect постранично выбирает все рекомендации, не более maxPages страниц.
func (r *ReportUseCase) collect(ctx context.Context, filter domain.SuggestionFilter) ([]domain.ProductionSuggestion, error) {
	suggestions := make([]domain.ProductionSuggestion, 0, r.pageSize)

	for page := 0; ; page++ {
		if page >= r.maxPages {
			return nil, e.ErrReportTooLarge
		}

		result, err := r.api.List(ctx, domain.NewSuggestionQuery(page, r.pageSize, filter))
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, result.Content...)
		if page+1 >= result.TotalPages {
			return suggestions, nil
		}
	}
}

func render(format string, summary *domain.ProductionSummary) ([]byte, error) {
	if format == domain.ReportFormatJSON {
		return json.MarshalIndent(summary, "", "  ")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := make([][]string, 0, len(summary.Suggestions)+2)
	rows = append(rows, reportHeader)
	for _, s := range summary.Suggestions {
		rows = append(rows, []string{
			strconv.FormatInt(s.PriorityRank, 10),
			strconv.FormatInt(s.ProductID, 10),
			s.ProductName,
			s.ProductValue.String(),
			strconv.FormatInt(s.SuggestedQuantity, 10),
			s.TotalValue.String(),
		})
	}
	rows = append(rows, []string{"", "", "Total production value", "", "", summary.TotalProductionValue.String()})

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
