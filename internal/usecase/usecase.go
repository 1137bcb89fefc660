package usecase

import "context"

type WorkspaceProvider interface {
	Get(ctx context.Context, sessionID string) *Workspace
	Remember(ctx context.Context, ws *Workspace)
}

type ReportUC interface {
	ExportSuggestions(ctx context.Context, req *ExportReportReq) (*ExportReportRes, error)
}
