package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/production-admin/internal/cfg"
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/internal/infrastructure"
	"github.com/DRSN-tech/production-admin/internal/usecase"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/DRSN-tech/production-admin/pkg/jitter"
	"github.com/DRSN-tech/production-admin/pkg/logger"
	"github.com/google/uuid"
)

const (
	reportsPrefix    = "reports/production-suggestions"
	cleanupAttempts  = 3
	cleanupBaseDelay = time.Second
	cleanupMaxDelay  = 8 * time.Second
	cleanupTimeout   = 30 * time.Second
)

// MinioInfrastructure выгружает отчеты в MinIO и убирает объекты, на которые не удалось выдать ссылку.
type MinioInfrastructure struct {
	reportRepo  usecase.ReportRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	now         func() time.Time
}

func NewMinioInfrastructure(reportRepo usecase.ReportRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		reportRepo:  reportRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		now:         time.Now,
	}
}

// UploadReport загружает файл отчета и возвращает ключ объекта и временную ссылку на скачивание.
// Если ссылку выдать не удалось, загруженный объект удаляется в фоне.
func (m *MinioInfrastructure) UploadReport(ctx context.Context, req *usecase.UploadReportReq) (*usecase.UploadReportRes, error) {
	const op = "MinioInfrastructure.UploadReport"

	ext, contentType, err := infrastructure.GetReportFileType(req.Format)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	reportID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s/%s.%s", reportsPrefix, m.now().UTC().Format("2006-01-02"), reportID, ext)
	report := domain.NewReport(reportID, m.cfg.BucketName, objKey, req.Data, contentType)

	key, err := m.reportRepo.Upload(ctx, report)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	url, err := m.reportRepo.PresignedURL(ctx, key)
	if err != nil {
		m.logger.Warnf("Cleaning up report without download link, key=%s: %v", key, e.Wrap(op, err))
		m.CleanupReports([]string{key})
		return nil, e.Wrap(op, err)
	}

	return usecase.NewUploadReportRes(key, url), nil
}

// CleanupReports запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupReports(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.reportRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(e.Wrap(op, err), "failed to remove report, key=%s", key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(cleanupBaseDelay, cleanupMaxDelay, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
