package minio

import (
	"bytes"
	"context"
	"net/url"
	"path"

	"github.com/DRSN-tech/production-admin/internal/cfg"
	"github.com/DRSN-tech/production-admin/internal/domain"
	"github.com/DRSN-tech/production-admin/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ReportRepo реализует хранилище файлов отчетов поверх MinIO.
type ReportRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewReportRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ReportRepo {
	return &ReportRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает отчет в MinIO и возвращает ключ объекта.
func (r *ReportRepo) Upload(ctx context.Context, report *domain.Report) (string, error) {
	reader := bytes.NewReader(report.Data)

	info, err := r.mc.PutObject(ctx, report.Bucket, report.ObjectKey, reader, report.Size(), minio.PutObjectOptions{
		ContentType: report.ContentType,
		UserMetadata: map[string]string{
			"report-id": report.ID,
		},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (r *ReportRepo) Delete(ctx context.Context, key string) error {
	if err := r.mc.RemoveObject(ctx, r.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignedURL выдает временную ссылку на скачивание объекта как вложения.
func (r *ReportRepo) PresignedURL(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", `attachment; filename="`+path.Base(key)+`"`)

	u, err := r.mc.PresignedGetObject(ctx, r.cfg.BucketName, key, r.cfg.PresignTTL, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
