package domain

import "time"

const (
	ReportFormatCSV  = "csv"
	ReportFormatJSON = "json"
)

// Report описывает файл отчета, который выгружается в объектное хранилище
type Report struct {
	ID          string // uuid
	Bucket      string
	ObjectKey   string
	Data        []byte
	ContentType string
	CreatedAt   time.Time
}

func NewReport(id string, bucket string, objectKey string, data []byte, contentType string) *Report {
	return &Report{
		ID:          id,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Data:        data,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
}

func (r *Report) Size() int64 {
	return int64(len(r.Data))
}
