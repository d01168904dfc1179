package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/client"
)

type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportJSON ExportFormat = "json"
)

var exportContentTypes = map[ExportFormat]string{
	ExportPDF:  "application/pdf",
	ExportJSON: "application/json",
}

type ExportService struct {
	backend Requester
	now     func() time.Time
}

func NewExportService(backend Requester) *ExportService {
	return &ExportService{backend: backend, now: time.Now}
}

func (service *ExportService) PDF(ctx context.Context, token string) (client.Download, error) {
	return service.Fetch(ctx, token, ExportPDF)
}

func (service *ExportService) JSON(ctx context.Context, token string) (client.Download, error) {
	return service.Fetch(ctx, token, ExportJSON)
}

// Fetch downloads an export artifact and fills in content type and filename
// when the backend omits them.
func (service *ExportService) Fetch(ctx context.Context, token string, format ExportFormat) (client.Download, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return client.Download{}, fmt.Errorf("unsupported export format %q", format)
	}
	if err := requireToken(token); err != nil {
		return client.Download{}, err
	}

	download, err := service.backend.Download(ctx, client.Request{
		Path:   "/export/" + string(format),
		Token:  token,
		Accept: contentType,
	})
	if err != nil {
		return client.Download{}, err
	}

	if strings.TrimSpace(download.ContentType) == "" {
		download.ContentType = contentType
	}
	if strings.TrimSpace(download.Filename) == "" {
		download.Filename = BuildExportFilename(service.now(), format)
	}
	return download, nil
}

func BuildExportFilename(now time.Time, format ExportFormat) string {
	return fmt.Sprintf("coachdesk-export-%s.%s", now.Format("2006-01-02"), format)
}
