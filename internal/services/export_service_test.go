package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/coachdesk/internal/client"
)

func TestExportFetchFillsMissingMetadata(t *testing.T) {
	backend := newFakeBackend()
	backend.download = client.Download{Body: []byte(`{"moods":[]}`)}
	service := NewExportService(backend)
	service.now = func() time.Time { return time.Date(2024, 7, 9, 10, 0, 0, 0, time.UTC) }

	download, err := service.JSON(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "application/json", download.ContentType)
	assert.Equal(t, "coachdesk-export-2024-07-09.json", download.Filename)

	request := backend.lastRequest(t)
	assert.Equal(t, "/export/json", request.Path)
	assert.Equal(t, "application/json", request.Accept)
}

func TestExportFetchKeepsBackendFilename(t *testing.T) {
	backend := newFakeBackend()
	backend.download = client.Download{ContentType: "application/pdf", Filename: "report.pdf", Body: []byte("%PDF")}

	download, err := NewExportService(backend).PDF(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", download.Filename)
}

func TestExportFetchRequiresToken(t *testing.T) {
	backend := newFakeBackend()

	_, err := NewExportService(backend).PDF(context.Background(), "")
	assert.Equal(t, client.KindUnauthenticated, client.KindOf(err))
	assert.Empty(t, backend.requests)

	_, err = NewExportService(backend).Fetch(context.Background(), "token", ExportFormat("csv"))
	assert.Error(t, err)
}
