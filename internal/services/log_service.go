package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

type LogKind string

const (
	LogKindAudit         LogKind = "audit"
	LogKindOrchestration LogKind = "orchestration"
)

var logPaths = map[LogKind]string{
	LogKindAudit:         "/admin/audit-logs",
	LogKindOrchestration: "/admin/orchestration-logs",
}

type LogService struct {
	backend Requester
}

func NewLogService(backend Requester) *LogService {
	return &LogService{backend: backend}
}

// List fetches up to fetchCap records in one call; filtering happens client-side.
func (service *LogService) List(ctx context.Context, token string, kind LogKind, fetchCap int) ([]models.LogRecord, error) {
	path, ok := logPaths[kind]
	if !ok {
		path = logPaths[LogKindAudit]
	}
	if fetchCap <= 0 {
		fetchCap = DefaultLogFetchCap
	}

	return fetchList[models.LogRecord](ctx, service.backend, client.Request{
		Path:  path,
		Token: token,
		Query: url.Values{"limit": []string{strconv.Itoa(fetchCap)}},
	})
}
