package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
)

var ErrInvalidPayload = errors.New("backend payload failed validation")

// Requester is the slice of the shared HTTP client the facade depends on.
type Requester interface {
	Do(ctx context.Context, request client.Request, out any) error
	Download(ctx context.Context, request client.Request) (client.Download, error)
}

type validatable interface {
	Validate() error
}

func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return client.NewError(client.KindUnauthenticated, "", client.ErrUnauthenticated)
	}
	return nil
}

func fetchList[T validatable](ctx context.Context, backend Requester, request client.Request) ([]T, error) {
	if err := requireToken(request.Token); err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if err := backend.Do(ctx, request, &items); err != nil {
		return nil, err
	}
	for index, item := range items {
		if err := item.Validate(); err != nil {
			return nil, invalidPayload(request, fmt.Errorf("item %d: %w", index, err))
		}
	}
	return items, nil
}

func fetchOne[T validatable](ctx context.Context, backend Requester, request client.Request) (T, error) {
	var item T
	if err := requireToken(request.Token); err != nil {
		return item, err
	}
	if err := backend.Do(ctx, request, &item); err != nil {
		return item, err
	}
	if err := item.Validate(); err != nil {
		var zero T
		return zero, invalidPayload(request, err)
	}
	return item, nil
}

func send(ctx context.Context, backend Requester, request client.Request) error {
	if err := requireToken(request.Token); err != nil {
		return err
	}
	return backend.Do(ctx, request, nil)
}

func invalidPayload(request client.Request, cause error) error {
	return &client.Error{
		Kind:    client.KindDecode,
		Method:  request.Method,
		Path:    request.Path,
		Message: "invalid payload",
		Err:     fmt.Errorf("%w: %w", ErrInvalidPayload, cause),
	}
}

// Services bundles every per-resource facade behind one shared backend.
type Services struct {
	Auth          *AuthService
	Moods         *MoodService
	Journals      *JournalService
	Goals         *GoalService
	CheckIns      *CheckInService
	Logs          *LogService
	FeatureFlags  *FeatureFlagService
	AgentOverride *AgentOverrideService
	Support       *SupportTicketService
	ChurnRisk     *ChurnRiskService
	Refunds       *RefundService
	Impersonation *ImpersonationService
	Billing       *BillingService
	Export        *ExportService
	Version       *VersionService
}

func NewServices(backend Requester) *Services {
	return &Services{
		Auth:          NewAuthService(backend),
		Moods:         NewMoodService(backend),
		Journals:      NewJournalService(backend),
		Goals:         NewGoalService(backend),
		CheckIns:      NewCheckInService(backend),
		Logs:          NewLogService(backend),
		FeatureFlags:  NewFeatureFlagService(backend),
		AgentOverride: NewAgentOverrideService(backend),
		Support:       NewSupportTicketService(backend),
		ChurnRisk:     NewChurnRiskService(backend),
		Refunds:       NewRefundService(backend),
		Impersonation: NewImpersonationService(backend),
		Billing:       NewBillingService(backend),
		Export:        NewExportService(backend),
		Version:       NewVersionService(backend),
	}
}
