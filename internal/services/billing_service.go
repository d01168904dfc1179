package services

import (
	"context"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

type BillingService struct {
	backend Requester
}

func NewBillingService(backend Requester) *BillingService {
	return &BillingService{backend: backend}
}

func (service *BillingService) Subscription(ctx context.Context, token string) (models.Subscription, error) {
	return fetchOne[models.Subscription](ctx, service.backend, client.Request{
		Path:  "/billing/subscription",
		Token: token,
	})
}
