package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

var ErrFeatureFlagNotFound = errors.New("feature flag not found")

type FeatureFlagService struct {
	backend Requester
	now     func() time.Time
}

func NewFeatureFlagService(backend Requester) *FeatureFlagService {
	return &FeatureFlagService{backend: backend, now: time.Now}
}

func (service *FeatureFlagService) List(ctx context.Context, token string) ([]models.FeatureFlag, error) {
	flags, err := fetchList[models.FeatureFlag](ctx, service.backend, client.Request{
		Path:  "/admin/feature-flags",
		Token: token,
	})
	if err != nil {
		return nil, err
	}
	SortFeatureFlags(flags)
	return flags, nil
}

// Toggle applies the change locally first, then PATCHes the backend. The updated
// list is returned even when the PATCH fails; nothing is rolled back and the
// next List call shows the backend's state.
func (service *FeatureFlagService) Toggle(ctx context.Context, token string, flags []models.FeatureFlag, key string, enabled bool) ([]models.FeatureFlag, error) {
	if err := requireToken(token); err != nil {
		return flags, err
	}

	updated := slices.Clone(flags)
	index := slices.IndexFunc(updated, func(flag models.FeatureFlag) bool {
		return flag.Key == strings.TrimSpace(key)
	})
	if index < 0 {
		return updated, ErrFeatureFlagNotFound
	}
	updated[index].Enabled = enabled
	updated[index].UpdatedAt = service.now().UTC()

	err := service.backend.Do(ctx, client.Request{
		Method: http.MethodPatch,
		Path:   "/admin/feature-flags/" + url.PathEscape(updated[index].Key),
		Route:  "/admin/feature-flags/:key",
		Token:  token,
		Body:   map[string]bool{"enabled": enabled},
	}, nil)
	return updated, err
}

// SortFeatureFlags orders by tier then key so the table is stable between fetches.
func SortFeatureFlags(flags []models.FeatureFlag) {
	slices.SortStableFunc(flags, func(left models.FeatureFlag, right models.FeatureFlag) int {
		if byTier := strings.Compare(left.Tier, right.Tier); byTier != 0 {
			return byTier
		}
		return strings.Compare(left.Key, right.Key)
	})
}
