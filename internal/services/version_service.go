package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/terraincognita07/coachdesk/internal/client"
)

// MinBackendVersion is the oldest backend API this frontend talks to.
const MinBackendVersion = "2.4.0"

var ErrBackendTooOld = errors.New("backend version is older than supported")

type VersionService struct {
	backend Requester
}

type versionResponse struct {
	Version string `json:"version"`
}

func (response versionResponse) Validate() error {
	if strings.TrimSpace(response.Version) == "" {
		return errors.New("version is required")
	}
	return nil
}

func NewVersionService(backend Requester) *VersionService {
	return &VersionService{backend: backend}
}

func (service *VersionService) BackendVersion(ctx context.Context) (string, error) {
	request := client.Request{Path: "/version"}
	var response versionResponse
	if err := service.backend.Do(ctx, request, &response); err != nil {
		return "", err
	}
	if err := response.Validate(); err != nil {
		return "", invalidPayload(request, err)
	}
	return strings.TrimSpace(response.Version), nil
}

func CheckBackendCompatibility(reported string, minimum string) error {
	current, err := semver.ParseTolerant(reported)
	if err != nil {
		return fmt.Errorf("parse backend version %q: %w", reported, err)
	}
	floor, err := semver.ParseTolerant(minimum)
	if err != nil {
		return fmt.Errorf("parse minimum version %q: %w", minimum, err)
	}
	if current.LT(floor) {
		return fmt.Errorf("%w: %s < %s", ErrBackendTooOld, current, floor)
	}
	return nil
}
