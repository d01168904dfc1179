package models

import (
	"errors"
	"strings"
	"time"
)

var errFeatureFlagKeyMissing = errors.New("feature flag key is required")

type FeatureFlag struct {
	Key       string    `json:"key"`
	Tier      string    `json:"tier"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (flag FeatureFlag) Validate() error {
	if strings.TrimSpace(flag.Key) == "" {
		return errFeatureFlagKeyMissing
	}
	return nil
}
