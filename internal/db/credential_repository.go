package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/coachdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const SessionCredentialKey = "session"

// CredentialRepository keeps the command line session token. Tokens saved for a
// different backend are treated as absent.
type CredentialRepository struct {
	db         *gorm.DB
	backendURL string
	now        func() time.Time
}

func NewCredentialRepository(database *gorm.DB, backendURL string) *CredentialRepository {
	return &CredentialRepository{
		db:         database,
		backendURL: strings.TrimSuffix(strings.TrimSpace(backendURL), "/"),
		now:        time.Now,
	}
}

func (repo *CredentialRepository) Load(ctx context.Context) (string, error) {
	var credential models.Credential
	err := repo.db.WithContext(ctx).
		Where(&models.Credential{Key: SessionCredentialKey}).
		First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if credential.BackendURL != "" && repo.backendURL != "" && credential.BackendURL != repo.backendURL {
		return "", nil
	}
	return credential.Token, nil
}

func (repo *CredentialRepository) Save(ctx context.Context, token string) error {
	credential := models.Credential{
		Key:        SessionCredentialKey,
		Token:      strings.TrimSpace(token),
		BackendURL: repo.backendURL,
		UpdatedAt:  repo.now().UTC(),
	}
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "backend_url", "updated_at"}),
	}).Create(&credential).Error
}

func (repo *CredentialRepository) Clear(ctx context.Context) error {
	return repo.db.WithContext(ctx).
		Where(&models.Credential{Key: SessionCredentialKey}).
		Delete(&models.Credential{}).Error
}
