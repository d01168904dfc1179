package services

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

var (
	ErrMoodInvalid     = errors.New("mood value invalid")
	ErrMoodDateInvalid = errors.New("mood date invalid")
)

type MoodService struct {
	backend Requester
}

type MoodInput struct {
	Date string `json:"date"`
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

func NewMoodService(backend Requester) *MoodService {
	return &MoodService{backend: backend}
}

func (service *MoodService) History(ctx context.Context, token string) ([]models.MoodRecord, error) {
	return fetchList[models.MoodRecord](ctx, service.backend, client.Request{
		Path:  "/moods/history",
		Token: token,
	})
}

func (service *MoodService) Log(ctx context.Context, token string, input MoodInput) (models.MoodRecord, error) {
	normalized, err := NormalizeMoodInput(input)
	if err != nil {
		return models.MoodRecord{}, err
	}
	return fetchOne[models.MoodRecord](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/moods",
		Token:  token,
		Body:   normalized,
	})
}

// NormalizeMoodInput matches the mood case-insensitively against the known set.
func NormalizeMoodInput(input MoodInput) (MoodInput, error) {
	mood := canonicalMood(input.Mood)
	if mood == "" {
		return MoodInput{}, ErrMoodInvalid
	}
	date := strings.TrimSpace(input.Date)
	if _, ok := models.ParseISODate(date); !ok {
		return MoodInput{}, ErrMoodDateInvalid
	}
	return MoodInput{
		Date: models.DateOnly(date),
		Mood: mood,
		Note: strings.TrimSpace(input.Note),
	}, nil
}

func canonicalMood(raw string) string {
	trimmed := strings.TrimSpace(raw)
	index := slices.IndexFunc(models.KnownMoods(), func(mood string) bool {
		return strings.EqualFold(mood, trimmed)
	})
	if index < 0 {
		return ""
	}
	return models.KnownMoods()[index]
}
