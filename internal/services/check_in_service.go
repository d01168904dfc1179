package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

const (
	MinCheckInRating = 1
	MaxCheckInRating = 10
)

var (
	ErrCheckInRatingInvalid = errors.New("check-in ratings must be between 1 and 10")
	ErrCheckInDateInvalid   = errors.New("check-in date invalid")
)

type CheckInService struct {
	backend Requester
}

type CheckInInput struct {
	Date   string `json:"date"`
	Energy int    `json:"energy"`
	Focus  int    `json:"focus"`
	Notes  string `json:"notes,omitempty"`
}

func NewCheckInService(backend Requester) *CheckInService {
	return &CheckInService{backend: backend}
}

func (service *CheckInService) List(ctx context.Context, token string) ([]models.CheckIn, error) {
	return fetchList[models.CheckIn](ctx, service.backend, client.Request{
		Path:  "/checkins",
		Token: token,
	})
}

func (service *CheckInService) Create(ctx context.Context, token string, input CheckInInput) (models.CheckIn, error) {
	if !validCheckInRating(input.Energy) || !validCheckInRating(input.Focus) {
		return models.CheckIn{}, ErrCheckInRatingInvalid
	}
	date := strings.TrimSpace(input.Date)
	if _, ok := models.ParseISODate(date); !ok {
		return models.CheckIn{}, ErrCheckInDateInvalid
	}
	input.Date = models.DateOnly(date)
	input.Notes = strings.TrimSpace(input.Notes)

	return fetchOne[models.CheckIn](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/checkins",
		Token:  token,
		Body:   input,
	})
}

func validCheckInRating(value int) bool {
	return value >= MinCheckInRating && value <= MaxCheckInRating
}
