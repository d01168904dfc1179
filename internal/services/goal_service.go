package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

var (
	ErrGoalTitleRequired   = errors.New("goal title is required")
	ErrGoalProgressInvalid = errors.New("goal progress must be between 0 and 100")
	ErrGoalDueDateInvalid  = errors.New("goal due date invalid")
)

type GoalService struct {
	backend Requester
}

type GoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

func NewGoalService(backend Requester) *GoalService {
	return &GoalService{backend: backend}
}

func (service *GoalService) List(ctx context.Context, token string) ([]models.Goal, error) {
	return fetchList[models.Goal](ctx, service.backend, client.Request{
		Path:  "/goals",
		Token: token,
	})
}

func (service *GoalService) Create(ctx context.Context, token string, input GoalInput) (models.Goal, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.DueDate = strings.TrimSpace(input.DueDate)
	if input.Title == "" {
		return models.Goal{}, ErrGoalTitleRequired
	}
	if input.DueDate != "" {
		if _, ok := models.ParseISODate(input.DueDate); !ok {
			return models.Goal{}, ErrGoalDueDateInvalid
		}
		input.DueDate = models.DateOnly(input.DueDate)
	}

	return fetchOne[models.Goal](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/goals",
		Token:  token,
		Body:   input,
	})
}

func (service *GoalService) UpdateProgress(ctx context.Context, token string, goalID string, progress int) (models.Goal, error) {
	if progress < 0 || progress > 100 {
		return models.Goal{}, ErrGoalProgressInvalid
	}
	status := models.GoalStatusActive
	if progress == 100 {
		status = models.GoalStatusCompleted
	}

	return fetchOne[models.Goal](ctx, service.backend, client.Request{
		Method: http.MethodPut,
		Path:   "/goals/" + url.PathEscape(strings.TrimSpace(goalID)),
		Route:  "/goals/:id",
		Token:  token,
		Body: map[string]any{
			"progress": progress,
			"status":   status,
		},
	})
}

// GoalCompletionRate is the share of non-archived goals that are completed.
func GoalCompletionRate(goals []models.Goal) float64 {
	considered := 0
	completed := 0
	for _, goal := range goals {
		if goal.Status == models.GoalStatusArchived {
			continue
		}
		considered++
		if goal.Status == models.GoalStatusCompleted {
			completed++
		}
	}
	if considered == 0 {
		return 0
	}
	return float64(completed) / float64(considered)
}
