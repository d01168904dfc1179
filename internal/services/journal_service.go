package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/models"
)

var ErrJournalBodyRequired = errors.New("journal body is required")

type JournalService struct {
	backend Requester
}

type JournalInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Mood  string `json:"mood,omitempty"`
}

func NewJournalService(backend Requester) *JournalService {
	return &JournalService{backend: backend}
}

func (service *JournalService) List(ctx context.Context, token string) ([]models.JournalEntry, error) {
	return fetchList[models.JournalEntry](ctx, service.backend, client.Request{
		Path:  "/journals",
		Token: token,
	})
}

func (service *JournalService) Create(ctx context.Context, token string, input JournalInput) (models.JournalEntry, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	if input.Body == "" {
		return models.JournalEntry{}, ErrJournalBodyRequired
	}
	if input.Mood != "" {
		input.Mood = canonicalMood(input.Mood)
		if input.Mood == "" {
			return models.JournalEntry{}, ErrMoodInvalid
		}
	}

	return fetchOne[models.JournalEntry](ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/journals",
		Token:  token,
		Body:   input,
	})
}

// JournalMarkdown renders the rich-text HTML body of an entry as markdown.
func JournalMarkdown(entry models.JournalEntry) (string, error) {
	converter := md.NewConverter("", true, nil)
	body, err := converter.ConvertString(entry.Body)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = "Untitled entry"
	}
	builder.WriteString("## ")
	builder.WriteString(title)
	builder.WriteString("\n\n")
	if !entry.CreatedAt.IsZero() {
		builder.WriteString("_")
		builder.WriteString(entry.CreatedAt.Format("2006-01-02 15:04"))
		if entry.Mood != "" {
			builder.WriteString(" · ")
			builder.WriteString(entry.Mood)
		}
		builder.WriteString("_\n\n")
	}
	builder.WriteString(strings.TrimSpace(body))
	builder.WriteString("\n")
	return builder.String(), nil
}
