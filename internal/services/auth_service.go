package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/terraincognita07/coachdesk/internal/client"
)

type AuthService struct {
	backend Requester
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (response tokenResponse) Validate() error {
	if strings.TrimSpace(response.Token) == "" {
		return errors.New("token is required")
	}
	return nil
}

func NewAuthService(backend Requester) *AuthService {
	return &AuthService{backend: backend}
}

// Login exchanges credentials for a session token issued by the backend.
func (service *AuthService) Login(ctx context.Context, emailRaw string, passwordRaw string) (string, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return "", err
	}

	request := client.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	}

	var response tokenResponse
	if err := service.backend.Do(ctx, request, &response); err != nil {
		return "", err
	}
	if err := response.Validate(); err != nil {
		return "", invalidPayload(request, err)
	}
	return strings.TrimSpace(response.Token), nil
}

func (service *AuthService) Logout(ctx context.Context, token string) error {
	return send(ctx, service.backend, client.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Token:  token,
	})
}
