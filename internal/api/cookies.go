package api

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/coachdesk/internal/session"
)

// cookieTokenStore adapts the sealed auth cookie of one request to session.TokenStore.
type cookieTokenStore struct {
	handler *Handler
	c       *fiber.Ctx
}

func (handler *Handler) cookieStore(c *fiber.Ctx) *cookieTokenStore {
	return &cookieTokenStore{handler: handler, c: c}
}

// Load treats a cookie that fails to open as no session at all.
func (store *cookieTokenStore) Load(context.Context) (string, error) {
	raw := strings.TrimSpace(store.c.Cookies(authCookieName))
	if raw == "" {
		return "", nil
	}
	token, err := store.handler.cookies.open(authCookiePurpose, raw)
	if err != nil {
		return "", nil
	}
	return string(token), nil
}

func (store *cookieTokenStore) Save(_ context.Context, token string) error {
	sealed, err := store.handler.cookies.seal(authCookiePurpose, []byte(strings.TrimSpace(token)))
	if err != nil {
		return err
	}

	expires := time.Time{}
	if claims, err := session.DecodeClaims(token); err == nil {
		expires = claims.ExpiresAt
	}
	store.c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   store.handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expires,
	})
	return nil
}

func (store *cookieTokenStore) Clear(context.Context) error {
	store.handler.clearAuthCookie(store.c)
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
