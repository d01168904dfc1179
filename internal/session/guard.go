package session

import (
	"context"
	"fmt"
	"time"
)

const (
	MessageSessionExpired = "Your session has expired. Please sign in again."
	MessageSignInRequired = "Please sign in to continue."
)

// TokenStore persists the single session credential under a fixed key.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

type Notifier interface {
	Notify(notification Notification)
}

type NotifierFunc func(notification Notification)

func (fn NotifierFunc) Notify(notification Notification) {
	fn(notification)
}

// Guard validates the stored credential once per page mount or command run.
// A token that expires afterwards is only caught by the next check.
type Guard struct {
	store    TokenStore
	notifier Notifier
	now      func() time.Time
}

func NewGuard(store TokenStore, notifier Notifier) *Guard {
	return &Guard{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

func (guard *Guard) WithClock(now func() time.Time) *Guard {
	if now != nil {
		guard.now = now
	}
	return guard
}

func (guard *Guard) Check(ctx context.Context) (Session, error) {
	token, err := guard.store.Load(ctx)
	if err != nil {
		return Session{Status: StatusAnonymous}, fmt.Errorf("load session token: %w", err)
	}

	current := Inspect(token, guard.now())
	if current.IsAuthenticated() {
		return current, nil
	}

	if err := guard.store.Clear(ctx); err != nil {
		return current, fmt.Errorf("clear session token: %w", err)
	}
	guard.notify(Notification{Kind: NotificationError, Message: messageForStatus(current.Status)})
	return current, ErrRedirectToLogin
}

func (guard *Guard) notify(notification Notification) {
	if guard.notifier == nil {
		return
	}
	guard.notifier.Notify(notification)
}

func messageForStatus(status Status) string {
	if status == StatusExpired {
		return MessageSessionExpired
	}
	return MessageSignInRequired
}
