package session

import (
	"context"
	"sync"
)

type providerContextKey struct{}

// Provider holds the current session and is the single subscription point for
// status changes such as a backend 401.
type Provider struct {
	mu          sync.Mutex
	current     Session
	nextID      int
	subscribers map[int]func(Session)
}

func NewProvider(initial Session) *Provider {
	return &Provider{
		current:     initial,
		subscribers: make(map[int]func(Session)),
	}
}

func (provider *Provider) Current() Session {
	provider.mu.Lock()
	defer provider.mu.Unlock()
	return provider.current
}

func (provider *Provider) Subscribe(fn func(Session)) func() {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	id := provider.nextID
	provider.nextID++
	provider.subscribers[id] = fn

	return func() {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		delete(provider.subscribers, id)
	}
}

func (provider *Provider) Set(next Session) {
	provider.mu.Lock()
	changed := provider.current.Status != next.Status || provider.current.Token != next.Token
	provider.current = next
	listeners := provider.snapshotSubscribersLocked()
	provider.mu.Unlock()

	if !changed {
		return
	}
	for _, listener := range listeners {
		listener(next)
	}
}

// Invalidate drops the credential; subscribers run at most once per transition.
func (provider *Provider) Invalidate() {
	provider.Set(Session{Status: StatusAnonymous})
}

func (provider *Provider) snapshotSubscribersLocked() []func(Session) {
	listeners := make([]func(Session), 0, len(provider.subscribers))
	for id := 0; id < provider.nextID; id++ {
		if listener, ok := provider.subscribers[id]; ok {
			listeners = append(listeners, listener)
		}
	}
	return listeners
}

func WithProvider(ctx context.Context, provider *Provider) context.Context {
	return context.WithValue(ctx, providerContextKey{}, provider)
}

func ProviderFromContext(ctx context.Context) (*Provider, bool) {
	if ctx == nil {
		return nil, false
	}
	provider, ok := ctx.Value(providerContextKey{}).(*Provider)
	return provider, ok && provider != nil
}

// InvalidateFromContext is the 401 interceptor hook handed to the HTTP client.
func InvalidateFromContext(ctx context.Context) {
	if provider, ok := ProviderFromContext(ctx); ok {
		provider.Invalidate()
	}
}
