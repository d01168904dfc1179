package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (store *MemoryStore) Load(context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, nil
}

func (store *MemoryStore) Save(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
	return nil
}

func (store *MemoryStore) Clear(context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
	return nil
}
