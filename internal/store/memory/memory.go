// Package memory provides an in-process keyword store for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"keywatch/internal/models"
	"keywatch/internal/store"
)

// Store keeps keywords in insertion order behind a mutex.
type Store struct {
	mu       sync.RWMutex
	keywords []models.Keyword
	byKey    map[models.KeywordKey]string
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{byKey: make(map[models.KeywordKey]string)}
}

// List returns a copy of all keywords.
func (s *Store) List(_ context.Context) ([]models.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Keyword, len(s.keywords))
	copy(out, s.keywords)
	return out, nil
}

// Create adds a keyword unless its (channelId, text) pair is taken.
func (s *Store) Create(_ context.Context, channelID, text string) (*models.Keyword, error) {
	in, err := store.Prepare(channelID, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.KeywordKey{ChannelID: in.ChannelID, Text: in.Text}
	if _, exists := s.byKey[key]; exists {
		return nil, store.ErrDuplicateKeyword
	}

	kw := models.Keyword{
		ID:        uuid.NewString(),
		ChannelID: in.ChannelID,
		Text:      in.Text,
	}
	s.keywords = append(s.keywords, kw)
	s.byKey[key] = kw.ID
	return &kw, nil
}

// Delete removes a keyword by id.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, kw := range s.keywords {
		if kw.ID != id {
			continue
		}
		s.keywords = append(s.keywords[:i], s.keywords[i+1:]...)
		delete(s.byKey, kw.Key())
		return nil
	}
	return store.ErrKeywordNotFound
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() {}
