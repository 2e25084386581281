// Package store defines the keyword store contract shared by every backend.
package store

import (
	"context"
	"errors"
	"log/slog"

	"keywatch/internal/models"
	"keywatch/internal/validation"
)

// Domain-level store error sentinels.
var (
	ErrDuplicateKeyword = errors.New("keyword already exists for this channel")
	ErrKeywordNotFound  = errors.New("keyword not found")
)

// Store persists keywords. Implementations enforce (channelId, text)
// uniqueness at the storage layer.
type Store interface {
	// List returns every keyword in insertion order.
	List(ctx context.Context) ([]models.Keyword, error)
	// Create validates and persists a new keyword with a zero alert count.
	Create(ctx context.Context, channelID, text string) (*models.Keyword, error)
	// Delete removes the keyword with the given id. It returns
	// ErrKeywordNotFound when nothing matched.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close()
}

// Prepare trims and validates create input. Backends call it before touching storage.
func Prepare(channelID, text string) (models.KeywordInput, error) {
	in := models.KeywordInput{
		ChannelID: validation.NormalizeText(channelID),
		Text:      validation.NormalizeText(text),
	}
	if err := validation.Struct(in); err != nil {
		return models.KeywordInput{}, err
	}
	return in, nil
}

// Seed creates the given keywords, skipping pairs that already exist.
// It returns the number of keywords created.
func Seed(ctx context.Context, s Store, inputs []models.KeywordInput) (int, error) {
	created := 0
	for _, in := range inputs {
		_, err := s.Create(ctx, in.ChannelID, in.Text)
		if errors.Is(err, ErrDuplicateKeyword) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		slog.Info("seeded keywords", "created", created, "skipped", len(inputs)-created)
	}
	return created, nil
}
