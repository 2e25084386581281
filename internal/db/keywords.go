package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"keywatch/internal/models"
	"keywatch/internal/store"
)

// keywordColumns is the standard column list for keyword queries.
const keywordColumns = `id, channel_id, text, alert_count`

// scanKeywords scans multiple rows into a slice of Keywords.
func scanKeywords(rows pgx.Rows) ([]models.Keyword, error) {
	defer rows.Close()

	keywords := []models.Keyword{}
	for rows.Next() {
		var (
			kw models.Keyword
			id uuid.UUID
		)
		if err := rows.Scan(&id, &kw.ChannelID, &kw.Text, &kw.AlertCount); err != nil {
			return nil, err
		}
		kw.ID = id.String()
		keywords = append(keywords, kw)
	}

	return keywords, rows.Err()
}

// List returns all keywords in insertion order.
func (d *DB) List(ctx context.Context) ([]models.Keyword, error) {
	rows, err := d.Pool.Query(ctx, `SELECT `+keywordColumns+` FROM keywords ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return scanKeywords(rows)
}

// Create inserts a keyword. The keywords_channel_text_key constraint rejects
// duplicate pairs, including ones racing in from concurrent requests.
func (d *DB) Create(ctx context.Context, channelID, text string) (*models.Keyword, error) {
	in, err := store.Prepare(channelID, text)
	if err != nil {
		return nil, err
	}

	kw := &models.Keyword{
		ID:        uuid.NewString(),
		ChannelID: in.ChannelID,
		Text:      in.Text,
	}

	query := `
		INSERT INTO keywords (id, channel_id, text)
		VALUES ($1, $2, $3)
		RETURNING alert_count
	`
	err = d.Pool.QueryRow(ctx, query, kw.ID, kw.ChannelID, kw.Text).Scan(&kw.AlertCount)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateKeyword
		}
		return nil, err
	}

	return kw, nil
}

// Delete removes a keyword by id. Ids that are not UUIDs cannot match a row.
func (d *DB) Delete(ctx context.Context, id string) error {
	keywordID, err := uuid.Parse(id)
	if err != nil {
		return store.ErrKeywordNotFound
	}

	result, err := d.Pool.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, keywordID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return store.ErrKeywordNotFound
	}
	return nil
}
