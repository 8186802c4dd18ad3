// Package storage provides campaign.Store implementations: a PostgreSQL
// store backed by pgx for production, and an in-memory store for tests and
// local runs without a database.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/outfieldhq/campaignvault/internal/campaign"
)

// schema creates the tables on startup if they do not exist. Field
// mappings are stored as JSONB so listings can render them without
// touching the encrypted payload.
const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	encrypted_data TEXT NOT NULL,
	field_mappings JSONB NOT NULL,
	record_count   INTEGER NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS notes (
	id             UUID PRIMARY KEY,
	title          TEXT NOT NULL,
	encrypted_body TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore persists campaigns and notes in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the required tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CreateCampaign inserts a new campaign and returns it with the assigned
// ID and creation time.
func (s *PostgresStore) CreateCampaign(ctx context.Context, params campaign.CreateCampaignParams) (*campaign.Campaign, error) {
	mappings, err := json.Marshal(params.FieldMappings)
	if err != nil {
		return nil, fmt.Errorf("marshal field mappings: %w", err)
	}

	c := campaign.Campaign{
		ID:            uuid.NewString(),
		Name:          params.Name,
		EncryptedData: params.EncryptedData,
		FieldMappings: params.FieldMappings,
		RecordCount:   params.RecordCount,
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO campaigns (id, name, encrypted_data, field_mappings, record_count)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		c.ID, c.Name, c.EncryptedData, mappings, c.RecordCount,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}

	return &c, nil
}

// GetCampaign returns the campaign with the given ID, or (nil, nil) if it
// does not exist.
func (s *PostgresStore) GetCampaign(ctx context.Context, id string) (*campaign.Campaign, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, encrypted_data, field_mappings, record_count, created_at
		 FROM campaigns WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// ListCampaigns returns all campaigns, newest first.
func (s *PostgresStore) ListCampaigns(ctx context.Context) ([]campaign.Campaign, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, encrypted_data, field_mappings, record_count, created_at
		 FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var list []campaign.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// DeleteCampaign removes a campaign by ID. Deleting a missing ID is not an
// error; the service checks existence first.
func (s *PostgresStore) DeleteCampaign(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

// CreateNote inserts a new note and returns it with the assigned ID and
// creation time.
func (s *PostgresStore) CreateNote(ctx context.Context, params campaign.CreateNoteParams) (*campaign.Note, error) {
	n := campaign.Note{
		ID:            uuid.NewString(),
		Title:         params.Title,
		EncryptedBody: params.EncryptedBody,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO notes (id, title, encrypted_body)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`,
		n.ID, n.Title, n.EncryptedBody,
	).Scan(&n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return &n, nil
}

// GetNote returns the note with the given ID, or (nil, nil) if it does not
// exist.
func (s *PostgresStore) GetNote(ctx context.Context, id string) (*campaign.Note, error) {
	var n campaign.Note
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, encrypted_body, created_at FROM notes WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.EncryptedBody, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// ListNotes returns all notes, newest first.
func (s *PostgresStore) ListNotes(ctx context.Context) ([]campaign.Note, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, encrypted_body, created_at FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var list []campaign.Note
	for rows.Next() {
		var n campaign.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.EncryptedBody, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// DeleteNote removes a note by ID.
func (s *PostgresStore) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// scanCampaign reads one campaign row, decoding the JSONB field mappings.
func scanCampaign(row pgx.Row) (*campaign.Campaign, error) {
	var (
		c        campaign.Campaign
		mappings []byte
		created  time.Time
	)
	if err := row.Scan(&c.ID, &c.Name, &c.EncryptedData, &mappings, &c.RecordCount, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mappings, &c.FieldMappings); err != nil {
		return nil, fmt.Errorf("decode field mappings: %w", err)
	}
	c.CreatedAt = created
	return &c, nil
}
