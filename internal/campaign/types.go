package campaign

import (
	"context"
	"time"
)

// CampaignData is the payload encrypted at rest for one campaign.
// Headers lists the mapped canonical fields (plus Time Zone) in enumeration
// order; Rows preserves source CSV line order, header line excluded.
type CampaignData struct {
	Headers       []Field         `json:"headers"`
	Rows          []NormalizedRow `json:"rows"`
	FieldMappings FieldMapping    `json:"fieldMappings"`
}

// Campaign is the persisted entity. EncryptedData holds the ciphertext of
// the serialized CampaignData; FieldMappings is kept in plaintext so lists
// never require decryption. Campaigns are never mutated in place —
// corrections require re-upload.
type Campaign struct {
	ID            string
	Name          string
	EncryptedData string
	FieldMappings FieldMapping
	RecordCount   int
	CreatedAt     time.Time
}

// Note is a free-text note stored with its body encrypted.
type Note struct {
	ID            string
	Title         string
	EncryptedBody string
	CreatedAt     time.Time
}

// CreateCampaignParams carries everything the store needs to persist a new
// campaign. The store assigns ID and CreatedAt.
type CreateCampaignParams struct {
	Name          string
	EncryptedData string
	FieldMappings FieldMapping
	RecordCount   int
}

// CreateNoteParams carries everything the store needs to persist a note.
type CreateNoteParams struct {
	Title         string
	EncryptedBody string
}

// Store is the persistence collaborator. Implementations must return
// (nil, nil) from the getters when no entity exists for the ID.
type Store interface {
	CreateCampaign(ctx context.Context, params CreateCampaignParams) (*Campaign, error)
	GetCampaign(ctx context.Context, id string) (*Campaign, error)
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	CreateNote(ctx context.Context, params CreateNoteParams) (*Note, error)
	GetNote(ctx context.Context, id string) (*Note, error)
	ListNotes(ctx context.Context) ([]Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Cipher is the encryption collaborator. Decrypt(Encrypt(x)) == x for all
// x; Decrypt must fail on tampered or invalid ciphertext rather than
// return garbage.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Summary is the plaintext view of a campaign returned by the write path
// and by listings. It never contains row data.
type Summary struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	RecordCount   int          `json:"recordCount"`
	FieldMappings FieldMapping `json:"fieldMappings"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Detail is a decrypted view of one campaign, produced on demand by reads.
type Detail struct {
	Summary
	Data CampaignData `json:"data"`
}

// NoteSummary is the plaintext view of a note.
type NoteSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteDetail includes the decrypted note body.
type NoteDetail struct {
	NoteSummary
	Body string `json:"body"`
}
