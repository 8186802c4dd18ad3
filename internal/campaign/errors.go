package campaign

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned when an uploaded file contains zero non-blank
// lines. The upload is rejected; nothing is persisted.
var ErrEmptyFile = errors.New("empty file: no non-blank lines")

// ErrCampaignNotFound is returned when no campaign exists for an ID.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrNoteNotFound is returned when no note exists for an ID.
var ErrNoteNotFound = errors.New("note not found")

// MissingRequiredFieldError indicates the supplied field mapping omits one
// of the required canonical fields. It is raised before any data row is
// parsed, so the caller can correct the mapping and resubmit.
type MissingRequiredFieldError struct {
	Field Field
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("field mapping is missing required field %q", string(e.Field))
}

// CorruptedCampaignError indicates a campaign's stored payload could not be
// decrypted or decoded. It is fatal for that campaign's data view and is
// never retried: an undecryptable payload cannot heal itself.
type CorruptedCampaignError struct {
	ID  string
	Err error
}

func (e *CorruptedCampaignError) Error() string {
	return fmt.Sprintf("campaign %s: corrupted payload: %v", e.ID, e.Err)
}

func (e *CorruptedCampaignError) Unwrap() error { return e.Err }
