package campaign

// notes.go implements the secondary notes feature: free-text notes stored
// with the same encryption collaborator as campaign data. Titles stay in
// plaintext so listings never decrypt.

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoteTitleRequired is returned when creating a note without a title.
var ErrNoteTitleRequired = errors.New("note title is required")

// CreateNote encrypts the body and persists a new note.
func (s *Service) CreateNote(ctx context.Context, title, body string) (*NoteSummary, error) {
	if title == "" {
		return nil, ErrNoteTitleRequired
	}

	ciphertext, err := s.cipher.Encrypt(body)
	if err != nil {
		return nil, fmt.Errorf("encrypt note body: %w", err)
	}

	created, err := s.store.CreateNote(ctx, CreateNoteParams{
		Title:         title,
		EncryptedBody: ciphertext,
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	return noteSummaryOf(created), nil
}

// Note retrieves and decrypts one note.
func (s *Service) Note(ctx context.Context, id string) (*NoteDetail, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}

	body, err := s.cipher.Decrypt(n.EncryptedBody)
	if err != nil {
		return nil, fmt.Errorf("note %s: corrupted body: %w", n.ID, err)
	}

	return &NoteDetail{NoteSummary: *noteSummaryOf(n), Body: body}, nil
}

// Notes lists all notes as plaintext summaries.
func (s *Service) Notes(ctx context.Context) ([]NoteSummary, error) {
	list, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	summaries := make([]NoteSummary, 0, len(list))
	for i := range list {
		summaries = append(summaries, *noteSummaryOf(&list[i]))
	}
	return summaries, nil
}

// DeleteNote removes a note permanently.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("get note: %w", err)
	}
	if n == nil {
		return ErrNoteNotFound
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func noteSummaryOf(n *Note) *NoteSummary {
	return &NoteSummary{ID: n.ID, Title: n.Title, CreatedAt: n.CreatedAt}
}
