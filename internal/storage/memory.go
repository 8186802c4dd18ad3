package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/outfieldhq/campaignvault/internal/campaign"
)

// MemoryStore is an in-memory campaign.Store used by tests and by local
// runs without a database. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]campaign.Campaign
	notes     map[string]campaign.Note
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		campaigns: make(map[string]campaign.Campaign),
		notes:     make(map[string]campaign.Note),
	}
}

func (s *MemoryStore) CreateCampaign(_ context.Context, params campaign.CreateCampaignParams) (*campaign.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := campaign.Campaign{
		ID:            uuid.NewString(),
		Name:          params.Name,
		EncryptedData: params.EncryptedData,
		FieldMappings: params.FieldMappings,
		RecordCount:   params.RecordCount,
		CreatedAt:     time.Now().UTC(),
	}
	s.campaigns[c.ID] = c
	return &c, nil
}

func (s *MemoryStore) GetCampaign(_ context.Context, id string) (*campaign.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *MemoryStore) ListCampaigns(_ context.Context) ([]campaign.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]campaign.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *MemoryStore) DeleteCampaign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.campaigns, id)
	return nil
}

func (s *MemoryStore) CreateNote(_ context.Context, params campaign.CreateNoteParams) (*campaign.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := campaign.Note{
		ID:            uuid.NewString(),
		Title:         params.Title,
		EncryptedBody: params.EncryptedBody,
		CreatedAt:     time.Now().UTC(),
	}
	s.notes[n.ID] = n
	return &n, nil
}

func (s *MemoryStore) GetNote(_ context.Context, id string) (*campaign.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (s *MemoryStore) ListNotes(_ context.Context) ([]campaign.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]campaign.Note, 0, len(s.notes))
	for _, n := range s.notes {
		list = append(list, n)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, id)
	return nil
}
