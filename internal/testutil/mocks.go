package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dendrafalah/terencana.id/internal/domain"
)

// MockDraftRepository is an in-memory implementation of domain.DraftRepository.
type MockDraftRepository struct {
	Slots map[string][]byte

	SaveErr   error
	LoadErr   error
	DeleteErr error
}

// NewMockDraftRepository creates a new MockDraftRepository
func NewMockDraftRepository() *MockDraftRepository {
	return &MockDraftRepository{Slots: make(map[string][]byte)}
}

func key(deviceID uuid.UUID, slot domain.Slot) string {
	return fmt.Sprintf("%s/%s", deviceID, slot)
}

// Save stores the JSON encoding of value under (deviceID, slot)
func (m *MockDraftRepository) Save(deviceID uuid.UUID, slot domain.Slot, value any) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Slots[key(deviceID, slot)] = raw
	return nil
}

// Load retrieves the stored payload for (deviceID, slot)
func (m *MockDraftRepository) Load(deviceID uuid.UUID, slot domain.Slot) ([]byte, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	raw, ok := m.Slots[key(deviceID, slot)]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return raw, nil
}

// Delete removes the stored payload for (deviceID, slot)
func (m *MockDraftRepository) Delete(deviceID uuid.UUID, slot domain.Slot) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Slots, key(deviceID, slot))
	return nil
}
