package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dendrafalah/terencana.id/internal/domain"
)

func newTestRepo(t *testing.T) *DraftRepository {
	t.Helper()
	repo, err := NewDraftRepository(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDraftRepository: %v", err)
	}
	return repo
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	deviceID := uuid.New()

	payload := map[string]any{"stepIndex": float64(2), "name": "Dina"}
	if err := repo.Save(deviceID, domain.SlotHealthDraft, payload); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Load before the flush delay must still see the payload.
	raw, err := repo.Load(deviceID, domain.SlotHealthDraft)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["name"] != "Dina" || got["stepIndex"] != float64(2) {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestLoadMissingSlot(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Load(uuid.New(), domain.SlotHealthDraft); err != domain.ErrDraftNotFound {
		t.Fatalf("Load missing = %v, want ErrDraftNotFound", err)
	}
}

func TestCloseFlushesPendingWrites(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewDraftRepository(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDraftRepository: %v", err)
	}
	deviceID := uuid.New()

	if err := repo.Save(deviceID, domain.SlotWeddingDraft, map[string]any{"step": 3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	path := filepath.Join(dir, deviceID.String(), "rencana_nikah_v1_draft.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["step"] != float64(3) {
		t.Fatalf("unexpected payload on disk: %v", got)
	}
}

func TestDeleteRemovesSlot(t *testing.T) {
	repo := newTestRepo(t)
	deviceID := uuid.New()

	if err := repo.Save(deviceID, domain.SlotReflection, map[string]any{"total": 10}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(deviceID, domain.SlotReflection); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Load(deviceID, domain.SlotReflection); err != domain.ErrDraftNotFound {
		t.Fatalf("Load after delete = %v, want ErrDraftNotFound", err)
	}

	// Deleting an absent slot is a no-op.
	if err := repo.Delete(deviceID, domain.SlotReflection); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}
