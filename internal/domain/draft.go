package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Slot identifies one persisted record for a device. Keys are versioned so a
// schema change never corrupts data written by an older build; loading always
// merges stored JSON onto the current default template.
type Slot string

const (
	SlotHealthDraft   Slot = "fhc_v1:draft"
	SlotHealthFinal   Slot = "fhc_v1:final"
	SlotGoalPlanDraft Slot = "goal_plan_v1:draft"
	SlotGoalPlanFinal Slot = "goal_plan_v1:final"
	SlotWeddingDraft  Slot = "rencana_nikah_v1:draft"
	SlotWeddingFinal  Slot = "rencana_nikah_v1:final"
	SlotReflection    Slot = "reflection_v1:final"
)

// DraftRepository persists wizard drafts and finalized results, one slot per
// feature per device.
type DraftRepository interface {
	Save(deviceID uuid.UUID, slot Slot, value any) error
	// Load returns the stored payload, or ErrDraftNotFound.
	Load(deviceID uuid.UUID, slot Slot) ([]byte, error)
	Delete(deviceID uuid.UUID, slot Slot) error
}

// DecodeDraft merges stored JSON onto template, which must be a pointer
// pre-filled with the feature's defaults. Objects merge key by key; arrays and
// scalars from the stored payload replace the default wholesale. Malformed or
// incompatible payloads leave the defaults untouched: loading never fails.
func DecodeDraft(raw []byte, template any) {
	base, err := json.Marshal(template)
	if err != nil {
		return
	}

	var dst map[string]any
	if err := json.Unmarshal(base, &dst); err != nil {
		return
	}
	var src map[string]any
	if err := json.Unmarshal(raw, &src); err != nil {
		return
	}

	deepMerge(dst, src)

	merged, err := json.Marshal(dst)
	if err != nil {
		return
	}
	if err := json.Unmarshal(merged, template); err != nil {
		// A stored field changed type across versions; fall back to defaults
		// rather than surface a half-decoded draft.
		_ = json.Unmarshal(base, template)
	}
}

func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				deepMerge(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}
