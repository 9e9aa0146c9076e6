// Package postgres implements draft storage on PostgreSQL for deployments
// that want drafts to survive the instance.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dendrafalah/terencana.id/internal/domain"
)

const queryTimeout = 5 * time.Second

// DraftRepository persists draft slots in a single jsonb table.
type DraftRepository struct {
	pool *pgxpool.Pool
}

// NewDraftRepository creates a new DraftRepository
func NewDraftRepository(pool *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{pool: pool}
}

// EnsureSchema creates the draft table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS draft_slots (
			device_id  UUID        NOT NULL,
			slot       TEXT        NOT NULL,
			payload    JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (device_id, slot)
		)`)
	if err != nil {
		return fmt.Errorf("ensure draft schema: %w", err)
	}
	return nil
}

// Save upserts the payload for (deviceID, slot)
func (r *DraftRepository) Save(deviceID uuid.UUID, slot domain.Slot, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err = r.pool.Exec(ctx, `
		INSERT INTO draft_slots (device_id, slot, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (device_id, slot)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		deviceID, string(slot), raw)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Load retrieves the payload for (deviceID, slot)
func (r *DraftRepository) Load(deviceID uuid.UUID, slot domain.Slot) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM draft_slots WHERE device_id = $1 AND slot = $2`,
		deviceID, string(slot)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return raw, nil
}

// Delete removes the payload for (deviceID, slot)
func (r *DraftRepository) Delete(deviceID uuid.UUID, slot domain.Slot) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`DELETE FROM draft_slots WHERE device_id = $1 AND slot = $2`,
		deviceID, string(slot))
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
