// Package file implements draft storage on the local filesystem. Writes are
// coalesced so rapid wizard edits do not hammer the disk.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dendrafalah/terencana.id/internal/domain"
)

const flushDelay = 250 * time.Millisecond

// DraftRepository stores one JSON file per (device, slot) under a per-device
// directory. Save keeps the payload in memory immediately and flushes to disk
// after a short quiet period; Load always serves the freshest copy.
type DraftRepository struct {
	dir    string
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string][]byte
	timers  map[string]*time.Timer
	closed  bool
}

// NewDraftRepository creates the data directory if needed.
func NewDraftRepository(dir string, logger zerolog.Logger) (*DraftRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &DraftRepository{
		dir:     dir,
		logger:  logger.With().Str("component", "draft_store").Logger(),
		pending: make(map[string][]byte),
		timers:  make(map[string]*time.Timer),
	}, nil
}

func (r *DraftRepository) path(deviceID uuid.UUID, slot domain.Slot) string {
	name := strings.ReplaceAll(string(slot), ":", "_") + ".json"
	return filepath.Join(r.dir, deviceID.String(), name)
}

// Save serializes value and schedules a coalesced write. Disk errors are
// logged, not returned; the in-memory copy stays authoritative until the
// next successful flush.
func (r *DraftRepository) Save(deviceID uuid.UUID, slot domain.Slot, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	path := r.path(deviceID, slot)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.writeFile(path, raw)
	}

	r.pending[path] = raw
	if t, ok := r.timers[path]; ok {
		t.Reset(flushDelay)
		return nil
	}
	r.timers[path] = time.AfterFunc(flushDelay, func() {
		r.flush(path)
	})
	return nil
}

func (r *DraftRepository) flush(path string) {
	r.mu.Lock()
	raw, ok := r.pending[path]
	delete(r.pending, path)
	delete(r.timers, path)
	r.mu.Unlock()
	if !ok {
		return
	}
	if err := r.writeFile(path, raw); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("draft flush failed")
	}
}

func (r *DraftRepository) writeFile(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load returns the pending in-memory payload when one exists, the on-disk
// file otherwise.
func (r *DraftRepository) Load(deviceID uuid.UUID, slot domain.Slot) ([]byte, error) {
	path := r.path(deviceID, slot)

	r.mu.Lock()
	if raw, ok := r.pending[path]; ok {
		r.mu.Unlock()
		return raw, nil
	}
	r.mu.Unlock()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return raw, nil
}

// Delete drops both the pending payload and the file.
func (r *DraftRepository) Delete(deviceID uuid.UUID, slot domain.Slot) error {
	path := r.path(deviceID, slot)

	r.mu.Lock()
	delete(r.pending, path)
	if t, ok := r.timers[path]; ok {
		t.Stop()
		delete(r.timers, path)
	}
	r.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// Close flushes everything still pending. Save calls after Close write
// through synchronously.
func (r *DraftRepository) Close() error {
	r.mu.Lock()
	r.closed = true
	for path, t := range r.timers {
		t.Stop()
		delete(r.timers, path)
	}
	paths := make([]string, 0, len(r.pending))
	for path := range r.pending {
		paths = append(paths, path)
	}
	r.mu.Unlock()

	var firstErr error
	for _, path := range paths {
		r.mu.Lock()
		raw, ok := r.pending[path]
		delete(r.pending, path)
		r.mu.Unlock()
		if !ok {
			continue
		}
		if err := r.writeFile(path, raw); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
