package ledger

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository keeps the snapshot slot in memory. It backs the
// "memory" data backend and the tests. The snapshot is stored as
// marshaled JSON so the load path exercises the same parse-or-fallback
// contract as the durable backends.
type MemoryRepository struct {
	mu       sync.Mutex
	blob     []byte
	darkMode []byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(_ context.Context) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blob == nil {
		return Snapshot{}, ErrNotFound
	}
	var snap Snapshot
	if err := json.Unmarshal(r.blob, &snap); err != nil {
		return Snapshot{}, ErrCorrupt
	}
	return snap, nil
}

func (r *MemoryRepository) Save(_ context.Context, snap Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = blob
	return nil
}

func (r *MemoryRepository) Erase(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = nil
	return nil
}

func (r *MemoryRepository) LoadDarkMode(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.darkMode == nil {
		return false, ErrNotFound
	}
	var enabled bool
	if err := json.Unmarshal(r.darkMode, &enabled); err != nil {
		return false, ErrCorrupt
	}
	return enabled, nil
}

func (r *MemoryRepository) SaveDarkMode(_ context.Context, enabled bool) error {
	blob, err := json.Marshal(enabled)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.darkMode = blob
	return nil
}

// Corrupt overwrites the slot with bytes that do not parse. Test hook.
func (r *MemoryRepository) Corrupt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = []byte("{not json")
}
