// Package favorites keeps the set of favorite movie ids in memory and in the
// profile's key-value store.
//
// Every mutation writes the full set back to the store before it returns, so
// the next Load always sees what the UI last showed. Store failures are
// logged and leave the previous set in place.
package favorites

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Manager is the single in-memory mirror of the stored favorites.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu    sync.RWMutex
	ids   []int // insertion order
	index map[int]struct{}
}

// NewManager creates a manager over store. Call Load before use.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		store:  store,
		logger: logger,
		index:  make(map[int]struct{}),
	}
}

// Load replaces the in-memory set with the stored one. Missing, unreadable or
// malformed data yields an empty set.
func (m *Manager) Load() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ids = nil
	m.index = make(map[int]struct{})

	raw, err := m.store.Get(Key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		return []int{}
	case err != nil:
		m.logger.Warn("failed to read favorites, starting empty", "error", err)
		return []int{}
	}

	var stored []int
	if err := json.Unmarshal(raw, &stored); err != nil {
		m.logger.Warn("malformed favorites data, starting empty", "error", err, "bytes", len(raw))
		return []int{}
	}

	for _, id := range stored {
		if _, ok := m.index[id]; ok {
			continue
		}
		m.index[id] = struct{}{}
		m.ids = append(m.ids, id)
	}

	m.logger.Debug("favorites loaded", "count", len(m.ids))
	return m.snapshot()
}

// IsFavorite reports whether id is in the set.
func (m *Manager) IsFavorite(id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[id]
	return ok
}

// Toggle removes id if present, appends it otherwise, and persists the result.
func (m *Manager) Toggle(id int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[id]; ok {
		return m.commit(without(m.ids, id))
	}
	next := make([]int, 0, len(m.ids)+1)
	next = append(next, m.ids...)
	next = append(next, id)
	return m.commit(next)
}

// Remove drops id from the set and persists the result.
func (m *Manager) Remove(id int) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.commit(without(m.ids, id))
}

// IDs returns the favorites in insertion order.
func (m *Manager) IDs() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

// Len returns the number of favorites.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

// commit writes next to the store and adopts it only if the write succeeded.
// Caller holds mu.
func (m *Manager) commit(next []int) []int {
	data, err := json.Marshal(next)
	if err == nil {
		err = m.store.Set(Key, data)
	}
	if err != nil {
		m.logger.Warn("failed to persist favorites, keeping previous set", "error", err)
		return m.snapshot()
	}

	m.ids = next
	m.index = make(map[int]struct{}, len(next))
	for _, id := range next {
		m.index[id] = struct{}{}
	}
	return m.snapshot()
}

func (m *Manager) snapshot() []int {
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

func without(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
