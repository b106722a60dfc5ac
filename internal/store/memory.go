// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for tests and for HANGMAN_STORE=memory, when nothing should outlive
// the process.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (the HTTP view reads while the session writes).
//   - Records are copied in and out so callers cannot alias stored state.

package store

import (
	"context"
	"sort"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards stats and games
	stats Stats
	games map[string]GameRecord // keyed by GameRecord.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]GameRecord)}
}

func (m *memory) LoadStats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats, nil
}

func (m *memory) SaveStats(ctx context.Context, s Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = s
	return nil
}

func (m *memory) ResetStats(ctx context.Context) error {
	return m.SaveStats(ctx, Stats{})
}

func (m *memory) SaveGame(ctx context.Context, r GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Guesses = append(r.Guesses[:0:0], r.Guesses...)
	m.games[r.ID] = r
	return nil
}

func (m *memory) GetGame(ctx context.Context, id string) (GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.games[id]
	if !ok {
		return GameRecord{}, ErrNotFound
	}
	r.Guesses = append(r.Guesses[:0:0], r.Guesses...)
	return r, nil
}

func (m *memory) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	m.mu.RLock()
	out := make([]GameRecord, 0, len(m.games))
	for _, r := range m.games {
		r.Guesses = append(r.Guesses[:0:0], r.Guesses...)
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].FinishedAt.After(out[j].FinishedAt)
		}
		return out[i].Number > out[j].Number
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) NextGameNumber(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	highest := 0
	for _, r := range m.games {
		if r.Number > highest {
			highest = r.Number
		}
	}
	return highest + 1, nil
}

func (m *memory) Close() error { return nil }
