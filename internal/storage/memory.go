package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process store with the same behavior as Store. Nothing
// survives the process.
type Memory struct {
	mu      sync.Mutex
	sum     Summary
	entries []Entry
	now     func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// NewMemoryFrom returns an in-memory store seeded with known values.
func NewMemoryFrom(sum Summary, entries []Entry) *Memory {
	m := NewMemory()
	m.sum = sum
	m.entries = rankEntries(append([]Entry(nil), entries...))
	return m
}

// HighScore returns the stored high score.
func (m *Memory) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sum.HighScore, nil
}

// SetHighScore overwrites the stored high score.
func (m *Memory) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum.HighScore = score
	return nil
}

// IncrementGamesPlayed adds one to the games-played counter.
func (m *Memory) IncrementGamesPlayed() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum.GamesPlayed++
	return m.sum.GamesPlayed, nil
}

// RecordStreak applies a finished game's score to the streak counters.
func (m *Memory) RecordStreak(score int) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum = nextStreak(m.sum, score)
	return m.sum, nil
}

// Summary returns all counters.
func (m *Memory) Summary() (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sum, nil
}

// AppendEntry records a finished game on the leaderboard.
func (m *Memory) AppendEntry(name string, score int, at time.Time) (Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if at.IsZero() {
		at = m.now()
	}
	e := Entry{
		ID:        uuid.New().String(),
		Name:      NormalizeName(name),
		Score:     score,
		CreatedAt: at.UTC(),
	}
	m.entries = rankEntries(append(m.entries, e))
	return e, Rank(m.entries, e.ID), nil
}

// RenameEntry changes the name on an existing entry.
func (m *Memory) RenameEntry(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Name = NormalizeName(name)
		}
	}
	return nil
}

// Leaderboard returns a copy of the board, best first.
func (m *Memory) Leaderboard() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...), nil
}

// Clear drops everything.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sum = Summary{}
	m.entries = nil
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
