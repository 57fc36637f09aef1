// Package storage persists the high score, play counters and the top-10
// leaderboard. Store is backed by SQLite through the pure-Go modernc.org
// driver; Memory keeps the same data in process and is what a session falls
// back to when the database is unavailable.
package storage

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// LeaderboardSize is the number of entries kept on the leaderboard.
const LeaderboardSize = 10

// DefaultName is recorded for entries whose player never typed a name.
const DefaultName = "Anonymous"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// Entry is one leaderboard row.
type Entry struct {
	ID        string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Summary holds the persistent counters.
type Summary struct {
	HighScore     int
	GamesPlayed   int
	BestStreak    int // longest run of consecutive games scoring > 0
	CurrentStreak int
}

// NormalizeName trims the name and substitutes DefaultName for blanks.
// Names are capped at 16 runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if r := []rune(name); len(r) > 16 {
		name = string(r[:16])
	}
	return name
}

// nextStreak applies one finished game to the streak counters.
func nextStreak(sum Summary, score int) Summary {
	if score > 0 {
		sum.CurrentStreak++
	} else {
		sum.CurrentStreak = 0
	}
	if sum.CurrentStreak > sum.BestStreak {
		sum.BestStreak = sum.CurrentStreak
	}
	return sum
}

// rankEntries orders entries by score descending, keeping insertion order
// among equal scores, and caps the list.
func rankEntries(entries []Entry) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}

// Rank returns the 1-based position of id in entries, or 0 when absent.
func Rank(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
