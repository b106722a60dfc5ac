// internal/store/store.go
//
// Persistence contracts for cumulative statistics and finished games.
// The session loads stats at start, records each finished game, and the
// optional HTTP view reads from the same Store.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Stats are the cumulative counters across sessions. They only grow,
// except through an explicit ResetStats.
type Stats struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	TotalScore  int `json:"totalScore"`
}

// Record folds one finished game into the counters.
func (s *Stats) Record(status game.Status, score int) {
	s.GamesPlayed++
	if status == game.StatusWon {
		s.Wins++
		s.TotalScore += score
		return
	}
	s.Losses++
}

// WinRate returns the percentage of games won, 0 when nothing was played.
func (s Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// AverageScore returns the mean score per game, 0 when nothing was played.
func (s Stats) AverageScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.GamesPlayed)
}

// GameRecord is the archived form of a finished game.
type GameRecord struct {
	ID         string             `json:"id"`
	Number     int                `json:"number"`
	Category   string             `json:"category"`
	Word       string             `json:"word"`
	Status     game.Status        `json:"status"`
	WrongCount int                `json:"wrongCount"`
	Score      int                `json:"score"`
	Forfeited  bool               `json:"forfeited"`
	Guesses    []game.GuessRecord `json:"guesses"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
}

// NewGameRecord archives a finished game under the given sequence number.
func NewGameRecord(g *game.Game, number int, finishedAt time.Time) (GameRecord, error) {
	score, err := g.Score()
	if err != nil {
		return GameRecord{}, err
	}
	return GameRecord{
		ID:         g.ID,
		Number:     number,
		Category:   g.Category,
		Word:       g.Word(),
		Status:     g.Status(),
		WrongCount: g.WrongCount(),
		Score:      score,
		Forfeited:  g.Forfeited(),
		Guesses:    g.History(),
		StartedAt:  g.StartedAt,
		FinishedAt: finishedAt.UTC(),
	}, nil
}

// Store defines the persistence interface for statistics and game history.
// Implementations must be safe for concurrent use.
type Store interface {
	// LoadStats returns the current counters (zero value if none saved yet).
	LoadStats(ctx context.Context) (Stats, error)

	// SaveStats replaces the counters.
	SaveStats(ctx context.Context, s Stats) error

	// ResetStats zeroes the counters. Game history is kept.
	ResetStats(ctx context.Context) error

	// SaveGame archives a finished game.
	SaveGame(ctx context.Context, r GameRecord) error

	// GetGame returns one archived game, or ErrNotFound.
	GetGame(ctx context.Context, id string) (GameRecord, error)

	// RecentGames returns up to limit games, most recently finished first.
	RecentGames(ctx context.Context, limit int) ([]GameRecord, error)

	// NextGameNumber returns one more than the highest archived game number.
	NextGameNumber(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}
