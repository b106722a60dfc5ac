// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Status: lifecycle of a single game (in progress / won / lost).
//   - GuessKind: classification of a raw guess (letter / letters / word).
//   - Outcome: what a guess did to the puzzle.
//   - GuessRecord, Result, Snapshot: values handed to collaborators.

package game

import (
	"errors"
	"fmt"
)

// MaxWrong is the number of wrong guesses that ends a game.
const MaxWrong = 6

// Status is the lifecycle state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// GuessKind is the classification of a normalized guess.
type GuessKind string

const (
	KindLetter  GuessKind = "letter"  // exactly one letter
	KindLetters GuessKind = "letters" // sequence of letters, each checked on its own
	KindWord    GuessKind = "word"    // same length as the secret word
)

// Outcome describes the effect of an accepted guess.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeWrong     Outcome = "wrong"
	OutcomeRepeat    Outcome = "repeat"
	OutcomeWin       Outcome = "win"
	OutcomeWrongWord Outcome = "wrong_word"
)

// Errors returned by the engine. Rejected operations never mutate the game.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrGameOver        = errors.New("game over")
	ErrScoreInProgress = errors.New("score requested for game in progress")
	ErrInvalidWord     = errors.New("invalid secret word")

	// ErrEmptyInput is the ErrInvalidInput case of a blank guess.
	ErrEmptyInput = fmt.Errorf("%w: empty guess", ErrInvalidInput)
)

// GuessRecord is one entry of a game's history.
type GuessRecord struct {
	Raw     string    `json:"raw"`               // input as typed
	Input   string    `json:"input"`             // normalized input
	Kind    GuessKind `json:"kind"`              // classification
	Outcome Outcome   `json:"outcome"`           // effect on the puzzle
	Correct string    `json:"correct,omitempty"` // letters newly revealed
	Wrong   string    `json:"wrong,omitempty"`   // letters newly found absent
}

// Letters returns every letter this guess affected.
func (r GuessRecord) Letters() string { return r.Correct + r.Wrong }

// Result is returned for every accepted guess.
type Result struct {
	Input    string
	Kind     GuessKind
	Outcome  Outcome
	Correct  string // newly correct letters, in input order
	Wrong    string // newly wrong letters, in input order
	Repeated string // letters that had already been guessed
	Hits     int    // occurrences revealed by a single-letter guess
	Status   Status // status after the guess
}

// Snapshot is a read-only view of a game for rendering.
type Snapshot struct {
	Category   string
	Pattern    string // e.g. "_ p p l e"
	Guessed    string // guessed letters in insertion order
	Wrong      string // wrong letters in insertion order
	WrongCount int
	MaxWrong   int
	Remaining  int
	Status     Status
}
