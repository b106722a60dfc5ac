// internal/game/engine.go
//
// Core game engine for a single Hangman game.
// Responsibilities:
//   - Create games around a validated secret word.
//   - Normalize and classify raw guesses (letter / letters / word).
//   - Apply the per-kind state transition and record history.
//   - Track state transitions: in progress → won/lost.
//
// Notes:
//   - The engine produces no output and touches no files; callers render a
//     Snapshot and hand History to persistence.
//   - A Game is owned by one session and is not safe for concurrent use.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Game holds the state of a single Hangman game.
type Game struct {
	ID        string    // Unique game identifier (uuid).
	Category  string    // Category the word was drawn from.
	StartedAt time.Time // When the game was created.

	word       string
	guessed    [26]bool
	correct    [26]bool
	order      []byte // guessed letters in insertion order
	wrong      []byte // wrong letters in insertion order
	wrongCount int
	status     Status
	forfeited  bool
	history    []GuessRecord
}

// New constructs a game for word. The word must be non-empty lowercase a–z;
// anything else is a caller bug reported as ErrInvalidWord.
func New(word, category string) (*Game, error) {
	if word == "" || !isAlpha(word) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return &Game{
		ID:        uuid.NewString(),
		Category:  category,
		StartedAt: time.Now().UTC(),
		word:      word,
		status:    StatusInProgress,
	}, nil
}

// Word returns the secret word.
func (g *Game) Word() string { return g.word }

// Status returns the current status.
func (g *Game) Status() Status { return g.status }

// WrongCount returns the number of wrong guesses so far.
func (g *Game) WrongCount() int { return g.wrongCount }

// Forfeited reports whether the game was lost by quitting.
func (g *Game) Forfeited() bool { return g.forfeited }

// History returns a copy of the accepted guesses, oldest first.
func (g *Game) History() []GuessRecord {
	out := make([]GuessRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Guessed returns the guessed letters in the order they were first tried.
func (g *Game) Guessed() string { return string(g.order) }

// CorrectLetters returns the guessed letters that appear in the word, in guess order.
func (g *Game) CorrectLetters() string {
	var b strings.Builder
	for _, c := range g.order {
		if g.correct[idx(c)] {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// WrongLetters returns the guessed letters absent from the word, in guess order.
func (g *Game) WrongLetters() string { return string(g.wrong) }

// Normalize trims and lowercases raw and checks it is a non-empty a–z string.
func Normalize(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrEmptyInput
	}
	if !isAlpha(s) {
		return "", fmt.Errorf("%w: %q contains non-letters", ErrInvalidInput, s)
	}
	return s, nil
}

// Classify maps a normalized guess length and the secret word length to a
// guess kind. A single character is always a letter guess; otherwise equal
// length always means a full-word guess, even if the player meant a sequence.
func Classify(inputLen, wordLen int) GuessKind {
	switch {
	case inputLen == 1:
		return KindLetter
	case inputLen == wordLen:
		return KindWord
	default:
		return KindLetters
	}
}

// Guess applies one raw guess.
//
// Validation rules:
//   - Game must not be finished (ErrGameOver).
//   - Input must be non-empty a–z after trimming and lowercasing (ErrInvalidInput).
//
// Rejected guesses leave the game untouched.
func (g *Game) Guess(raw string) (Result, error) {
	if g.status.Terminal() {
		return Result{Status: g.status}, ErrGameOver
	}
	input, err := Normalize(raw)
	if err != nil {
		return Result{Status: g.status}, err
	}

	kind := Classify(len(input), len(g.word))
	var res Result
	switch kind {
	case KindLetter:
		res = g.guessLetter(input[0])
	case KindWord:
		res = g.guessWord(input)
	default:
		res = g.guessLetters(input)
	}
	res.Input, res.Kind = input, kind

	if res.Outcome != OutcomeRepeat {
		g.history = append(g.history, GuessRecord{
			Raw:     raw,
			Input:   input,
			Kind:    kind,
			Outcome: res.Outcome,
			Correct: res.Correct,
			Wrong:   res.Wrong,
		})
	}

	g.settle()
	res.Status = g.status
	return res, nil
}

// Forfeit ends an in-progress game as lost without counting a wrong guess.
func (g *Game) Forfeit() error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.status = StatusLost
	g.forfeited = true
	return nil
}

// Score returns the score of a finished game.
func (g *Game) Score() (int, error) {
	return Score(len(g.word), g.wrongCount, g.status)
}

// Pattern returns the word with unrevealed letters as underscores, space separated.
func (g *Game) Pattern() string {
	parts := make([]string, len(g.word))
	for i := 0; i < len(g.word); i++ {
		if g.correct[idx(g.word[i])] {
			parts[i] = string(g.word[i])
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// Snapshot returns a copy of the state needed to render the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Category:   g.Category,
		Pattern:    g.Pattern(),
		Guessed:    g.Guessed(),
		Wrong:      g.WrongLetters(),
		WrongCount: g.wrongCount,
		MaxWrong:   MaxWrong,
		Remaining:  MaxWrong - g.wrongCount,
		Status:     g.status,
	}
}

func (g *Game) guessLetter(c byte) Result {
	if g.guessed[idx(c)] {
		return Result{Outcome: OutcomeRepeat, Repeated: string(c)}
	}
	if g.mark(c) {
		return Result{Outcome: OutcomeCorrect, Correct: string(c), Hits: strings.Count(g.word, string(c))}
	}
	return Result{Outcome: OutcomeWrong, Wrong: string(c)}
}

// guessLetters checks each distinct letter of the input on its own.
func (g *Game) guessLetters(input string) Result {
	var correct, wrong, repeated []byte
	var seen [26]bool
	for i := 0; i < len(input); i++ {
		c := input[i]
		if seen[idx(c)] {
			continue
		}
		seen[idx(c)] = true
		if g.guessed[idx(c)] {
			repeated = append(repeated, c)
			continue
		}
		if g.mark(c) {
			correct = append(correct, c)
		} else {
			wrong = append(wrong, c)
		}
	}

	res := Result{Correct: string(correct), Wrong: string(wrong), Repeated: string(repeated)}
	switch {
	case len(correct) > 0:
		res.Outcome = OutcomeCorrect
	case len(wrong) > 0:
		res.Outcome = OutcomeWrong
	default:
		res.Outcome = OutcomeRepeat
	}
	return res
}

// guessWord resolves a full-word guess. A miss costs exactly one wrong guess.
func (g *Game) guessWord(input string) Result {
	if input != g.word {
		g.addWrong()
		return Result{Outcome: OutcomeWrongWord}
	}
	var revealed []byte
	for i := 0; i < len(g.word); i++ {
		c := g.word[i]
		if !g.guessed[idx(c)] {
			g.guessed[idx(c)] = true
			g.order = append(g.order, c)
			revealed = append(revealed, c)
		}
		g.correct[idx(c)] = true
	}
	g.status = StatusWon
	return Result{Outcome: OutcomeWin, Correct: string(revealed)}
}

// mark records c as guessed and reports whether it is in the word.
// A letter absent from the word costs one wrong guess.
func (g *Game) mark(c byte) bool {
	g.guessed[idx(c)] = true
	g.order = append(g.order, c)
	if strings.IndexByte(g.word, c) >= 0 {
		g.correct[idx(c)] = true
		return true
	}
	g.wrong = append(g.wrong, c)
	g.addWrong()
	return false
}

// addWrong increments the wrong count, capped at MaxWrong.
func (g *Game) addWrong() {
	if g.wrongCount < MaxWrong {
		g.wrongCount++
	}
}

// settle re-evaluates terminal conditions: win first, then loss.
func (g *Game) settle() {
	if g.status.Terminal() {
		return
	}
	if g.solved() {
		g.status = StatusWon
		return
	}
	if g.wrongCount >= MaxWrong {
		g.status = StatusLost
	}
}

// solved reports whether every letter of the word has been revealed.
func (g *Game) solved() bool {
	for i := 0; i < len(g.word); i++ {
		if !g.correct[idx(g.word[i])] {
			return false
		}
	}
	return true
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func idx(c byte) int { return int(c - 'a') }

// isAlpha reports whether s consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
