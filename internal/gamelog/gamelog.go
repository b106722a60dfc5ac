// Package gamelog writes the human-readable per-game record,
// <dir>/game<N>/log.txt, next to the statistics database.
package gamelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

const rule = "============================================================"

// Writer writes game logs under Dir.
type Writer struct {
	Dir string
}

// New returns a Writer rooted at dir.
func New(dir string) *Writer { return &Writer{Dir: dir} }

// NextNumber returns one more than the highest game<N> directory under Dir,
// or 1 when there is none.
func (w *Writer) NextNumber() (int, error) {
	entries, err := os.ReadDir(w.Dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "game") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(e.Name(), "game"))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// Write creates <Dir>/game<N>/log.txt for r, with totals being the stats
// after r was recorded. It returns the file path.
func (w *Writer) Write(r store.GameRecord, totals store.Stats) (string, error) {
	dir := filepath.Join(w.Dir, fmt.Sprintf("game%d", r.Number))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, "log.txt")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(f, r, totals); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

// Render writes the log text for r to out.
func Render(out io.Writer, r store.GameRecord, totals store.Stats) error {
	ew := &errWriter{w: out}
	ew.printf("Game %d Log\n", r.Number)
	ew.printf("%s\n", rule)
	ew.printf("Category: %s\n", r.Category)
	ew.printf("Word: %s\n", r.Word)
	ew.printf("Word Length: %d\n\n", len(r.Word))

	ew.printf("Guesses (in order):\n")
	if len(r.Guesses) == 0 {
		ew.printf("None\n")
	}
	for i, g := range r.Guesses {
		ew.printf("%d. %s -> %s\n", i+1, label(g), verdict(g.Outcome))
	}

	ew.printf("\nWrong Guesses List: %s\n", wrongList(r.Guesses))
	ew.printf("Wrong Guesses Count: %d\n", r.WrongCount)
	ew.printf("Remaining Attempts at End: %d\n", game.MaxWrong-r.WrongCount)
	ew.printf("Result: %s\n", result(r))
	ew.printf("Points Earned: %d\n", r.Score)
	ew.printf("Total Score (after this round): %d\n\n", totals.TotalScore)

	ew.printf("Games Played: %d\n", totals.GamesPlayed)
	ew.printf("Wins: %d\n", totals.Wins)
	ew.printf("Losses: %d\n", totals.Losses)
	if totals.GamesPlayed > 0 {
		ew.printf("Win Rate: %.2f%%\n", totals.WinRate())
	}
	ew.printf("\nDate & Time: %s\n", r.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	ew.printf("%s\n", rule)
	return ew.err
}

// label prefixes multi-letter and word guesses so they read apart from letters.
func label(g game.GuessRecord) string {
	switch g.Kind {
	case game.KindLetters:
		return "MULTI:" + g.Input
	case game.KindWord:
		return "WORD:" + g.Input
	default:
		return g.Input
	}
}

func verdict(o game.Outcome) string {
	if o == game.OutcomeCorrect || o == game.OutcomeWin {
		return "Correct"
	}
	return "Wrong"
}

// wrongList lists wrong letters and wrong word guesses in the order made.
func wrongList(guesses []game.GuessRecord) string {
	var out []string
	for _, g := range guesses {
		switch g.Outcome {
		case game.OutcomeWrongWord:
			out = append(out, "WORD:"+g.Input)
		default:
			for _, c := range g.Wrong {
				out = append(out, string(c))
			}
		}
	}
	if len(out) == 0 {
		return "None"
	}
	return strings.Join(out, ", ")
}

func result(r store.GameRecord) string {
	switch {
	case r.Status == game.StatusWon:
		return "Win"
	case r.Forfeited:
		return "Loss (quit)"
	default:
		return "Loss"
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
