// internal/display/display.go
//
// Terminal rendering for the game.
// Responsibilities:
//   - Banner, category menu and game intro.
//   - Puzzle state from a game.Snapshot (pattern, guessed letters, hearts, gallows).
//   - Per-guess feedback, rejections and end-of-game summary.
//   - Running and final statistics.
//
// The engine never prints; the session passes snapshots and results here.

package display

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

const width = 60

// Display writes game output to an io.Writer.
type Display struct {
	out io.Writer

	title   *color.Color
	good    *color.Color
	bad     *color.Color
	info    *color.Color
	pattern *color.Color
}

// New returns a Display writing to out. When noColor is set, output carries
// no escape sequences.
func New(out io.Writer, noColor bool) *Display {
	d := &Display{
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		info:    color.New(color.FgYellow),
		pattern: color.New(color.FgWhite, color.Bold),
	}
	for _, c := range []*color.Color{d.title, d.good, d.bad, d.info, d.pattern} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return d
}

func (d *Display) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func (d *Display) rule() {
	d.printf("%s\n", strings.Repeat("=", width))
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// Welcome prints the banner and guessing rules.
func (d *Display) Welcome() {
	d.printf("\n")
	d.rule()
	d.printf("%s\n", d.title.Sprint(center("WELCOME TO HANGMAN")))
	d.rule()
	d.printf("\nHow to guess:\n")
	d.printf("   * Single letter: type 'a' to reveal every 'a' in the word\n")
	d.printf("   * Several letters: type 'pple' to check each letter\n")
	d.printf("   * Complete word: type a word of the same length to win or lose a try\n")
	d.printf("\nThe game detects the kind of guess from its length.\n")
	d.rule()
}

// CategoryMenu prints the numbered categories followed by All and Daily.
func (d *Display) CategoryMenu(categories []string) {
	d.printf("\n")
	d.rule()
	d.printf("%s\n", d.title.Sprint(center("CHOOSE A CATEGORY")))
	d.rule()
	for i, c := range categories {
		d.printf("   %d. %s\n", i+1, c)
	}
	d.printf("   %d. All categories (random)\n", len(categories)+1)
	d.printf("   daily. Word of the day\n")
	d.printf("\n   Type 'quit' to exit the game\n")
	d.rule()
}

// Prompt prints a prompt without a trailing newline.
func (d *Display) Prompt(text string) {
	d.printf("\n%s ", text)
}

// Notice prints an informational line.
func (d *Display) Notice(format string, args ...any) {
	d.printf("%s\n", d.info.Sprintf(format, args...))
}

// Warn prints an error line.
func (d *Display) Warn(format string, args ...any) {
	d.printf("%s\n", d.bad.Sprintf(format, args...))
}

// GameIntro announces a new word.
func (d *Display) GameIntro(category string, length int) {
	d.printf("\nNew word selected from '%s' category\n", category)
	d.printf("Word length: %d letters\n", length)
	d.printf("You have %d wrong guesses allowed\n", game.MaxWrong)
}

// State prints the puzzle: revealed pattern, sorted guessed letters,
// remaining attempts and the gallows.
func (d *Display) State(s game.Snapshot) {
	d.printf("\n")
	d.rule()
	d.printf("Word: %s\n", d.pattern.Sprint(strings.ToUpper(s.Pattern)))
	if s.Guessed == "" {
		d.printf("Guessed letters: None yet\n")
	} else {
		letters := strings.Split(s.Guessed, "")
		sort.Strings(letters)
		d.printf("Guessed letters: %s\n", strings.Join(letters, ", "))
	}
	d.printf("Remaining attempts: %d/%d\n", s.Remaining, s.MaxWrong)
	d.printf("   %s%s\n", d.good.Sprint(strings.Repeat("♥ ", s.Remaining)), d.bad.Sprint(strings.Repeat("x ", s.WrongCount)))
	d.rule()
	d.printf("%s\n", Gallows(s.WrongCount))
}

// GuessHelp prints the in-game input hint.
func (d *Display) GuessHelp() {
	d.printf("\nEnter your guess:\n")
	d.printf("   * Single letter (e.g. 'a')\n")
	d.printf("   * Several letters (e.g. 'pple') or the whole word\n")
	d.printf("   * Type 'quit' to give up this word\n")
}

// Feedback reports what an accepted guess did.
func (d *Display) Feedback(r game.Result) {
	switch r.Kind {
	case game.KindLetter:
		switch r.Outcome {
		case game.OutcomeRepeat:
			d.Notice("You already guessed '%s'. Try a different letter.", r.Input)
		case game.OutcomeCorrect:
			d.printf("%s\n", d.good.Sprintf("Correct! '%s' appears %d time(s) in the word.", r.Input, r.Hits))
		default:
			d.Warn("Wrong! '%s' is not in the word.", r.Input)
		}
	case game.KindLetters:
		d.printf("\nChecking letters: %s\n", strings.ToUpper(r.Input))
		if r.Repeated != "" {
			d.Notice("Already guessed: %s", joinLetters(r.Repeated))
		}
		if r.Correct != "" {
			d.printf("%s\n", d.good.Sprintf("Correct letters: %s", joinLetters(r.Correct)))
		}
		if r.Wrong != "" {
			d.Warn("Wrong letters: %s", joinLetters(r.Wrong))
		}
		if r.Outcome == game.OutcomeRepeat && r.Repeated == "" {
			d.Notice("No new information.")
		}
	case game.KindWord:
		d.printf("\nGuessing complete word: %s\n", strings.ToUpper(r.Input))
		if r.Outcome == game.OutcomeWin {
			d.printf("%s\n", d.good.Sprint("Correct! You guessed the word!"))
		} else {
			d.Warn("Wrong! '%s' is not the word.", r.Input)
		}
	}
}

// Rejection explains why the engine refused a guess.
func (d *Display) Rejection(err error) {
	switch {
	case errors.Is(err, game.ErrGameOver):
		d.Warn("This game is already over.")
	case errors.Is(err, game.ErrEmptyInput):
		d.Warn("Empty input. Please enter a guess.")
	case errors.Is(err, game.ErrInvalidInput):
		d.Warn("Invalid input. Please enter only letters.")
	default:
		d.Warn("Guess rejected: %v", err)
	}
}

// GameOver prints the result of a finished game.
func (d *Display) GameOver(word string, status game.Status, forfeited bool, score int) {
	if forfeited {
		d.Notice("\nGame terminated by user.")
	}
	if status == game.StatusWon {
		d.printf("\n%s\n", d.good.Sprintf("YOU WIN! The word was: %s", strings.ToUpper(word)))
	} else {
		d.printf("\n%s\n", d.bad.Sprintf("YOU LOSE! The word was: %s", strings.ToUpper(word)))
	}
	d.printf("Points earned: %d\n", score)
}

// Stats prints the running statistics after a game.
func (d *Display) Stats(s store.Stats) {
	d.printf("\nCurrent Statistics:\n")
	d.printf("   Total score: %d\n", s.TotalScore)
	d.printf("   Games: %d | Wins: %d | Losses: %d", s.GamesPlayed, s.Wins, s.Losses)
	if s.GamesPlayed > 0 {
		d.printf(" | Win rate: %.2f%%\n", s.WinRate())
		d.printf("   Average score: %.2f\n", s.AverageScore())
		return
	}
	d.printf("\n")
}

// FinalStats prints the summary shown when the player leaves.
func (d *Display) FinalStats(s store.Stats) {
	d.printf("\n")
	d.rule()
	d.printf("%s\n", d.title.Sprint(center("FINAL STATISTICS")))
	d.rule()
	d.printf("Games played: %d\n", s.GamesPlayed)
	d.printf("Wins: %d\n", s.Wins)
	d.printf("Losses: %d\n", s.Losses)
	if s.GamesPlayed > 0 {
		d.printf("Win rate: %.2f%%\n", s.WinRate())
		d.printf("Average score per game: %.2f\n", s.AverageScore())
	}
	d.printf("Total score: %d\n", s.TotalScore)
	d.rule()
}

// LogSaved reports where the game log was written.
func (d *Display) LogSaved(path string) {
	d.printf("Game log saved to: %s\n", path)
}

func joinLetters(s string) string {
	return strings.Join(strings.Split(s, ""), ", ")
}
