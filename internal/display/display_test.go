package display

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

func newTestDisplay() (*Display, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, true), &buf
}

func TestGallowsClamps(t *testing.T) {
	assert.Equal(t, gallows[0], Gallows(-2))
	assert.Equal(t, gallows[6], Gallows(9))
	assert.NotContains(t, Gallows(0), "O")
	assert.Contains(t, Gallows(1), "O")
	assert.Contains(t, Gallows(6), `/ \`)
	for i := 1; i < len(gallows); i++ {
		assert.NotEqual(t, gallows[i-1], gallows[i], "stage %d", i)
	}
}

func TestStateRendersSnapshot(t *testing.T) {
	g, err := game.New("apple", "Food")
	require.NoError(t, err)
	for _, s := range []string{"xyz", "ple"} {
		_, err := g.Guess(s)
		require.NoError(t, err)
	}

	d, buf := newTestDisplay()
	d.State(g.Snapshot())
	out := buf.String()

	assert.Contains(t, out, "Word: _ P P L E\n")
	assert.Contains(t, out, "Guessed letters: e, l, p, x, y, z\n")
	assert.Contains(t, out, "Remaining attempts: 3/6\n")
	assert.Contains(t, out, Gallows(3))
	assert.NotContains(t, out, "\x1b[", "no escape codes when color is off")
}

func TestStateNoGuesses(t *testing.T) {
	g, err := game.New("golf", "Sports")
	require.NoError(t, err)
	d, buf := newTestDisplay()
	d.State(g.Snapshot())
	assert.Contains(t, buf.String(), "Guessed letters: None yet\n")
}

func TestFeedback(t *testing.T) {
	cases := []struct {
		name string
		res  game.Result
		want []string
	}{
		{"letter correct", game.Result{Kind: game.KindLetter, Input: "p", Outcome: game.OutcomeCorrect, Hits: 2},
			[]string{"Correct! 'p' appears 2 time(s) in the word."}},
		{"letter wrong", game.Result{Kind: game.KindLetter, Input: "z", Outcome: game.OutcomeWrong},
			[]string{"Wrong! 'z' is not in the word."}},
		{"letter repeat", game.Result{Kind: game.KindLetter, Input: "p", Outcome: game.OutcomeRepeat},
			[]string{"You already guessed 'p'."}},
		{"letters mixed", game.Result{Kind: game.KindLetters, Input: "pxe", Outcome: game.OutcomeCorrect, Correct: "pe", Wrong: "x", Repeated: ""},
			[]string{"Checking letters: PXE", "Correct letters: p, e", "Wrong letters: x"}},
		{"letters repeated", game.Result{Kind: game.KindLetters, Input: "pe", Outcome: game.OutcomeRepeat, Repeated: "pe"},
			[]string{"Already guessed: p, e"}},
		{"word win", game.Result{Kind: game.KindWord, Input: "apple", Outcome: game.OutcomeWin},
			[]string{"Guessing complete word: APPLE", "You guessed the word!"}},
		{"word wrong", game.Result{Kind: game.KindWord, Input: "ample", Outcome: game.OutcomeWrongWord},
			[]string{"Wrong! 'ample' is not the word."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, buf := newTestDisplay()
			d.Feedback(tc.res)
			for _, w := range tc.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestRejection(t *testing.T) {
	cases := map[error]string{
		game.ErrEmptyInput: "Empty input",
		fmt.Errorf("%w: %q contains non-letters", game.ErrInvalidInput, "a1"): "Invalid input",
		game.ErrGameOver: "already over",
	}
	for err, want := range cases {
		d, buf := newTestDisplay()
		d.Rejection(err)
		assert.Contains(t, buf.String(), want)
	}
}

func TestGameOverAndStats(t *testing.T) {
	d, buf := newTestDisplay()
	d.GameOver("apple", game.StatusWon, false, 35)
	d.Stats(store.Stats{GamesPlayed: 2, Wins: 1, Losses: 1, TotalScore: 35})
	out := buf.String()
	assert.Contains(t, out, "YOU WIN! The word was: APPLE")
	assert.Contains(t, out, "Points earned: 35")
	assert.Contains(t, out, "Games: 2 | Wins: 1 | Losses: 1 | Win rate: 50.00%")
	assert.Contains(t, out, "Average score: 17.50")

	d, buf = newTestDisplay()
	d.GameOver("golf", game.StatusLost, true, 0)
	d.Stats(store.Stats{})
	out = buf.String()
	assert.Contains(t, out, "Game terminated by user.")
	assert.Contains(t, out, "YOU LOSE! The word was: GOLF")
	assert.True(t, strings.HasSuffix(out, "Games: 0 | Wins: 0 | Losses: 0\n"))
}

func TestCategoryMenu(t *testing.T) {
	d, buf := newTestDisplay()
	d.CategoryMenu([]string{"Animals", "Food"})
	out := buf.String()
	assert.Contains(t, out, "   1. Animals\n")
	assert.Contains(t, out, "   2. Food\n")
	assert.Contains(t, out, "   3. All categories (random)\n")
	assert.Contains(t, out, "daily")
}

func TestFinalStats(t *testing.T) {
	d, buf := newTestDisplay()
	d.FinalStats(store.Stats{GamesPlayed: 4, Wins: 3, Losses: 1, TotalScore: 100})
	out := buf.String()
	assert.Contains(t, out, "FINAL STATISTICS")
	assert.Contains(t, out, "Win rate: 75.00%")
	assert.Contains(t, out, "Average score per game: 25.00")
	assert.Contains(t, out, "Total score: 100")
}
