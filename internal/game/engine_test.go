package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGame is a helper that fails the test if the word is rejected.
func newGame(t *testing.T, word string) *Game {
	t.Helper()
	g, err := New(word, "Test")
	require.NoError(t, err)
	return g
}

// play applies guesses that are expected to be accepted.
func play(t *testing.T, g *Game, guesses ...string) {
	t.Helper()
	for i, s := range guesses {
		if _, err := g.Guess(s); err != nil {
			t.Fatalf("guess %d (%q) failed: %v", i, s, err)
		}
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := newGame(t, "python")
	assert.Equal(t, StatusInProgress, g.Status())
	assert.Equal(t, 0, g.WrongCount())
	assert.Empty(t, g.Guessed())
	assert.Empty(t, g.History())
	assert.Equal(t, "_ _ _ _ _ _", g.Pattern())
	assert.NotEmpty(t, g.ID)
}

func TestNewRejectsInvalidWord(t *testing.T) {
	for _, w := range []string{"", "Apple", "two words", "caf3"} {
		_, err := New(w, "Test")
		assert.ErrorIs(t, err, ErrInvalidWord, "word %q", w)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		inputLen int
		wordLen  int
		want     GuessKind
	}{
		{"single letter", 1, 6, KindLetter},
		{"single letter one-letter word", 1, 1, KindLetter},
		{"equal length is a word", 6, 6, KindWord},
		{"shorter is letters", 5, 6, KindLetters},
		{"longer is letters", 8, 6, KindLetters},
		{"two letters vs two-letter word", 2, 2, KindWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.inputLen, tc.wordLen))
		})
	}
}

func TestGuessNormalizesInput(t *testing.T) {
	g := newGame(t, "apple")
	res, err := g.Guess("  P \n")
	require.NoError(t, err)
	assert.Equal(t, "p", res.Input)
	assert.Equal(t, KindLetter, res.Kind)
	assert.Equal(t, OutcomeCorrect, res.Outcome)
	assert.Equal(t, 2, res.Hits)
}

func TestGuessRejectsInvalidInput(t *testing.T) {
	g := newGame(t, "apple")
	for _, s := range []string{"", "   ", "a1", "ap-le", "é", "a b"} {
		_, err := g.Guess(s)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", s)
	}
	assert.Equal(t, 0, g.WrongCount())
	assert.Empty(t, g.Guessed())
	assert.Empty(t, g.History())
	assert.Equal(t, StatusInProgress, g.Status())
}

func TestSingleLetterWrong(t *testing.T) {
	g := newGame(t, "apple")
	res, err := g.Guess("z")
	require.NoError(t, err)
	assert.Equal(t, OutcomeWrong, res.Outcome)
	assert.Equal(t, "z", res.Wrong)
	assert.Equal(t, 1, g.WrongCount())
	assert.Equal(t, "z", g.WrongLetters())
}

func TestRepeatLetterIsIdempotent(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "p", "z")
	before := g.Snapshot()
	history := len(g.History())

	for _, s := range []string{"p", "z", "P"} {
		res, err := g.Guess(s)
		require.NoError(t, err)
		assert.Equal(t, OutcomeRepeat, res.Outcome)
	}
	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, "p", g.CorrectLetters())
	assert.Len(t, g.History(), history)
}

func TestMultiLetterCountsEachNewWrongLetter(t *testing.T) {
	g := newGame(t, "apple")
	res, err := g.Guess("xyz")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, OutcomeWrong, res.Outcome)
	assert.Equal(t, "xyz", res.Wrong)
	assert.Equal(t, 3, g.WrongCount())
	assert.Equal(t, StatusInProgress, g.Status())
}

func TestMultiLetterCollapsesDuplicatesAndSkipsGuessed(t *testing.T) {
	g := newGame(t, "banana")
	play(t, g, "x")

	res, err := g.Guess("xxqqn")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, "x", res.Repeated)
	assert.Equal(t, "q", res.Wrong)
	assert.Equal(t, "n", res.Correct)
	assert.Equal(t, OutcomeCorrect, res.Outcome)
	assert.Equal(t, 2, g.WrongCount())
}

func TestMultiLetterAllRepeatedIsNoop(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "p", "l")
	before := g.Snapshot()

	res, err := g.Guess("lp")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRepeat, res.Outcome)
	assert.Equal(t, before, g.Snapshot())
	assert.Len(t, g.History(), 2)
}

func TestMultiLetterCanWin(t *testing.T) {
	g := newGame(t, "apple")
	res, err := g.Guess("pal")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, res.Status)

	res, err = g.Guess("ez")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, res.Status)
	assert.Equal(t, 1, g.WrongCount())
}

func TestMultiLetterWinCheckedBeforeLoss(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "q", "w", "r", "t", "y")
	require.Equal(t, 5, g.WrongCount())

	// Reveals every letter and adds a sixth wrong letter in the same call.
	res, err := g.Guess("aplezz")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, 6, g.WrongCount())
}

func TestMultiLetterWrongCountCapped(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "q", "w", "r", "t")

	res, err := g.Guess("xyzvbn")
	require.NoError(t, err)
	assert.Equal(t, "xyzvbn", res.Wrong)
	assert.Equal(t, MaxWrong, g.WrongCount())
	assert.Equal(t, StatusLost, g.Status())
	assert.Equal(t, "qwrtxyzvbn", g.Guessed())
}

func TestFullWordCorrectWins(t *testing.T) {
	g := newGame(t, "python")
	play(t, g, "a", "b", "c", "d", "e")
	require.Equal(t, 5, g.WrongCount())

	res, err := g.Guess("PYTHON")
	require.NoError(t, err)
	assert.Equal(t, KindWord, res.Kind)
	assert.Equal(t, OutcomeWin, res.Outcome)
	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, 5, g.WrongCount())
	assert.Equal(t, "p y t h o n", g.Pattern())
}

func TestFullWordWrongCostsOne(t *testing.T) {
	g := newGame(t, "python")
	res, err := g.Guess("pythno")
	require.NoError(t, err)
	assert.Equal(t, KindWord, res.Kind)
	assert.Equal(t, OutcomeWrongWord, res.Outcome)
	assert.Equal(t, 1, g.WrongCount())
	// A full-word miss does not mark letters as guessed.
	assert.Empty(t, g.Guessed())
	assert.Equal(t, StatusInProgress, g.Status())
}

func TestFullWordTieBreak(t *testing.T) {
	// "zzzzz" is five letters against a five-letter word, so it is a single
	// wrong word guess and not five letter checks.
	g := newGame(t, "apple")
	res, err := g.Guess("zzzzz")
	require.NoError(t, err)
	assert.Equal(t, KindWord, res.Kind)
	assert.Equal(t, 1, g.WrongCount())
}

func TestShorterSequenceChecksEachLetter(t *testing.T) {
	g := newGame(t, "python")
	res, err := g.Guess("pytho")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, "pytho", res.Correct)
	assert.Equal(t, "p y t h o _", g.Pattern())
	assert.Equal(t, 0, g.WrongCount())
}

func TestLossAfterSixWrongLetters(t *testing.T) {
	orders := [][]string{
		{"a", "b", "c", "d", "e", "f"},
		{"f", "e", "d", "c", "b", "a"},
		{"c", "a", "f", "b", "e", "d"},
	}
	for _, order := range orders {
		g := newGame(t, "python")
		for i, s := range order {
			res, err := g.Guess(s)
			require.NoError(t, err)
			if i < len(order)-1 {
				assert.Equal(t, StatusInProgress, res.Status)
			}
		}
		assert.Equal(t, StatusLost, g.Status())
		assert.Equal(t, MaxWrong, g.WrongCount())
	}
}

func TestAllPermutationsOfCorrectLettersWin(t *testing.T) {
	for _, word := range []string{"apple", "python", "a", "kayak"} {
		letters := distinct(word)
		permute(letters, func(p []byte) {
			g := newGame(t, word)
			for _, c := range p {
				_, err := g.Guess(string(c))
				require.NoError(t, err)
			}
			assert.Equal(t, StatusWon, g.Status(), "word %q order %q", word, p)
			assert.Equal(t, 0, g.WrongCount())
		})
	}
}

func TestTerminalGameRejectsGuesses(t *testing.T) {
	won := newGame(t, "cat")
	play(t, won, "cat")
	lost := newGame(t, "cat")
	play(t, lost, "qwerxyz")

	for _, g := range []*Game{won, lost} {
		before := g.Snapshot()
		history := len(g.History())
		for _, s := range []string{"a", "zz", "cat", "!!"} {
			_, err := g.Guess(s)
			assert.ErrorIs(t, err, ErrGameOver)
		}
		assert.Equal(t, before, g.Snapshot())
		assert.Len(t, g.History(), history)
	}
}

func TestForfeit(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "z")
	require.NoError(t, g.Forfeit())
	assert.Equal(t, StatusLost, g.Status())
	assert.True(t, g.Forfeited())
	assert.Equal(t, 1, g.WrongCount())
	assert.ErrorIs(t, g.Forfeit(), ErrGameOver)

	score, err := g.Score()
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestHistoryRecordsAcceptedGuesses(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, " XyZ", "ple", "p", "aPPle")

	h := g.History()
	require.Len(t, h, 3)
	assert.Equal(t, GuessRecord{Raw: " XyZ", Input: "xyz", Kind: KindLetters, Outcome: OutcomeWrong, Wrong: "xyz"}, h[0])
	assert.Equal(t, GuessRecord{Raw: "ple", Input: "ple", Kind: KindLetters, Outcome: OutcomeCorrect, Correct: "ple"}, h[1])
	assert.Equal(t, GuessRecord{Raw: "aPPle", Input: "apple", Kind: KindWord, Outcome: OutcomeWin, Correct: "a"}, h[2])
	assert.Equal(t, "xyz", h[0].Letters())
}

func TestAppleScenario(t *testing.T) {
	g := newGame(t, "apple")

	res, err := g.Guess("xyz")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, 3, g.WrongCount())
	assert.Equal(t, StatusInProgress, g.Status())

	res, err = g.Guess("ple")
	require.NoError(t, err)
	assert.Equal(t, KindLetters, res.Kind)
	assert.Equal(t, "ple", res.Correct)
	assert.Equal(t, "_ p p l e", g.Pattern())

	res, err = g.Guess("a")
	require.NoError(t, err)
	assert.Equal(t, KindLetter, res.Kind)
	assert.Equal(t, StatusWon, g.Status())

	score, err := g.Score()
	require.NoError(t, err)
	assert.Equal(t, 35, score)
}

func TestSnapshot(t *testing.T) {
	g := newGame(t, "apple")
	play(t, g, "p", "z", "e")
	s := g.Snapshot()
	assert.Equal(t, "Test", s.Category)
	assert.Equal(t, "_ p p _ e", s.Pattern)
	assert.Equal(t, "pze", s.Guessed)
	assert.Equal(t, "z", s.Wrong)
	assert.Equal(t, 1, s.WrongCount)
	assert.Equal(t, MaxWrong, s.MaxWrong)
	assert.Equal(t, 5, s.Remaining)
	assert.Equal(t, StatusInProgress, s.Status)
}

func distinct(w string) []byte {
	var out []byte
	var seen [26]bool
	for i := 0; i < len(w); i++ {
		if !seen[w[i]-'a'] {
			seen[w[i]-'a'] = true
			out = append(out, w[i])
		}
	}
	return out
}

// permute calls fn with every ordering of s (Heap's algorithm).
func permute(s []byte, fn func([]byte)) {
	var gen func(k int)
	gen = func(k int) {
		if k <= 1 {
			fn(append([]byte(nil), s...))
			return
		}
		for i := 0; i < k; i++ {
			gen(k - 1)
			if k%2 == 0 {
				s[i], s[k-1] = s[k-1], s[i]
			} else {
				s[0], s[k-1] = s[k-1], s[0]
			}
		}
	}
	gen(len(s))
}
