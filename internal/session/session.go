// internal/session/session.go
//
// Session orchestration for a terminal player.
// Responsibilities:
//   - Category menu (number, name, All, daily) and play-again loop.
//   - Feeding raw input lines to the engine and rendering each result.
//   - Recording finished games: stats, history row and text log.
//
// Notes:
//   - "quit" is handled here, never by the engine: at the menu it ends the
//     session, inside a game it forfeits the word.
//   - End of input or context cancellation forfeits an unfinished game so it
//     is still recorded.

package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/display"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/gamelog"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

const quitCommand = "quit"

// Words is the word database the session needs: a Source plus the menu data.
type Words interface {
	words.Source
	Categories() []string
	Lookup(name string) (string, bool)
	Daily(t time.Time, salt string) (word, category string, err error)
}

// Deps bundles the collaborators of a Session.
type Deps struct {
	In        io.Reader
	Display   *display.Display
	Words     Words
	Store     store.Store
	Logs      *gamelog.Writer // optional
	DailySalt string
	Now       func() time.Time // defaults to time.Now
}

// Session runs games for one player until they quit.
type Session struct {
	deps  Deps
	lines <-chan string
	stats store.Stats
}

// New validates deps and returns a Session.
func New(deps Deps) (*Session, error) {
	switch {
	case deps.In == nil:
		return nil, errors.New("session: input is required")
	case deps.Display == nil:
		return nil, errors.New("session: display is required")
	case deps.Words == nil:
		return nil, errors.New("session: word source is required")
	case deps.Store == nil:
		return nil, errors.New("session: store is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Session{deps: deps}, nil
}

// Stats returns the counters as of the last recorded game.
func (s *Session) Stats() store.Stats { return s.stats }

// Run plays until the player quits, input ends or ctx is cancelled.
// It returns ctx.Err() on cancellation and nil otherwise.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.deps.In, done)
	d := s.deps.Display

	stats, err := s.deps.Store.LoadStats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load stats, starting from zero")
		d.Warn("Warning: could not load statistics: %v", err)
	}
	s.stats = stats

	d.Welcome()
	defer func() {
		d.Notice("\nThanks for playing!")
		d.FinalStats(s.stats)
	}()

	for {
		cats := s.deps.Words.Categories()
		d.CategoryMenu(cats)
		d.Prompt("Choose a category (number or name):")
		choice, ok := s.next(ctx)
		if !ok {
			return ctx.Err()
		}
		if strings.EqualFold(strings.TrimSpace(choice), quitCommand) {
			return nil
		}

		g, err := s.newGame(choice, cats)
		if errors.Is(err, errInvalidChoice) {
			d.Warn("Invalid choice. Please try again.")
			continue
		}
		if err != nil {
			d.Warn("Error starting game: %v", err)
			continue
		}

		more := s.play(ctx, g)
		s.record(ctx, g)
		if !more {
			return ctx.Err()
		}

		d.Prompt("Play another round? (yes/no):")
		again, ok := s.next(ctx)
		if !ok {
			return ctx.Err()
		}
		switch strings.ToLower(strings.TrimSpace(again)) {
		case "y", "yes":
		default:
			return nil
		}
	}
}

// newGame resolves a menu choice and draws a word for it.
func (s *Session) newGame(choice string, cats []string) (*game.Game, error) {
	category, daily, err := parseChoice(choice, cats, s.deps.Words)
	if err != nil {
		return nil, err
	}

	var word, actual string
	if daily {
		word, actual, err = s.deps.Words.Daily(s.deps.Now(), s.deps.DailySalt)
	} else {
		word, actual, err = s.deps.Words.Word(category)
	}
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("draw word")
		return nil, err
	}

	g, err := game.New(word, actual)
	if err != nil {
		log.Error().Err(err).Str("category", actual).Msg("new game")
		return nil, err
	}
	log.Info().Str("game", g.ID).Str("category", actual).Bool("daily", daily).Int("length", len(word)).Msg("game started")
	return g, nil
}

// errInvalidChoice is returned when the menu input matches nothing.
var errInvalidChoice = errors.New("invalid menu choice")

// parseChoice accepts a 1-based number (len+1 means All), a category name,
// "all" or "daily".
func parseChoice(choice string, cats []string, w Words) (category string, daily bool, err error) {
	choice = strings.TrimSpace(choice)
	if strings.EqualFold(choice, "daily") || strings.EqualFold(choice, "d") {
		return "", true, nil
	}
	if n, convErr := strconv.Atoi(choice); convErr == nil {
		switch {
		case n >= 1 && n <= len(cats):
			return cats[n-1], false, nil
		case n == len(cats)+1:
			return words.All, false, nil
		default:
			return "", false, errInvalidChoice
		}
	}
	if name, ok := w.Lookup(choice); ok {
		return name, false, nil
	}
	return "", false, errInvalidChoice
}

// play runs the guess loop. It reports false when input ended or ctx was
// cancelled, in which case the game has been forfeited.
func (s *Session) play(ctx context.Context, g *game.Game) bool {
	d := s.deps.Display
	d.GameIntro(g.Category, len(g.Word()))

	for !g.Status().Terminal() {
		d.State(g.Snapshot())
		d.GuessHelp()
		d.Prompt("Your guess:")

		line, ok := s.next(ctx)
		if !ok {
			_ = g.Forfeit()
			log.Info().Str("game", g.ID).Msg("input closed, game forfeited")
			return false
		}
		if strings.EqualFold(strings.TrimSpace(line), quitCommand) {
			_ = g.Forfeit()
			break
		}

		res, err := g.Guess(line)
		if err != nil {
			log.Debug().Err(err).Str("game", g.ID).Msg("guess rejected")
			d.Rejection(err)
			continue
		}
		log.Debug().Str("game", g.ID).Str("kind", string(res.Kind)).Str("outcome", string(res.Outcome)).
			Int("wrong", g.WrongCount()).Msg("guess")
		d.Feedback(res)
	}

	d.State(g.Snapshot())
	return true
}

// record scores a finished game and hands it to every persistence
// collaborator. Failures are logged and shown, never fatal.
func (s *Session) record(ctx context.Context, g *game.Game) {
	d := s.deps.Display
	// Persistence must still happen when ctx was cancelled mid-game.
	ctx = context.WithoutCancel(ctx)

	score, err := g.Score()
	if err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("score")
		return
	}
	d.GameOver(g.Word(), g.Status(), g.Forfeited(), score)

	s.stats.Record(g.Status(), score)
	if err := s.deps.Store.SaveStats(ctx, s.stats); err != nil {
		log.Error().Err(err).Msg("save stats")
		d.Warn("Warning: could not save statistics: %v", err)
	}
	d.Stats(s.stats)

	number := s.nextNumber(ctx)
	rec, err := store.NewGameRecord(g, number, s.deps.Now())
	if err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("archive game")
		return
	}
	if err := s.deps.Store.SaveGame(ctx, rec); err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("save game")
		d.Warn("Warning: could not save game history: %v", err)
	}
	if s.deps.Logs != nil {
		path, err := s.deps.Logs.Write(rec, s.stats)
		if err != nil {
			log.Error().Err(err).Str("game", g.ID).Msg("write game log")
			d.Warn("Warning: could not save log: %v", err)
		} else {
			d.LogSaved(path)
		}
	}
	log.Info().Str("game", g.ID).Int("number", number).Str("status", string(g.Status())).
		Int("score", score).Bool("forfeited", g.Forfeited()).Msg("game finished")
}

// nextNumber picks a game number unused by both the store and the log directory.
func (s *Session) nextNumber(ctx context.Context) int {
	n, err := s.deps.Store.NextGameNumber(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("next game number from store")
		n = 1
	}
	if s.deps.Logs != nil {
		if m, err := s.deps.Logs.NextNumber(); err != nil {
			log.Warn().Err(err).Msg("next game number from logs")
		} else if m > n {
			n = m
		}
	}
	return n
}

// next returns the next input line, or false when input ended or ctx is done.
func (s *Session) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		return line, ok
	}
}

// readLines reads r on its own goroutine so a blocked read never holds up
// cancellation. Lines have no length limit. The channel is closed at end of
// input; the goroutine exits once done is closed, even with input left unread.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				select {
				case ch <- strings.TrimRight(line, "\r\n"):
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Warn().Err(err).Msg("read input")
				}
				return
			}
		}
	}()
	return ch
}
