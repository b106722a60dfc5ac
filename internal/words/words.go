// internal/words/words.go
//
// Categorized word database for the game.
//
// Responsibilities:
//   - Load one word list per category from a directory or the embedded defaults.
//   - Maintain the "All" pool (union of categories) and a word → category index.
//   - Supply random and date-deterministic words through the Source interface.
//
// Word Lists:
//   - One <category>.txt per category; the category name is the title-cased stem,
//     with underscores read as spaces.
//   - One word per line, lowercase a–z; blank lines and "#" comments are skipped.
//   - Entries with other characters are dropped with a warning.
//
// Environment variables (read by internal/config, passed to Load):
//   HANGMAN_WORDS_DIR=/path/to/categories

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/daily"
)

// All selects a word from every category.
const All = "All"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmpty           = errors.New("no words available")
)

// Source supplies one secret word for a category (or All) and reports the
// category the word actually belongs to.
type Source interface {
	Word(category string) (word, actualCategory string, err error)
}

// Catalog is an in-memory Source loaded from category files.
type Catalog struct {
	byCategory map[string][]string
	names      []string          // sorted category names, All excluded
	all        []string          // sorted unique words across categories
	owner      map[string]string // word → first category containing it
}

// Load reads category lists from dir, or the embedded defaults when dir is empty.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		return LoadFS(assets.Words())
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("words dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("words dir %s: not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.txt file at the root of fsys as a category.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	c := &Catalog{
		byCategory: make(map[string][]string),
		owner:      make(map[string]string),
	}
	for _, name := range files {
		list, err := readWordFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		category := categoryName(name)
		if len(list) == 0 {
			log.Warn().Str("file", name).Msg("empty word list skipped")
			continue
		}
		c.byCategory[category] = list
		c.names = append(c.names, category)
		log.Debug().Str("category", category).Int("words", len(list)).Msg("loaded word list")
	}
	sort.Strings(c.names)

	for _, category := range c.names {
		for _, w := range c.byCategory[category] {
			if _, ok := c.owner[w]; !ok {
				c.owner[w] = category
				c.all = append(c.all, w)
			}
		}
	}
	sort.Strings(c.all)

	if len(c.all) == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// readWordFile loads one word per line, lowercased and trimmed,
// keeping only a–z words and dropping duplicates.
func readWordFile(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if !isAlpha(w) {
			log.Warn().Str("file", name).Str("entry", w).Msg("dropping entry with non-letters")
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}

// categoryName turns "animals.txt" into "Animals" and "board_games.txt"
// into "Board Games".
func categoryName(file string) string {
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
	return cases.Title(language.English).String(strings.ReplaceAll(stem, "_", " "))
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Categories returns the sorted category names, excluding All.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.names...)
}

// Count returns the number of distinct words across all categories.
func (c *Catalog) Count() int { return len(c.all) }

// Lookup resolves a category name case-insensitively. All is accepted.
func (c *Catalog) Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, All) {
		return All, true
	}
	for _, n := range c.names {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Word returns a cryptographically random word from category, or from every
// category when category is All.
func (c *Catalog) Word(category string) (string, string, error) {
	name, ok := c.Lookup(category)
	if !ok {
		return "", "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownCategory, category, strings.Join(c.names, ", "))
	}
	if name == All {
		w := c.all[randomIndex(len(c.all))]
		return w, c.owner[w], nil
	}
	list := c.byCategory[name]
	return list[randomIndex(len(list))], name, nil
}

// Daily returns the word of the day for t from the All pool.
func (c *Catalog) Daily(t time.Time, salt string) (string, string, error) {
	w, err := daily.Pick(c.all, t, salt)
	if errors.Is(err, daily.ErrEmptyPool) {
		return "", "", ErrEmpty
	}
	if err != nil {
		return "", "", err
	}
	return w, c.owner[w], nil
}

// randomIndex returns a uniform index in [0, n).
func randomIndex(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
