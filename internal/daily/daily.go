// Package daily derives the word of the day. Every player sees the same
// puzzle on the same UTC date, and a different salt gives a different sequence.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"math/big"
	"time"
)

// ErrEmptyPool is returned when there is nothing to pick from.
var ErrEmptyPool = errors.New("daily: empty word pool")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Pick returns the word of the day for t from pool. The pool must be in a
// stable order for the result to repeat across runs.
func Pick(pool []string, t time.Time, salt string) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	digest := new(big.Int).SetBytes(mac.Sum(nil))
	i := digest.Mod(digest, big.NewInt(int64(len(pool)))).Int64()
	return pool[i], nil
}
