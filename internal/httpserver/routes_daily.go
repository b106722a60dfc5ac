// internal/httpserver/routes_daily.go
//
// HTTP route for the word of the day.
//   - GET /daily → today's date key, category and word length
//
// The word itself is never exposed; clients only learn what the terminal
// shows before the first guess.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
)

type dailyRes struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Length   int    `json:"length"`
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

// handleDaily describes today's puzzle without revealing it.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.opts.Now()
	word, category, err := s.opts.Words.Daily(now, s.opts.DailySalt)
	if err != nil {
		log.Error().Err(err).Msg("daily word")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{Date: daily.DateKey(now), Category: category, Length: len(word)})
}
