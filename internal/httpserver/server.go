// internal/httpserver/server.go
//
// Read-only HTTP view of hangman statistics and game history.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Stats endpoints: /stats, /games, /games/{id}, /categories.
//   - Word-of-the-day metadata: mounted under /daily.
//
// Notes:
//   - Nothing here accepts guesses; play happens in the terminal session.
//   - CORS headers are only sent when an origin is configured.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/store"
)

const (
	defaultGamesLimit = 20
	maxGamesLimit     = 100
)

// Catalog is the part of the word database the view exposes.
type Catalog interface {
	Categories() []string
	Count() int
	Daily(t time.Time, salt string) (word, category string, err error)
}

// Options configures a Server.
type Options struct {
	Store      store.Store
	Words      Catalog
	DailySalt  string
	CORSOrigin string           // empty disables CORS headers
	Now        func() time.Time // defaults to time.Now
}

// Server bundles router and read-only dependencies.
type Server struct {
	r    *chi.Mux
	opts Options
	http *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), opts: opts}
	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	if opts.CORSOrigin != "" {
		s.r.Use(cors(opts.CORSOrigin))
	}

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","/stats","/games","/games/{id}","/categories","/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/stats", s.handleStats)
	s.r.Get("/games", s.handleGames)
	s.r.Get("/games/{id}", s.handleGame)
	s.r.Get("/categories", s.handleCategories)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("stats server listening")
	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows GET requests from a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one debug line per request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	store.Stats
	WinRate      float64 `json:"winRate"`
	AverageScore float64 `json:"averageScore"`
}

// handleStats returns the cumulative counters with derived rates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.opts.Store.LoadStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{Stats: st, WinRate: st.WinRate(), AverageScore: st.AverageScore()})
}

type gamesRes struct {
	Games []store.GameRecord `json:"games"`
}

// handleGames returns recent finished games, newest first.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	limit := defaultGamesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxGamesLimit)
	}
	games, err := s.opts.Store.RecentGames(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if games == nil {
		games = []store.GameRecord{}
	}
	_ = json.NewEncoder(w).Encode(gamesRes{Games: games})
}

// handleGame returns one finished game by id.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.opts.Store.GetGame(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get game")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}

type categoriesRes struct {
	Categories []string `json:"categories"`
	Words      int      `json:"words"`
}

// handleCategories lists the playable categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(categoriesRes{
		Categories: s.opts.Words.Categories(),
		Words:      s.opts.Words.Count(),
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
