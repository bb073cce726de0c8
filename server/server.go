// Package server exposes a session over HTTP: play a secret, inspect the
// frequency cache, and read the expvar counters.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/automatic"
)

type Server struct {
	r       *chi.Mux
	session *automatic.Session
}

func New(session *automatic.Session) *Server {
	s := &Server{r: chi.NewRouter(), session: session}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Route("/api", func(r chi.Router) {
		r.Get("/play/{secret}", s.handlePlay)
		r.Get("/cache", s.handleCache)
		r.Get("/corpus", s.handleCorpus)
	})
	s.r.Handle("/debug/vars", expvar.Handler())

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

func (s *Server) Router() chi.Router { return s.r }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "secret")
	res, err := s.session.PlayGame(r.Context(), secret)
	if err != nil {
		status := http.StatusBadRequest
		if automatic.IsFatal(err) || errors.Is(err, context.Canceled) {
			status = http.StatusInternalServerError
		}
		log.Err(err).Str("secret", secret).Msg("play")
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type cacheEntry struct {
	Length  int            `json:"length"`
	Size    int            `json:"size"`
	Letters map[string]int `json:"letters"`
}

func (s *Server) handleCache(w http.ResponseWriter, r *http.Request) {
	c := s.session.Cache()
	out := []cacheEntry{}
	for _, l := range c.Lengths() {
		e, ok := c.Get(l)
		if !ok {
			continue
		}
		letters := make(map[string]int, e.Tally.Size())
		for b, n := range e.Tally.Map() {
			letters[string(b)] = n
		}
		out = append(out, cacheEntry{Length: l, Size: e.Size, Letters: letters})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	c := s.session.Corpus()
	groups := map[int]int{}
	for _, l := range c.Lengths() {
		groups[l] = c.GroupSize(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    c.Name(),
		"words":   c.Len(),
		"lengths": groups,
	})
}
