package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"drafthall/internal/back"
	"drafthall/internal/util"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type Server struct {
	http *http.Server
	back *back.Back
}

func NewServer(back *back.Back, addr string) *Server {
	s := &Server{
		back: back,
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second, // long-poll endpoint needs headroom
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", noContent)

	r.Post("/v1/tournaments", s.createTournament)
	r.Get("/v1/tournaments", s.getTournaments)
	r.Get("/v1/tournament/{id}", s.getTournament)
	r.Post("/v1/tournament/{id}/players", s.registerPlayer)
	r.Post("/v1/tournament/{id}/lobbies", s.generateLobbies)
	r.Get("/v1/tournament/{id}/lobbies", s.getTournamentLobbies)

	r.Get("/v1/lobby/{id}", s.getLobby)
	r.Get("/v1/lobby/{id}/wait", s.waitLobby)
	r.Post("/v1/lobby/{id}/draft", s.startDraft)
	r.Post("/v1/lobby/{id}/pick", s.draftPick)
	r.Post("/v1/lobby/{id}/playing", s.startPlaying)
	r.Post("/v1/lobby/{id}/finish", s.finishLobby)

	return r
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting HTTP server")
	wg.Add(1)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

// coreError maps an engine failure to a status code. Public messages go out
// verbatim, anything else stays in the logs.
func (s *Server) coreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, back.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		s.response(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, util.ErrPublic("")):
		s.response(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.error(w, err, http.StatusInternalServerError)
	}
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	log.Printf("error: %s", err)
	w.WriteHeader(code)
}
