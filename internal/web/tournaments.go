package web

import (
	"encoding/json"
	"net/http"

	"drafthall/internal/util"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name          string `json:"name"`
		StartingLives int    `json:"starting_lives"`
	}
	if !s.decode(w, r, &payload) {
		return
	}

	if payload.StartingLives == 0 {
		payload.StartingLives = 3
	}

	tournament, err := s.back.CreateTournament(payload.Name, payload.StartingLives)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusCreated, tournament)
}

func (s *Server) getTournaments(w http.ResponseWriter, _ *http.Request) {
	tournaments, err := s.back.GetTournaments()
	if err != nil {
		s.error(w, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, tournaments)
}

func (s *Server) getTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	tournament, err := s.back.GetTournamentByID(id)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, tournament)
}

func (s *Server) registerPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	var payload struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
		MMR    int    `json:"mmr"`
	}
	if !s.decode(w, r, &payload) {
		return
	}

	player, err := s.back.RegisterPlayer(id, payload.UserID, payload.Name, payload.MMR)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusCreated, player)
}

// urlID parses the {id} URL parameter, responding with a 400 itself when the
// value is not an UUID.
func (s *Server) urlID(w http.ResponseWriter, r *http.Request) (util.UUIDAsBlob, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.response(w, http.StatusBadRequest, map[string]string{"error": "malformed UUID"})
		return util.UUIDAsBlob{}, false
	}

	return util.UUIDAsBlob(id), true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.response(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return false
	}

	return true
}
