package web

import (
	"net/http"
	"strconv"
	"time"

	"drafthall/internal/back"
	"drafthall/internal/util"

	"github.com/google/uuid"
)

func toBlob(id uuid.UUID) util.UUIDAsBlob {
	return util.UUIDAsBlob(id)
}

func (s *Server) generateLobbies(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Round int `json:"round"`
	}
	if r.ContentLength > 0 && !s.decode(w, r, &payload) {
		return
	}

	lobbies, err := s.back.GenerateLobbies(id, payload.Round)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusCreated, lobbies)
}

func (s *Server) getTournamentLobbies(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	lobbies, err := s.back.ListLobbiesByTournament(id)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobbies)
}

func (s *Server) getLobby(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	lobby, err := s.back.GetLobbyByID(id)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobby)
}

// waitLobby long-polls a lobby until it reaches the wanted status (at
// least), re-reading at a fixed interval. A timeout is not an error, it
// returns 204 and the client polls again.
func (s *Server) waitLobby(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	wanted, err := strconv.Atoi(r.URL.Query().Get("status"))
	if err != nil {
		s.response(w, http.StatusBadRequest, map[string]string{"error": "malformed status"})
		return
	}

	timeout := time.After(10 * time.Second)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for {
		lobby, err := s.back.GetLobbyByID(id)
		if err != nil {
			s.coreError(w, err)
			return
		}

		if int(lobby.Status) >= wanted {
			s.response(w, http.StatusOK, lobby)
			return
		}

		select {
		case <-tick.C:
		case <-timeout:
			w.WriteHeader(http.StatusNoContent)
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) startDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	lobby, err := s.back.StartDraft(id)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobby)
}

func (s *Server) draftPick(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	var payload struct {
		PlayerID uuid.UUID `json:"player_id"`
		Team     int       `json:"team"`
	}
	if !s.decode(w, r, &payload) {
		return
	}

	lobby, err := s.back.DraftPick(id, toBlob(payload.PlayerID), back.Team(payload.Team))
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobby)
}

func (s *Server) startPlaying(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	lobby, err := s.back.StartPlaying(id)
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobby)
}

func (s *Server) finishLobby(w http.ResponseWriter, r *http.Request) {
	id, ok := s.urlID(w, r)
	if !ok {
		return
	}

	var payload struct {
		WinningTeam int `json:"winning_team"`
	}
	if !s.decode(w, r, &payload) {
		return
	}

	lobby, err := s.back.FinishLobby(id, back.Team(payload.WinningTeam))
	if err != nil {
		s.coreError(w, err)
		return
	}

	s.response(w, http.StatusOK, lobby)
}
