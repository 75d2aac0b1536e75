package back

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"drafthall/internal/util"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// StartDraft moves a pending lobby into its drafting phase. The two highest
// MMR participants become the captains and immediately occupy the first slot
// of team 1 and team 2, they are never drafted themselves.
func (b *Back) StartDraft(lobbyID util.UUIDAsBlob) (Lobby, error) {
	var ret Lobby

	if err := b.transaction(func(tx *sqlx.Tx) error {
		lobby, err := getLobbyByID(tx, lobbyID)
		if err != nil {
			return err
		}

		if lobby.Status != LobbyStatusPending {
			return fmt.Errorf(
				"%w: lobby %s is %s, drafting requires PENDING",
				ErrInvalidState, lobby.ID, LobbyStatusName(lobby.Status),
			)
		}

		participations, err := getLobbyParticipations(tx, lobbyID)
		if err != nil {
			return err
		}

		if len(participations) != LobbySize {
			return fmt.Errorf(
				"%w: lobby %s has %d participants, expected %d",
				ErrMalformedLobby, lobby.ID, len(participations), LobbySize,
			)
		}

		// Stable order: ties keep the player ID ordering of the loader.
		sort.SliceStable(participations, func(i, j int) bool {
			return participations[i].Player.MMR > participations[j].Player.MMR
		})

		for i, team := range []Team{Team1, Team2} {
			participations[i].Captain = true
			participations[i].Team = null.IntFrom(int64(team))
			if err := participations[i].update(tx); err != nil {
				return err
			}
		}

		lobby.Status = LobbyStatusDrafting
		if err := lobby.update(tx); err != nil {
			return err
		}

		lobby.Participations = participations
		ret = lobby
		return nil
	}); err != nil {
		return Lobby{}, err
	}

	return ret, nil
}

// DraftPick assigns a lobby player to a team. When the last unassigned
// player gets a team the lobby starts playing right away, within the same
// transaction, there is no separate action for that.
func (b *Back) DraftPick(lobbyID, playerID util.UUIDAsBlob, team Team) (Lobby, error) {
	if !team.IsValid() {
		return Lobby{}, fmt.Errorf("%w: %d", ErrInvalidTeam, team)
	}

	var ret Lobby

	if err := b.transaction(func(tx *sqlx.Tx) error {
		lobby, err := getLobbyByID(tx, lobbyID)
		if err != nil {
			return err
		}

		if lobby.Status != LobbyStatusDrafting {
			return fmt.Errorf(
				"%w: lobby %s is %s, picking requires DRAFTING",
				ErrInvalidState, lobby.ID, LobbyStatusName(lobby.Status),
			)
		}

		participation, err := getParticipation(tx, lobbyID, playerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: player %s has no seat in lobby %s", ErrNotFound, playerID, lobbyID)
			}
			return err
		}

		if participation.Team.Valid {
			return fmt.Errorf("%w: player %s", ErrAlreadyPicked, playerID)
		}

		participation.Team = null.IntFrom(int64(team))
		participation.PickedAt = util.NewNullTimeAsTimestamp(time.Now())
		if err := participation.update(tx); err != nil {
			return err
		}

		participations, err := getLobbyParticipations(tx, lobbyID)
		if err != nil {
			return err
		}

		if allAssigned(participations) {
			lobby.Status = LobbyStatusPlaying
		}
		if err := lobby.update(tx); err != nil {
			return err
		}

		lobby.Participations = participations
		ret = lobby
		return nil
	}); err != nil {
		return Lobby{}, err
	}

	return ret, nil
}

// StartPlaying is the explicit DRAFTING→PLAYING transition for callers that
// bypassed the pick-completion shortcut of DraftPick.
func (b *Back) StartPlaying(lobbyID util.UUIDAsBlob) (Lobby, error) {
	var ret Lobby

	if err := b.transaction(func(tx *sqlx.Tx) error {
		lobby, err := getLobbyByID(tx, lobbyID)
		if err != nil {
			return err
		}

		if lobby.Status != LobbyStatusDrafting {
			return fmt.Errorf(
				"%w: lobby %s is %s, playing requires DRAFTING",
				ErrInvalidState, lobby.ID, LobbyStatusName(lobby.Status),
			)
		}

		participations, err := getLobbyParticipations(tx, lobbyID)
		if err != nil {
			return err
		}

		if !allAssigned(participations) {
			return fmt.Errorf(
				"%w: lobby %s still has undrafted players",
				ErrInvalidState, lobby.ID,
			)
		}

		lobby.Status = LobbyStatusPlaying
		if err := lobby.update(tx); err != nil {
			return err
		}

		lobby.Participations = participations
		ret = lobby
		return nil
	}); err != nil {
		return Lobby{}, err
	}

	return ret, nil
}
