package back

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drafthall/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type LobbyStatus int

const ( // this is stored in DB, don't change values
	LobbyStatusPending  LobbyStatus = 0 // formed, captains not yet selected
	LobbyStatusDrafting LobbyStatus = 1 // captains picking their teams
	LobbyStatusPlaying  LobbyStatus = 2 // both teams full, match running
	LobbyStatusFinished LobbyStatus = 3 // outcome settled
)

func LobbyStatusName(status LobbyStatus) string {
	switch status {
	case LobbyStatusPending:
		return "PENDING"
	case LobbyStatusDrafting:
		return "DRAFTING"
	case LobbyStatusPlaying:
		return "PLAYING"
	case LobbyStatusFinished:
		return "FINISHED"
	default:
		return "invalid"
	}
}

// A Lobby is a single ten player match inside a tournament round. It owns
// one Participation per player and walks a linear state machine, no state is
// ever skipped and there is no way back.
type Lobby struct {
	ID           util.UUIDAsBlob
	CreatedAt    util.TimeAsTimestamp
	UpdatedAt    util.TimeAsTimestamp
	TournamentID util.UUIDAsBlob
	Round        int
	Status       LobbyStatus

	Participations []Participation `db:"-"`
}

func NewLobby(tournamentID util.UUIDAsBlob, round int) Lobby {
	now := util.TimeAsTimestamp(time.Now())
	return Lobby{
		ID:           util.NewUUIDAsBlob(),
		CreatedAt:    now,
		UpdatedAt:    now,
		TournamentID: tournamentID,
		Round:        round,
		Status:       LobbyStatusPending,
	}
}

func (l *Lobby) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Lobby").SetMap(squirrel.Eq{
		"ID":           l.ID,
		"CreatedAt":    l.CreatedAt,
		"UpdatedAt":    l.UpdatedAt,
		"TournamentID": l.TournamentID,
		"Round":        l.Round,
		"Status":       l.Status,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (l *Lobby) update(tx *sqlx.Tx) error {
	l.UpdatedAt = util.TimeAsTimestamp(time.Now())

	query, args, err := squirrel.Update("Lobby").SetMap(squirrel.Eq{
		"UpdatedAt": l.UpdatedAt,
		"Status":    l.Status,
	}).Where("Lobby.ID = ?", l.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getLobbyByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Lobby, error) {
	var ret Lobby
	query := `SELECT * FROM Lobby WHERE Lobby.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lobby{}, fmt.Errorf("%w: lobby %s", ErrNotFound, id)
		}
		return Lobby{}, err
	}

	return ret, nil
}

func getLobbiesByTournament(tx *sqlx.Tx, tournamentID util.UUIDAsBlob) ([]Lobby, error) {
	var ret []Lobby
	query := `
        SELECT * FROM Lobby
        WHERE Lobby.TournamentID = ?
        ORDER BY Lobby.Round ASC, Lobby.CreatedAt ASC`

	if err := tx.Select(&ret, query, tournamentID); err != nil {
		return nil, err
	}

	return ret, nil
}

// getMaxRound returns the highest round a tournament has lobbies for, zero
// when no round was formed yet.
func getMaxRound(tx *sqlx.Tx, tournamentID util.UUIDAsBlob) (int, error) {
	var ret int
	query := `SELECT COALESCE(MAX(Lobby.Round), 0) FROM Lobby WHERE Lobby.TournamentID = ?`
	if err := tx.Get(&ret, query, tournamentID); err != nil {
		return 0, err
	}

	return ret, nil
}

func countUnfinishedLobbies(tx *sqlx.Tx, tournamentID util.UUIDAsBlob, round int) (int, error) {
	var ret int
	query := `
        SELECT COUNT(*) FROM Lobby
        WHERE Lobby.TournamentID = ? AND
              Lobby.Round = ? AND
              Lobby.Status != ?`

	if err := tx.Get(&ret, query, tournamentID, round, LobbyStatusFinished); err != nil {
		return 0, err
	}

	return ret, nil
}

func (b *Back) GetLobbyByID(id util.UUIDAsBlob) (Lobby, error) {
	var ret Lobby
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getLobbyByID(tx, id)
		if err != nil {
			return err
		}

		ret.Participations, err = getLobbyParticipations(tx, id)
		return err
	}); err != nil {
		return Lobby{}, err
	}

	return ret, nil
}

func (b *Back) ListLobbiesByTournament(tournamentID util.UUIDAsBlob) ([]Lobby, error) {
	var ret []Lobby
	if err := b.transaction(func(tx *sqlx.Tx) error {
		lobbies, err := getLobbiesByTournament(tx, tournamentID)
		if err != nil {
			return err
		}

		for k := range lobbies {
			lobbies[k].Participations, err = getLobbyParticipations(tx, lobbies[k].ID)
			if err != nil {
				return err
			}
		}

		ret = lobbies
		return nil
	}); err != nil {
		return nil, err
	}

	return ret, nil
}
