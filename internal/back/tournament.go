package back

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"drafthall/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type TournamentStatus int

const ( // this is stored in DB, don't change values
	TournamentStatusDraft    TournamentStatus = 0 // players can register
	TournamentStatusRunning  TournamentStatus = 1 // at least one round was formed
	TournamentStatusFinished TournamentStatus = 2 // too few players left to fill a lobby
)

type Tournament struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	Status    TournamentStatus

	// StartingLives is the number of lives every player registers with.
	StartingLives int
}

func NewTournament(name string, startingLives int) Tournament {
	return Tournament{
		ID:            util.NewUUIDAsBlob(),
		CreatedAt:     util.TimeAsTimestamp(time.Now()),
		Name:          name,
		Status:        TournamentStatusDraft,
		StartingLives: startingLives,
	}
}

func (t *Tournament) Insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Tournament").SetMap(squirrel.Eq{
		"ID":            t.ID,
		"CreatedAt":     t.CreatedAt,
		"Name":          t.Name,
		"Status":        t.Status,
		"StartingLives": t.StartingLives,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (t *Tournament) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Tournament").SetMap(squirrel.Eq{
		"Name":          t.Name,
		"Status":        t.Status,
		"StartingLives": t.StartingLives,
	}).Where("Tournament.ID = ?", t.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getTournamentByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Tournament, error) {
	var ret Tournament
	query := `SELECT * FROM Tournament WHERE Tournament.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Tournament{}, err
	}

	return ret, nil
}

func getTournaments(tx *sqlx.Tx) ([]Tournament, error) {
	var ret []Tournament
	query := `SELECT * FROM Tournament ORDER BY Tournament.CreatedAt ASC`
	if err := tx.Select(&ret, query); err != nil {
		return nil, err
	}

	return ret, nil
}

func (b *Back) CreateTournament(name string, startingLives int) (Tournament, error) {
	if name == "" {
		return Tournament{}, util.ErrPublic("a tournament must have a name")
	}
	if startingLives <= 0 {
		return Tournament{}, util.ErrPublic("a tournament must grant at least one life per player")
	}

	tournament := NewTournament(name, startingLives)
	if err := b.transaction(tournament.Insert); err != nil {
		return Tournament{}, err
	}

	return tournament, nil
}

func (b *Back) GetTournamentByID(id util.UUIDAsBlob) (Tournament, error) {
	var ret Tournament
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getTournamentByID(tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: tournament %s", ErrNotFound, id)
		}
		return err
	}); err != nil {
		return Tournament{}, err
	}

	return ret, nil
}

func (b *Back) GetTournaments() ([]Tournament, error) {
	var ret []Tournament
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		ret, err = getTournaments(tx)
		return err
	}); err != nil {
		return nil, err
	}

	return ret, nil
}

// setTournamentStatus is a best-effort status flip, a failure here must
// never mask the outcome of the operation that triggered it.
func (b *Back) setTournamentStatus(id util.UUIDAsBlob, status TournamentStatus) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByID(tx, id)
		if err != nil {
			return err
		}

		if tournament.Status == status {
			return nil
		}

		tournament.Status = status
		return tournament.update(tx)
	}); err != nil {
		log.Printf("warning: unable to set tournament %s status to %d: %s", id, status, err)
	}
}
