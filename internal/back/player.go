package back

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drafthall/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

type PlayerStatus int

const ( // this is stored in DB, don't change values
	PlayerStatusActive     PlayerStatus = 0
	PlayerStatusEliminated PlayerStatus = 1 // no lives left
)

// A Player is a competitor registered to a single Tournament. It keeps its
// standing (lives, elimination, chill-zone priority) across rounds.
type Player struct {
	ID           util.UUIDAsBlob
	CreatedAt    util.TimeAsTimestamp
	TournamentID util.UUIDAsBlob
	UserID       null.String
	Name         string
	MMR          int
	Lives        int
	Status       PlayerStatus

	// ChillPriority counts how many formation passes in a row left this
	// player out, higher values go to the front of the next pass.
	ChillPriority int
}

func NewPlayer(tournamentID util.UUIDAsBlob, name string, mmr, lives int) Player {
	return Player{
		ID:           util.NewUUIDAsBlob(),
		CreatedAt:    util.TimeAsTimestamp(time.Now()),
		TournamentID: tournamentID,
		Name:         name,
		MMR:          mmr,
		Lives:        lives,
		Status:       PlayerStatusActive,
	}
}

func (p *Player) Insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":            p.ID,
		"CreatedAt":     p.CreatedAt,
		"TournamentID":  p.TournamentID,
		"UserID":        p.UserID,
		"Name":          p.Name,
		"MMR":           p.MMR,
		"Lives":         p.Lives,
		"Status":        p.Status,
		"ChillPriority": p.ChillPriority,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"UserID":        p.UserID,
		"Name":          p.Name,
		"MMR":           p.MMR,
		"Lives":         p.Lives,
		"Status":        p.Status,
		"ChillPriority": p.ChillPriority,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

// getEligiblePlayers returns every player that can enter a new lobby, in no
// particular order.
func getEligiblePlayers(tx *sqlx.Tx, tournamentID util.UUIDAsBlob) ([]Player, error) {
	var ret []Player
	query := `
        SELECT * FROM Player
        WHERE Player.TournamentID = ? AND
              Player.Status = ? AND
              Player.Lives >= 1`

	if err := tx.Select(&ret, query, tournamentID, PlayerStatusActive); err != nil {
		return nil, err
	}

	return ret, nil
}

func getPlayersByIDs(tx *sqlx.Tx, ids []util.UUIDAsBlob) ([]Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM Player WHERE Player.ID IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var ret []Player
	if err := tx.Select(&ret, tx.Rebind(query), args...); err != nil {
		return nil, err
	}

	return ret, nil
}

func setPlayerChillPriority(tx *sqlx.Tx, id util.UUIDAsBlob, priority int) error {
	query, args, err := squirrel.Update("Player").
		Set("ChillPriority", priority).
		Where("Player.ID = ?", id).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

// RegisterPlayer adds a competitor to a tournament with the tournament's
// starting amount of lives.
func (b *Back) RegisterPlayer(
	tournamentID util.UUIDAsBlob,
	userID, name string,
	mmr int,
) (Player, error) {
	if name == "" {
		return Player{}, util.ErrPublic("a player must have a name")
	}
	if mmr < 0 {
		return Player{}, util.ErrPublic("a player MMR can't be negative")
	}

	var player Player
	if err := b.transaction(func(tx *sqlx.Tx) error {
		tournament, err := getTournamentByID(tx, tournamentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: tournament %s", ErrNotFound, tournamentID)
			}
			return err
		}

		if tournament.Status == TournamentStatusFinished {
			return util.ErrPublic("this tournament has finished, registrations are closed")
		}

		player = NewPlayer(tournamentID, name, mmr, tournament.StartingLives)
		player.UserID = null.NewString(userID, userID != "")

		return player.Insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}
