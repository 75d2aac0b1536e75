package back

import (
	"time"

	"drafthall/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

type Team int

const ( // this is stored in DB, don't change values
	Team1 Team = 1
	Team2 Team = 2
)

func (t Team) IsValid() bool {
	return t == Team1 || t == Team2
}

type ParticipationResult int

const ( // this is stored in DB, don't change values
	ParticipationResultLoss ParticipationResult = -1
	ParticipationResultWin  ParticipationResult = 1
)

// A Participation is one player's seat in one lobby. Team, PickedAt, and
// Result stay NULL until the draft and the settlement fill them in; captains
// get their team at draft start without a pick.
type Participation struct {
	LobbyID   util.UUIDAsBlob
	PlayerID  util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Team      null.Int
	Captain   bool
	PickedAt  util.NullTimeAsTimestamp
	Result    null.Int

	Player Player `db:"-"`
}

func NewParticipation(lobbyID, playerID util.UUIDAsBlob) Participation {
	return Participation{
		LobbyID:   lobbyID,
		PlayerID:  playerID,
		CreatedAt: util.TimeAsTimestamp(time.Now()),
	}
}

func (p *Participation) OnTeam(team Team) bool {
	return p.Team.Valid && Team(p.Team.Int64) == team
}

func (p *Participation) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Participation").SetMap(squirrel.Eq{
		"LobbyID":   p.LobbyID,
		"PlayerID":  p.PlayerID,
		"CreatedAt": p.CreatedAt,
		"Team":      p.Team,
		"Captain":   p.Captain,
		"PickedAt":  p.PickedAt,
		"Result":    p.Result,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Participation) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Participation").SetMap(squirrel.Eq{
		"Team":     p.Team,
		"Captain":  p.Captain,
		"PickedAt": p.PickedAt,
		"Result":   p.Result,
	}).Where(squirrel.Eq{
		"Participation.LobbyID":  p.LobbyID,
		"Participation.PlayerID": p.PlayerID,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getParticipation(tx *sqlx.Tx, lobbyID, playerID util.UUIDAsBlob) (Participation, error) {
	var ret Participation
	query := `
        SELECT * FROM Participation
        WHERE Participation.LobbyID = ? AND Participation.PlayerID = ?
        LIMIT 1`

	if err := tx.Get(&ret, query, lobbyID, playerID); err != nil {
		return Participation{}, err
	}

	return ret, nil
}

// getLobbyParticipations returns a lobby's participations with their Player
// populated, in stable player ID order.
func getLobbyParticipations(tx *sqlx.Tx, lobbyID util.UUIDAsBlob) ([]Participation, error) {
	var ret []Participation
	query := `
        SELECT * FROM Participation
        WHERE Participation.LobbyID = ?
        ORDER BY Participation.PlayerID ASC`

	if err := tx.Select(&ret, query, lobbyID); err != nil {
		return nil, err
	}

	if err := attachPlayers(tx, ret); err != nil {
		return nil, err
	}

	return ret, nil
}

func attachPlayers(tx *sqlx.Tx, participations []Participation) error {
	ids := make([]util.UUIDAsBlob, 0, len(participations))
	for k := range participations {
		ids = append(ids, participations[k].PlayerID)
	}

	players, err := getPlayersByIDs(tx, ids)
	if err != nil {
		return err
	}

	byID := make(map[util.UUIDAsBlob]Player, len(players))
	for k := range players {
		byID[players[k].ID] = players[k]
	}

	for k := range participations {
		participations[k].Player = byID[participations[k].PlayerID]
	}

	return nil
}

func allAssigned(participations []Participation) bool {
	for k := range participations {
		if !participations[k].Team.Valid {
			return false
		}
	}

	return true
}
