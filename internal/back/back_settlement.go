package back

import (
	"fmt"

	"drafthall/internal/util"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// FinishLobby settles a match: winners keep their lives, losers lose one and
// are eliminated when none remain. Finishing an already finished lobby is a
// no-op returning the settled state, callers may deliver the result more
// than once.
func (b *Back) FinishLobby(lobbyID util.UUIDAsBlob, winningTeam Team) (Lobby, error) {
	if !winningTeam.IsValid() {
		return Lobby{}, fmt.Errorf("%w: %d", ErrInvalidTeam, winningTeam)
	}

	var ret Lobby

	if err := b.transaction(func(tx *sqlx.Tx) error {
		lobby, err := getLobbyByID(tx, lobbyID)
		if err != nil {
			return err
		}

		participations, err := getLobbyParticipations(tx, lobbyID)
		if err != nil {
			return err
		}

		if lobby.Status == LobbyStatusFinished {
			lobby.Participations = participations
			ret = lobby
			return nil
		}

		if lobby.Status != LobbyStatusPlaying {
			return fmt.Errorf(
				"%w: lobby %s is %s, settling requires PLAYING",
				ErrInvalidState, lobby.ID, LobbyStatusName(lobby.Status),
			)
		}

		for k := range participations {
			participation := &participations[k]

			if participation.OnTeam(winningTeam) {
				participation.Result = null.IntFrom(int64(ParticipationResultWin))
			} else {
				participation.Result = null.IntFrom(int64(ParticipationResultLoss))
				loseLife(&participation.Player)
				if err := participation.Player.update(tx); err != nil {
					return err
				}
			}

			if err := participation.update(tx); err != nil {
				return err
			}
		}

		lobby.Status = LobbyStatusFinished
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

// loseLife decrements with a floor of zero, a player is eliminated exactly
// when the last life goes.
func loseLife(player *Player) {
	if player.Lives > 0 {
		player.Lives--
	}

	if player.Lives == 0 {
		player.Status = PlayerStatusEliminated
	}
}
