package back

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"drafthall/internal/util"

	"github.com/jmoiron/sqlx"
)

// GenerateLobbies groups every eligible player of a tournament into new
// lobbies for the given round. A zero round means "the next round". Players
// that don't fill a complete lobby are pushed to the front of the next
// formation pass instead.
func (b *Back) GenerateLobbies(tournamentID util.UUIDAsBlob, round int) ([]Lobby, error) {
	var (
		tournament Tournament
		lobbies    []Lobby
	)

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		tournament, err = getTournamentByID(tx, tournamentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: tournament %s", ErrNotFound, tournamentID)
			}
			return err
		}

		players, err := getEligiblePlayers(tx, tournamentID)
		if err != nil {
			return err
		}

		if len(players) < LobbySize {
			return fmt.Errorf(
				"%w: %d eligible, %d required",
				ErrInsufficientPlayers, len(players), LobbySize,
			)
		}

		round, err = ensureNextRound(tx, tournamentID, round)
		if err != nil {
			return err
		}

		b.orderByFormationPriority(players)

		lobbies, err = createLobbiesForRound(tx, tournament.ID, round, players)
		return err
	}); err != nil {
		if errors.Is(err, ErrInsufficientPlayers) {
			// The rollback of the failed pass must not take this down with it,
			// hence the separate best-effort transaction.
			b.setTournamentStatus(tournamentID, TournamentStatusFinished)
		}

		return nil, err
	}

	b.setTournamentStatus(tournamentID, TournamentStatusRunning)
	b.sendLobbiesCreatedNotification(tournament, lobbies)

	return lobbies, nil
}

// ensureNextRound resolves the round to generate and enforces the round
// gate: a new round can only be the next consecutive one, and only once
// every lobby of the previous round has been settled.
func ensureNextRound(tx *sqlx.Tx, tournamentID util.UUIDAsBlob, round int) (int, error) {
	maxRound, err := getMaxRound(tx, tournamentID)
	if err != nil {
		return 0, err
	}

	next := maxRound + 1
	if round == 0 {
		round = next
	}
	if round != next {
		return 0, util.ErrPublic(fmt.Sprintf(
			"round %d is not the next round of this tournament (expected %d)",
			round, next,
		))
	}

	if maxRound > 0 {
		unfinished, err := countUnfinishedLobbies(tx, tournamentID, maxRound)
		if err != nil {
			return 0, err
		}
		if unfinished > 0 {
			return 0, fmt.Errorf(
				"%w: round %d has %d of them",
				ErrRoundNotFinished, maxRound, unfinished,
			)
		}
	}

	return round, nil
}

// orderByFormationPriority puts players held back the longest first. Ties
// are broken at random rather than by MMR, a deterministic tie-break would
// starve the same low-priority players run after run.
func (b *Back) orderByFormationPriority(players []Player) {
	b.shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	// The stable sort preserves the random order within equal priority.
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ChillPriority > players[j].ChillPriority
	})
}

func createLobbiesForRound(
	tx *sqlx.Tx,
	tournamentID util.UUIDAsBlob,
	round int,
	players []Player,
) ([]Lobby, error) {
	count := len(players) / LobbySize
	lobbies := make([]Lobby, 0, count)

	for i := 0; i < count; i++ {
		lobby := NewLobby(tournamentID, round)
		if err := lobby.insert(tx); err != nil {
			return nil, err
		}

		for _, player := range players[i*LobbySize : (i+1)*LobbySize] {
			participation := NewParticipation(lobby.ID, player.ID)
			if err := participation.insert(tx); err != nil {
				return nil, err
			}

			participation.Player = player
			lobby.Participations = append(lobby.Participations, participation)
		}

		lobbies = append(lobbies, lobby)
	}

	// Included players start over, leftovers cut the line next pass.
	for _, player := range players[:count*LobbySize] {
		if player.ChillPriority == 0 {
			continue
		}
		if err := setPlayerChillPriority(tx, player.ID, 0); err != nil {
			return nil, err
		}
	}
	for _, player := range players[count*LobbySize:] {
		if err := setPlayerChillPriority(tx, player.ID, player.ChillPriority+1); err != nil {
			return nil, err
		}
	}

	return lobbies, nil
}
