package back

import (
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"testing"

	"drafthall/internal/util"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func createTestBack(t *testing.T) *Back {
	t.Helper()

	f, err := ioutil.TempFile("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() {
		os.Remove(path)
	})

	migrator, err := migrate.New(
		"file://../../resources/migrations",
		"sqlite3://"+path,
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatal(err)
	}
	migrator.Close()

	back, err := New("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}

	back.SetRandom(rand.New(rand.NewSource(42)))

	return back
}

// createTestTournament registers players on a 100 MMR ladder topping out at
// 2000, every player starting with the given amount of lives.
func createTestTournament(t *testing.T, b *Back, lives, playerCount int) Tournament {
	t.Helper()

	tournament := NewTournament("Test Cup", lives)
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := tournament.Insert(tx); err != nil {
			return err
		}

		for i := 0; i < playerCount; i++ {
			player := NewPlayer(
				tournament.ID,
				fmt.Sprintf("Player %02d", i+1),
				2000-(i*100),
				lives,
			)
			if err := player.Insert(tx); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		t.Fatal(err)
	}

	return tournament
}

func getTestPlayers(t *testing.T, b *Back, tournamentID util.UUIDAsBlob) []Player {
	t.Helper()

	var ret []Player
	if err := b.transaction(func(tx *sqlx.Tx) error {
		query := `SELECT * FROM Player WHERE Player.TournamentID = ? ORDER BY Player.Name ASC`
		return tx.Select(&ret, query, tournamentID)
	}); err != nil {
		t.Fatal(err)
	}

	return ret
}

// draftAll runs a full draft: captains via StartDraft, then the remaining
// eight seats picked alternating between the two teams. Returns the lobby in
// its PLAYING state.
func draftAll(t *testing.T, b *Back, lobbyID util.UUIDAsBlob) Lobby {
	t.Helper()

	lobby, err := b.StartDraft(lobbyID)
	if err != nil {
		t.Fatal(err)
	}

	team := Team1
	for _, participation := range lobby.Participations {
		if participation.Team.Valid {
			continue
		}

		lobby, err = b.DraftPick(lobbyID, participation.PlayerID, team)
		if err != nil {
			t.Fatal(err)
		}

		if team == Team1 {
			team = Team2
		} else {
			team = Team1
		}
	}

	if lobby.Status != LobbyStatusPlaying {
		t.Fatalf("expected lobby to be PLAYING after a full draft, got %s", LobbyStatusName(lobby.Status))
	}

	return lobby
}
