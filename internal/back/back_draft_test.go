package back

import (
	"errors"
	"testing"

	"drafthall/internal/util"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

func generateSingleLobby(t *testing.T, back *Back, tournament Tournament) Lobby {
	t.Helper()

	lobbies, err := back.GenerateLobbies(tournament.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lobbies) != 1 {
		t.Fatalf("expected a single lobby, got %d", len(lobbies))
	}

	return lobbies[0]
}

func TestStartDraftSelectsHighestMMRCaptains(t *testing.T) {
	back := createTestBack(t)
	tournament := createTestTournament(t, back, 3, 10)
	lobby := generateSingleLobby(t, back, tournament)

	lobby, err := back.StartDraft(lobby.ID)
	if err != nil {
		t.Fatal(err)
	}

	if lobby.Status != LobbyStatusDrafting {
		t.Fatalf("expected DRAFTING, got %s", LobbyStatusName(lobby.Status))
	}

	captains := map[Team]Player{}
	for _, participation := range lobby.Participations {
		if !participation.Captain {
			continue
		}
		if !participation.Team.Valid {
			t.Fatal("captain without a team")
		}
		captains[Team(participation.Team.Int64)] = participation.Player
	}

	if len(captains) != 2 {
		t.Fatalf("expected one captain per team, got %d", len(captains))
	}
	// The ladder tops out at 2000 with 100 point steps, the two best seeds
	// must lead the teams.
	if captains[Team1].MMR != 2000 || captains[Team2].MMR != 1900 {
		t.Errorf(
			"expected captains at 2000 and 1900 MMR, got %d and %d",
			captains[Team1].MMR, captains[Team2].MMR,
		)
	}

	for _, participation := range lobby.Participations {
		if !participation.Captain && participation.Team.Valid {
			t.Error("non-captains must be undrafted right after StartDraft")
		}
	}

	if _, err := back.StartDraft(lobby.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on a second StartDraft, got %v", err)
	}
}

func TestStartDraftRequiresExactLobbySize(t *testing.T) {
	back := createTestBack(t)
	tournament := createTestTournament(t, back, 3, 9)

	var lobby Lobby
	if err := back.transaction(func(tx *sqlx.Tx) error {
		lobby = NewLobby(tournament.ID, 1)
		if err := lobby.insert(tx); err != nil {
			return err
		}

		players, err := getEligiblePlayers(tx, tournament.ID)
		if err != nil {
			return err
		}
		for _, player := range players {
			participation := NewParticipation(lobby.ID, player.ID)
			if err := participation.insert(tx); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := back.StartDraft(lobby.ID); !errors.Is(err, ErrMalformedLobby) {
		t.Fatalf("expected ErrMalformedLobby, got %v", err)
	}
}

func TestDraftPick(t *testing.T) {
	back := createTestBack(t)
	tournament := createTestTournament(t, back, 3, 10)
	lobby := generateSingleLobby(t, back, tournament)

	if _, err := back.DraftPick(lobby.ID, lobby.Participations[0].PlayerID, Team1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState before the draft starts, got %v", err)
	}

	lobby, err := back.StartDraft(lobby.ID)
	if err != nil {
		t.Fatal(err)
	}

	var undrafted []util.UUIDAsBlob
	for _, participation := range lobby.Participations {
		if !participation.Team.Valid {
			undrafted = append(undrafted, participation.PlayerID)
		}
	}
	if len(undrafted) != 8 {
		t.Fatalf("expected 8 undrafted players, got %d", len(undrafted))
	}

	if _, err := back.DraftPick(lobby.ID, undrafted[0], Team(3)); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam, got %v", err)
	}
	if _, err := back.DraftPick(lobby.ID, util.NewUUIDAsBlob(), Team1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a player outside the lobby, got %v", err)
	}

	lobby, err = back.DraftPick(lobby.ID, undrafted[0], Team1)
	if err != nil {
		t.Fatal(err)
	}
	for _, participation := range lobby.Participations {
		if participation.PlayerID != undrafted[0] {
			continue
		}
		if !participation.OnTeam(Team1) || !participation.PickedAt.Valid {
			t.Error("expected the pick to set team and pick time")
		}
	}

	if _, err := back.DraftPick(lobby.ID, undrafted[0], Team2); !errors.Is(err, ErrAlreadyPicked) {
		t.Fatalf("expected ErrAlreadyPicked, got %v", err)
	}
}

func TestDraftPickAutoStartsPlaying(t *testing.T) {
	back := createTestBack(t)
	tournament := createTestTournament(t, back, 3, 10)
	lobby := generateSingleLobby(t, back, tournament)

	lobby, err := back.StartDraft(lobby.ID)
	if err != nil {
		t.Fatal(err)
	}

	var undrafted []util.UUIDAsBlob
	for _, participation := range lobby.Participations {
		if !participation.Team.Valid {
			undrafted = append(undrafted, participation.PlayerID)
		}
	}

	team := Team1
	for i, playerID := range undrafted {
		lobby, err = back.DraftPick(lobby.ID, playerID, team)
		if err != nil {
			t.Fatal(err)
		}

		if i < len(undrafted)-1 {
			if lobby.Status != LobbyStatusDrafting {
				t.Fatalf("lobby must stay DRAFTING until the last pick, got %s", LobbyStatusName(lobby.Status))
			}
		} else if lobby.Status != LobbyStatusPlaying {
			t.Fatalf("expected the last pick to start playing, got %s", LobbyStatusName(lobby.Status))
		}

		if team == Team1 {
			team = Team2
		} else {
			team = Team1
		}
	}

	var team1, team2 int
	for _, participation := range lobby.Participations {
		switch {
		case participation.OnTeam(Team1):
			team1++
		case participation.OnTeam(Team2):
			team2++
		}
	}
	if team1 != 5 || team2 != 5 {
		t.Errorf("expected 5v5, got %dv%d", team1, team2)
	}

	if _, err := back.DraftPick(lobby.ID, undrafted[0], Team1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState once PLAYING, got %v", err)
	}
}

func TestStartPlayingRequiresFullAssignment(t *testing.T) {
	back := createTestBack(t)
	tournament := createTestTournament(t, back, 3, 10)
	lobby := generateSingleLobby(t, back, tournament)

	if _, err := back.StartPlaying(lobby.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on a PENDING lobby, got %v", err)
	}

	lobby, err := back.StartDraft(lobby.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := back.StartPlaying(lobby.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState with undrafted players, got %v", err)
	}

	// Seat everyone directly, skipping DraftPick and its PLAYING shortcut.
	if err := back.transaction(func(tx *sqlx.Tx) error {
		participations, err := getLobbyParticipations(tx, lobby.ID)
		if err != nil {
			return err
		}

		team := Team1
		for k := range participations {
			if participations[k].Team.Valid {
				continue
			}

			participations[k].Team = null.IntFrom(int64(team))
			if err := participations[k].update(tx); err != nil {
				return err
			}

			if team == Team1 {
				team = Team2
			} else {
				team = Team1
			}
		}

		return nil
	}); err != nil {
		t.Fatal(err)
	}

	lobby, err = back.StartPlaying(lobby.ID)
	if err != nil {
		t.Fatal(err)
	}
	if lobby.Status != LobbyStatusPlaying {
		t.Fatalf("expected PLAYING, got %s", LobbyStatusName(lobby.Status))
	}
}
