package back

import (
	"errors"
	"testing"

	"drafthall/internal/util"
)

func TestCreateTournamentValidation(t *testing.T) {
	back := createTestBack(t)

	if _, err := back.CreateTournament("", 3); !errors.Is(err, util.ErrPublic("")) {
		t.Fatalf("expected a public error for an empty name, got %v", err)
	}
	if _, err := back.CreateTournament("No lives", 0); !errors.Is(err, util.ErrPublic("")) {
		t.Fatalf("expected a public error for zero starting lives, got %v", err)
	}

	tournament, err := back.CreateTournament("Winter Bracket", 2)
	if err != nil {
		t.Fatal(err)
	}
	if tournament.Status != TournamentStatusDraft {
		t.Error("a fresh tournament must be a draft")
	}
	if tournament.StartingLives != 2 {
		t.Errorf("expected 2 starting lives, got %d", tournament.StartingLives)
	}

	if _, err := back.GetTournamentByID(util.NewUUIDAsBlob()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterPlayer(t *testing.T) {
	back := createTestBack(t)
	tournament, err := back.CreateTournament("Winter Bracket", 2)
	if err != nil {
		t.Fatal(err)
	}

	player, err := back.RegisterPlayer(tournament.ID, "1234", "Darunia", 1500)
	if err != nil {
		t.Fatal(err)
	}
	if player.Lives != tournament.StartingLives {
		t.Errorf("expected the tournament's starting lives, got %d", player.Lives)
	}
	if player.Status != PlayerStatusActive {
		t.Error("a fresh player must be active")
	}
	if !player.UserID.Valid || player.UserID.String != "1234" {
		t.Error("expected the Discord user ID to be stored")
	}

	if _, err := back.RegisterPlayer(tournament.ID, "", "", 1500); !errors.Is(err, util.ErrPublic("")) {
		t.Fatalf("expected a public error for an empty name, got %v", err)
	}
	if _, err := back.RegisterPlayer(util.NewUUIDAsBlob(), "", "Saria", 1500); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	back.setTournamentStatus(tournament.ID, TournamentStatusFinished)
	if _, err := back.RegisterPlayer(tournament.ID, "", "Impa", 1500); err == nil {
		t.Fatal("expected registrations to be closed on a finished tournament")
	}
}
