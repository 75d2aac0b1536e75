package main

import (
	"context"
	"fmt"

	"drafthall/internal/back"
	"drafthall/internal/util"

	"github.com/jmoiron/sqlx"
)

// loadFixtures creates a tournament with twelve players spread over a 100
// point MMR ladder, enough for one full lobby and two leftovers.
func loadFixtures(dsn string) error {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(1)

	tournament := back.NewTournament("Summer Bracket", 3)

	return util.Transaction(context.Background(), db, func(tx *sqlx.Tx) error {
		if err := tournament.Insert(tx); err != nil {
			return err
		}

		for i := 0; i < 12; i++ {
			player := back.NewPlayer(
				tournament.ID,
				fmt.Sprintf("Player %02d", i+1),
				2000-(i*100),
				tournament.StartingLives,
			)
			if err := player.Insert(tx); err != nil {
				return err
			}
		}

		return nil
	})
}
