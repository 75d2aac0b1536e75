package main

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func migrateDatabase(dsn string) error {
	migrator, err := migrate.New("file://resources/migrations", "sqlite3://"+dsn)
	if err != nil {
		return err
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Print("info: database schema already up to date")
			return nil
		}

		return err
	}

	log.Print("info: database schema upgraded")

	srcErr, dbErr := migrator.Close()
	if srcErr != nil {
		return srcErr
	}

	return dbErr
}
