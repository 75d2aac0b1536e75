package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"drafthall/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		log.Fatalf("error: unable to load configuration: %s", err)
	}

	switch flag.Arg(0) { // nolint, TODO
	case "version":
		fmt.Fprintf(os.Stdout, "Drafthall %s\n", Version)
	case "serve":
		if err := serve(conf); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "migrate":
		if err := migrateDatabase(conf.SQLDSN); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "dev:fixtures":
		if err := loadFixtures(conf.SQLDSN); err != nil {
			log.Fatalf("error: %s", err)
		}
	case "help":
		fmt.Fprint(os.Stdout, help())
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}
}

func help() string {
	return fmt.Sprintf(`
Drafthall is a backend for running bracket-style elimination tournaments
with captain-drafted 5v5 lobbies.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    dev:fixtures create default data for quick testing during development
    help         display this help
    migrate      upgrade the database schema to the latest version
    serve        start the HTTP API and the Discord notifier
    version      display the current version
`,
		os.Args[0],
	)
}
