package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/mattn/go-sqlite3"

	"gkfreq/internal/config"
	"gkfreq/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()

	cmd := flag.String("op", "", "operation: up, down, version, force")
	steps := flag.Int("steps", 0, "number of steps for up/down (0 = all)")
	dbPath := flag.String("db", cfg.SqlitePath, "path to sqlite settings database")
	flag.Parse()

	if *cmd == "" {
		fmt.Println("Usage: migrate -op=[up|down|version|force] -steps=[n] -db=[path]")
		os.Exit(1)
	}

	db, err := sql.Open("sqlite3", sqlite.DSN(*dbPath))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	m, err := sqlite.NewMigrator(db)
	if err != nil {
		log.Fatal(err)
	}

	switch *cmd {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-(*steps))
		} else {
			err = m.Down()
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", v, dirty)
		return
	case "force":
		if *steps == 0 {
			log.Fatal("please specify version to force")
		}
		err = m.Force(*steps)
	default:
		log.Fatal("unknown command")
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No changes detected.")
		} else {
			log.Fatalf("Migration failed: %v", err)
		}
	} else {
		fmt.Println("Migration success!")
	}
}
