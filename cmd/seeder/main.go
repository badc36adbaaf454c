package main

import (
	"os"

	_ "github.com/lib/pq"

	"github.com/consolenews/newsletter-service/internal/config"
	"github.com/consolenews/newsletter-service/internal/db"
	"github.com/consolenews/newsletter-service/internal/logger"
)

// Seed files run in dependency order; each is idempotent so the seeder can
// be re-run against a populated database.
var seedFiles = []string{
	"seed/categories.sql",
	"seed/templates.sql",
	"seed/newsletters.sql",
	"seed/users.sql",
	"seed/subscriptions.sql",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Server)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}
	defer database.Close()

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.WithError(err).WithField("file", file).Fatal("could not read seed file")
		}

		if _, err := database.Exec(string(content)); err != nil {
			log.WithError(err).WithField("file", file).Fatal("could not execute seed file")
		}
		log.WithField("file", file).Info("seeded")
	}

	log.Info("database seeding completed")
}
