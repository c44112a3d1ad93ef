// Manage tool: schema migrations and group administration.
//   - cmd=migrate applies every pending migration
//   - cmd=rollback reverts the last applied migration
//   - cmd=rollback-to reverts down to (but not including) -id
//   - cmd=creategroup adds a group from -title, -slug and -description
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/migrations"
	"yatube/internal/models"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	var cmd, id, title, slug, description string
	flag.StringVar(&cmd, "cmd", "migrate", "command: migrate | rollback | rollback-to | creategroup")
	flag.StringVar(&id, "id", "", "migration id for rollback-to")
	flag.StringVar(&title, "title", "", "group title")
	flag.StringVar(&slug, "slug", "", "group slug")
	flag.StringVar(&description, "description", "", "group description")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	cfg := config.Load()
	driver, dsn := cfg.Driver()
	conn, err := db.Open(driver, dsn, cfg.DebugMode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(conn, cmd, id, title, slug, description); err != nil {
		log.Fatalf("%s failed: %v", cmd, err)
	}
}

func run(conn *gorm.DB, cmd, id, title, slug, description string) error {
	switch cmd {
	case "migrate":
		return migrations.Migrate(conn)
	case "rollback":
		if err := migrations.New(conn).RollbackLast(); err != nil {
			return err
		}
		log.Println("Rolled back the last migration")
		return nil
	case "rollback-to":
		if id == "" {
			return errors.New("-id is required")
		}
		if err := migrations.New(conn).RollbackTo(id); err != nil {
			return err
		}
		log.Printf("Rolled back to %s", id)
		return nil
	case "creategroup":
		group, err := createGroup(conn, title, slug, description)
		if err != nil {
			return err
		}
		log.Printf("Created group %q (/group/%s/)", group.Title, group.Slug)
		return nil
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

func createGroup(conn *gorm.DB, title, slug, description string) (*models.Group, error) {
	if title == "" || slug == "" {
		return nil, errors.New("-title and -slug are required")
	}
	group := &models.Group{Title: title, Slug: slug, Description: description}
	if err := conn.Create(group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("slug %q is already taken", slug)
		}
		return nil, err
	}
	return group, nil
}
