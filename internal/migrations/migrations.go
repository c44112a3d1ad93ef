// Package migrations holds the ordered, reversible schema history. Each step
// works on its own snapshot of the tables so that replaying old steps does
// not depend on the current models.
package migrations

import (
	"log"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

type userV1 struct {
	ID         uint   `gorm:"primaryKey"`
	Username   string `gorm:"size:150;uniqueIndex;not null"`
	FirstName  string `gorm:"size:150"`
	LastName   string `gorm:"size:150"`
	Email      string `gorm:"size:254"`
	Password   string `gorm:"size:128;not null"`
	DateJoined time.Time
}

func (userV1) TableName() string { return "users" }

type groupV1 struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (groupV1) TableName() string { return "post_groups" }

type postV1 struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null;index"`
	AuthorID uint      `gorm:"not null;index"`
	Author   userV1    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID  *uint     `gorm:"index"`
	Group    *groupV1  `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image    string    `gorm:"size:255"`
}

func (postV1) TableName() string { return "posts" }

type commentV1 struct {
	ID       uint      `gorm:"primaryKey"`
	PostID   uint      `gorm:"not null;index"`
	Post     postV1    `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID uint      `gorm:"not null;index"`
	Author   userV1    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"not null;index"`
}

func (commentV1) TableName() string { return "comments" }

type followV1 struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;index;check:user_not_author,user_id <> author_id"`
	User     userV1 `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID uint   `gorm:"not null;index"`
	Author   userV1 `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (followV1) TableName() string { return "follows" }

// groupV2 adds the creation time; nullable so existing rows can be backfilled.
type groupV2 struct {
	groupV1
	Created *time.Time `gorm:"index"`
}

func (groupV2) TableName() string { return "post_groups" }

type followV3 struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:idx_follows_user_author"`
	AuthorID uint `gorm:"uniqueIndex:idx_follows_user_author"`
}

func (followV3) TableName() string { return "follows" }

const (
	InitialID      = "0001_initial"
	GroupCreatedID = "0002_group_created"
	FollowUniqueID = "0003_follow_unique"
)

// All returns the migration steps in the order they must be applied.
func All() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: InitialID,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&userV1{}, &groupV1{}, &postV1{}, &commentV1{}, &followV1{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&followV1{}, &commentV1{}, &postV1{}, &groupV1{}, &userV1{})
			},
		},
		{
			ID: GroupCreatedID,
			Migrate: func(tx *gorm.DB) error {
				m := tx.Migrator()
				if err := m.AddColumn(&groupV2{}, "Created"); err != nil {
					return err
				}
				if err := tx.Model(&groupV2{}).Where("created IS NULL").Update("created", time.Now()).Error; err != nil {
					return err
				}
				return m.CreateIndex(&groupV2{}, "Created")
			},
			Rollback: func(tx *gorm.DB) error {
				// sqlite drops the column by rebuilding post_groups
				return withoutForeignKeys(tx, func(tx *gorm.DB) error {
					m := tx.Migrator()
					if err := m.DropIndex(&groupV2{}, "Created"); err != nil {
						return err
					}
					return m.DropColumn(&groupV2{}, "Created")
				})
			},
		},
		{
			ID: FollowUniqueID,
			Migrate: func(tx *gorm.DB) error {
				// keep the oldest row of every duplicated pair
				err := tx.Exec(`DELETE FROM follows WHERE id NOT IN (
					SELECT id FROM (SELECT MIN(id) AS id FROM follows GROUP BY user_id, author_id) AS keep
				)`).Error
				if err != nil {
					return err
				}
				return tx.Migrator().CreateIndex(&followV3{}, "idx_follows_user_author")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&followV3{}, "idx_follows_user_author")
			},
		},
	}
}

// withoutForeignKeys runs fn on a single connection with SQLite foreign key
// enforcement switched off, so rebuilding a parent table does not fire
// ON DELETE actions on its children. Other dialects run fn as is.
func withoutForeignKeys(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db.Dialector.Name() != "sqlite" {
		return fn(db)
	}
	return db.Connection(func(conn *gorm.DB) (err error) {
		if err := conn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
			return err
		}
		defer func() {
			if onErr := conn.Exec("PRAGMA foreign_keys = ON").Error; err == nil {
				err = onErr
			}
		}()
		return fn(conn)
	})
}

func New(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, All())
}

// Migrate applies every pending step.
func Migrate(db *gorm.DB) error {
	if err := New(db).Migrate(); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}
