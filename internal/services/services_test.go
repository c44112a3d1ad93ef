package services

import (
	"path/filepath"
	"testing"
	"yatube/internal/db"
	"yatube/internal/migrations"
	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "yatube.db"), false)
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(conn))
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, username, first, last string) *models.User {
	t.Helper()
	user := &models.User{Username: username, FirstName: first, LastName: last, Password: "x"}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func createPost(t *testing.T, conn *gorm.DB, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, conn.Create(post).Error)
	return post
}
