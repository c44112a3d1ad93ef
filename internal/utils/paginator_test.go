package utils

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
	"yatube/internal/db"
	"yatube/internal/migrations"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		count        int64
		wantNumber   int
		wantNumPages int
	}{
		{"missing", "", 23, 1, 3},
		{"first", "1", 23, 1, 3},
		{"last page", "3", 23, 3, 3},
		{"too large", "99", 23, 3, 3},
		{"zero", "0", 23, 1, 3},
		{"negative", "-4", 23, 1, 3},
		{"garbage", "abc", 23, 1, 3},
		{"last keyword", "last", 23, 3, 3},
		{"empty collection", "5", 0, 1, 1},
		{"exact multiple", "2", 20, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, numPages := PageNumber(tt.raw, tt.count, 10)
			assert.Equal(t, tt.wantNumber, number)
			assert.Equal(t, tt.wantNumPages, numPages)
		})
	}
}

func TestPaginate(t *testing.T) {
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "yatube.db"), false)
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(conn))

	author := models.User{Username: "leo", Password: "x"}
	require.NoError(t, conn.Create(&author).Error)
	start := time.Now().Add(-time.Hour)
	for i := 1; i <= 23; i++ {
		post := models.Post{
			Text:     fmt.Sprintf("post %d", i),
			AuthorID: author.ID,
			Created:  start.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(&post).Error)
	}

	query := conn.Model(&models.Post{}).Order(models.PostOrder)

	page, err := Paginate[models.Post](query, "1", 10, "Author")
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())
	assert.Equal(t, 3, page.NumPages)
	assert.Equal(t, int64(23), page.Count)
	assert.Equal(t, "post 23", page.Items[0].Text)
	assert.Equal(t, "leo", page.Items[0].Author.Username)

	page, err = Paginate[models.Post](query, "3", 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())
	assert.Equal(t, 2, page.PreviousPageNumber())
	assert.Equal(t, "post 1", page.Items[2].Text)
	assert.Equal(t, []int{1, 2, 3}, page.PageRange())

	page, err = Paginate[models.Post](conn.Model(&models.Post{}).Where("author_id = ?", 0).Order(models.PostOrder), "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasOtherPages())
}
