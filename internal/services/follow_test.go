package services

import (
	"testing"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService(t *testing.T) {
	conn := openTestDB(t)
	svc := NewFollowService(conn)
	leo := createUser(t, conn, "leo", "Leo", "Tolstoy")
	fyodor := createUser(t, conn, "fyodor", "Fyodor", "Dostoevsky")

	countFollows := func() int64 {
		var n int64
		conn.Model(&models.Follow{}).Count(&n)
		return n
	}

	assert.ErrorIs(t, svc.Follow(leo, leo), ErrSelfFollow)
	assert.Equal(t, int64(0), countFollows())

	require.NoError(t, svc.Follow(leo, fyodor))
	require.NoError(t, svc.Follow(leo, fyodor))
	assert.Equal(t, int64(1), countFollows())

	following, err := svc.IsFollowing(leo, fyodor)
	require.NoError(t, err)
	assert.True(t, following)
	following, err = svc.IsFollowing(fyodor, leo)
	require.NoError(t, err)
	assert.False(t, following)
	following, err = svc.IsFollowing(nil, leo)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, svc.Unfollow(leo, fyodor))
	require.NoError(t, svc.Unfollow(leo, fyodor))
	assert.Equal(t, int64(0), countFollows())
}

func TestFollowService_FeedQuery(t *testing.T) {
	conn := openTestDB(t)
	svc := NewFollowService(conn)
	leo := createUser(t, conn, "leo", "", "")
	fyodor := createUser(t, conn, "fyodor", "", "")
	anton := createUser(t, conn, "anton", "", "")

	createPost(t, conn, fyodor, "by fyodor", nil)
	createPost(t, conn, anton, "by anton", nil)
	require.NoError(t, svc.Follow(leo, fyodor))

	var posts []models.Post
	require.NoError(t, svc.FeedQuery(leo).Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "by fyodor", posts[0].Text)

	posts = nil
	require.NoError(t, svc.FeedQuery(anton).Find(&posts).Error)
	assert.Empty(t, posts)
}
