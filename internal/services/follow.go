package services

import (
	"errors"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("users cannot follow themselves")

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow makes user follow author. Following twice is not an error: a
// concurrent duplicate insert is caught by the unique index and ignored.
func (s *FollowService) Follow(user, author *models.User) error {
	if user.Username == author.Username || user.ID == author.ID {
		return ErrSelfFollow
	}
	var follow models.Follow
	err := s.db.Where(models.Follow{UserID: user.ID, AuthorID: author.ID}).FirstOrCreate(&follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Unfollow removes the relation if there is one.
func (s *FollowService) Unfollow(user, author *models.User) error {
	return s.db.Where("user_id = ? AND author_id = ?", user.ID, author.ID).Delete(&models.Follow{}).Error
}

func (s *FollowService) IsFollowing(user, author *models.User) (bool, error) {
	if user == nil || author == nil {
		return false, nil
	}
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Count(&count).Error
	return count > 0, err
}

// FeedQuery selects posts by every author user follows, newest first.
func (s *FollowService) FeedQuery(user *models.User) *gorm.DB {
	authors := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", user.ID)
	return s.db.Model(&models.Post{}).Where("author_id IN (?)", authors).Order(models.PostOrder)
}
