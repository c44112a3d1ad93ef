package models

import (
	"time"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;index" json:"created"`
}
