package models

import (
	"time"
)

// TitleChars is how many characters of the text make up a post's title.
const TitleChars = 30

type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;index" json:"created"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image    string    `gorm:"size:255" json:"image"` // storage path, empty when there is no image

	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
}

// Title returns the first TitleChars characters of the text.
func (p Post) Title() string {
	runes := []rune(p.Text)
	if len(runes) > TitleChars {
		return string(runes[:TitleChars])
	}
	return p.Text
}

// PostOrder is the default ordering of posts: newest first.
const PostOrder = "created DESC, id DESC"
