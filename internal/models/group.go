package models

import (
	"time"
)

// Group is a community posts may belong to. Groups are listed newest first.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Created     time.Time `gorm:"autoCreateTime;index" json:"created"`
}

func (Group) TableName() string {
	return "post_groups"
}

// GroupOrder is the default ordering of groups: newest first.
const GroupOrder = "created DESC, id DESC"
