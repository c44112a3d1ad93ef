package models

// Follow means User follows Author. A user can never follow themselves and
// each (user, author) pair exists at most once.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;index;uniqueIndex:idx_follows_user_author;check:user_not_author,user_id <> author_id" json:"user_id"`
	User     User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID uint `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
