package services

import (
	"regexp"
	"strings"
	"yatube/internal/db"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// SearchPattern turns the user's term into a regular expression. Terms that
// do not compile are matched literally. Whitespace is kept.
func SearchPattern(term string) string {
	if _, err := regexp.Compile(term); err != nil {
		return regexp.QuoteMeta(term)
	}
	return term
}

// SearchPosts selects, newest first, every post whose text, author username,
// first name, last name, full name or group title matches term
// case-insensitively. Posts without a group never match on the group title.
func SearchPosts(conn *gorm.DB, term string) *gorm.DB {
	pattern := SearchPattern(term)
	columns := []string{
		"posts.text",
		"users.username",
		"users.first_name",
		"users.last_name",
		db.Concat(conn, "users.first_name", "' '", "users.last_name"),
	}

	var conds []string
	var value string
	for _, col := range columns {
		var cond string
		cond, value = db.RegexpMatch(conn, col, "pattern", pattern)
		conds = append(conds, cond)
	}
	groupCond, _ := db.RegexpMatch(conn, "COALESCE(post_groups.title, '')", "pattern", pattern)
	conds = append(conds, "(post_groups.id IS NOT NULL AND "+groupCond+")")

	matching := conn.Table("posts").
		Select("posts.id").
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN post_groups ON post_groups.id = posts.group_id").
		Where(strings.Join(conds, " OR "), map[string]any{"pattern": value})

	return conn.Model(&models.Post{}).Where("id IN (?)", matching).Order(models.PostOrder)
}
