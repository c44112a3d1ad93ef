package handlers

import (
	"errors"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db      *gorm.DB
	perPage int
	follows *services.FollowService
}

func NewProfileHandler(db *gorm.DB, perPage int, follows *services.FollowService) *ProfileHandler {
	return &ProfileHandler{db: db, perPage: perPage, follows: follows}
}

func (h *ProfileHandler) loadAuthor(c *gin.Context) (*models.User, bool) {
	var author models.User
	if err := h.db.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		renderDBError(c, err)
		return nil, false
	}
	return &author, true
}

// Profile lists an author's posts with their total and whether the visitor
// follows them.
func (h *ProfileHandler) Profile(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}

	query := h.db.Model(&models.Post{}).Where("author_id = ?", author.ID).Order(models.PostOrder)
	page, err := utils.Paginate[models.Post](query, c.Query("page"), h.perPage, "Author", "Group")
	if err != nil {
		renderDBError(c, err)
		return
	}
	following, err := h.follows.IsFollowing(middleware.CurrentUser(c), author)
	if err != nil {
		renderDBError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Author":    author,
		"Page":      page,
		"PostCount": page.Count,
		"Following": following,
	})
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	err := h.follows.Follow(middleware.CurrentUser(c), author)
	if err != nil && !errors.Is(err, services.ErrSelfFollow) {
		renderDBError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	author, ok := h.loadAuthor(c)
	if !ok {
		return
	}
	if err := h.follows.Unfollow(middleware.CurrentUser(c), author); err != nil {
		renderDBError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

// FollowIndex is the feed of posts by followed authors.
func (h *ProfileHandler) FollowIndex(c *gin.Context) {
	query := h.follows.FeedQuery(middleware.CurrentUser(c))
	page, err := utils.Paginate[models.Post](query, c.Query("page"), h.perPage, "Author", "Group")
	if err != nil {
		renderDBError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/follow.html", gin.H{"Page": page})
}
