package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type APIHandler struct {
	db     *gorm.DB
	images *services.ImageService
}

func NewAPIHandler(db *gorm.DB, images *services.ImageService) *APIHandler {
	return &APIHandler{db: db, images: images}
}

// PostPayload is the flat JSON form of a post. Related rows appear as ids.
type PostPayload struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  uint      `json:"author"`
	Group   *uint     `json:"group"`
	Image   *string   `json:"image"`
}

func (h *APIHandler) PostDetail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	var post models.Post
	if err := h.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		log.Printf("api post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	payload := PostPayload{
		ID:      post.ID,
		Text:    post.Text,
		Created: post.Created,
		Author:  post.AuthorID,
		Group:   post.GroupID,
	}
	if post.Image != "" {
		url := h.images.URL(post.Image)
		payload.Image = &url
	}
	c.JSON(http.StatusOK, payload)
}
