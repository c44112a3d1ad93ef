package handlers

import (
	"net/http"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// Add comments on a post. Invalid input is dropped and the visitor goes back
// to the post either way.
func (h *CommentHandler) Add(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var post models.Post
	if err := h.db.Select("id").First(&post, postID).Error; err != nil {
		renderDBError(c, err)
		return
	}

	var form forms.CommentForm
	if errs := forms.Bind(c, &form); errs.Valid() {
		comment := models.Comment{
			PostID:   post.ID,
			AuthorID: middleware.CurrentUser(c).ID,
			Text:     form.Text,
		}
		if err := h.db.Create(&comment).Error; err != nil {
			renderDBError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}
	h.renderForm(c, comment, forms.CommentForm{Text: comment.Text}, forms.Errors{})
}

func (h *CommentHandler) Update(c *gin.Context) {
	comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}

	var form forms.CommentForm
	if errs := forms.Bind(c, &form); !errs.Valid() {
		h.renderForm(c, comment, form, errs)
		return
	}
	if err := h.db.Model(comment).Update("text", form.Text).Error; err != nil {
		renderDBError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(comment.PostID))
}

// Delete removes the comment if the current user wrote it; otherwise nothing
// happens. Both end on the post page.
func (h *CommentHandler) Delete(c *gin.Context) {
	comment, ok := h.loadComment(c)
	if !ok {
		return
	}
	if comment.AuthorID == middleware.CurrentUser(c).ID {
		if err := h.db.Delete(comment).Error; err != nil {
			renderDBError(c, err)
			return
		}
	}
	c.Redirect(http.StatusFound, postURL(comment.PostID))
}

// loadComment finds the comment addressed by the URL; it must belong to the
// post in the same URL.
func (h *CommentHandler) loadComment(c *gin.Context) (*models.Comment, bool) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return nil, false
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return nil, false
	}
	var comment models.Comment
	if err := h.db.Where("post_id = ?", postID).First(&comment, commentID).Error; err != nil {
		renderDBError(c, err)
		return nil, false
	}
	return &comment, true
}

func (h *CommentHandler) loadOwnComment(c *gin.Context) (*models.Comment, bool) {
	comment, ok := h.loadComment(c)
	if !ok {
		return nil, false
	}
	if comment.AuthorID != middleware.CurrentUser(c).ID {
		c.Redirect(http.StatusFound, postURL(comment.PostID))
		return nil, false
	}
	return comment, true
}

func (h *CommentHandler) renderForm(c *gin.Context, comment *models.Comment, form forms.CommentForm, errs forms.Errors) {
	Render(c, http.StatusOK, "posts/edit_comment.html", gin.H{
		"Comment": comment,
		"Form":    form,
		"Errors":  errs,
	})
}
