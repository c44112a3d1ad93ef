package handlers

import (
	"errors"
	"log"
	"maps"
	"net/http"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	db      *gorm.DB
	perPage int
	cache   *utils.PageCache
	images  *services.ImageService
}

func NewPostHandler(db *gorm.DB, perPage int, cache *utils.PageCache, images *services.ImageService) *PostHandler {
	return &PostHandler{db: db, perPage: perPage, cache: cache, images: images}
}

func (h *PostHandler) posts() *gorm.DB {
	return h.db.Model(&models.Post{}).Order(models.PostOrder)
}

// Index lists every post, newest first. Pages are cached briefly and the
// cache is dropped whenever a post changes.
func (h *PostHandler) Index(c *gin.Context) {
	cacheKey := "index:page:" + c.Query("page")
	if cached := h.cache.Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "posts/index.html", maps.Clone(data))
			return
		}
	}

	page, err := utils.Paginate[models.Post](h.posts(), c.Query("page"), h.perPage, "Author", "Group")
	if err != nil {
		renderDBError(c, err)
		return
	}
	data := gin.H{"Page": page}
	h.cache.Set(cacheKey, data)
	Render(c, http.StatusOK, "posts/index.html", maps.Clone(data))
}

func (h *PostHandler) GroupPosts(c *gin.Context) {
	var group models.Group
	if err := h.db.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
		renderDBError(c, err)
		return
	}

	page, err := utils.Paginate[models.Post](h.posts().Where("group_id = ?", group.ID), c.Query("page"), h.perPage, "Author", "Group")
	if err != nil {
		renderDBError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/group_list.html", gin.H{"Group": group, "Page": page})
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := h.db.Preload("Author").Where("post_id = ?", post.ID).Order("created ASC, id ASC").Find(&comments).Error; err != nil {
		renderDBError(c, err)
		return
	}
	var postCount int64
	if err := h.db.Model(&models.Post{}).Where("author_id = ?", post.AuthorID).Count(&postCount).Error; err != nil {
		renderDBError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Post":      post,
		"PostCount": postCount,
		"Comments":  comments,
		"Form":      forms.CommentForm{},
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, forms.PostForm{}, forms.Errors{}, nil)
}

// Create stores a new post authored by the current user, whatever the
// request says about authorship.
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form forms.PostForm
	errs := forms.Bind(c, &form)
	groupID := h.resolveGroup(form.Group, errs)
	var image string
	if errs.Valid() {
		image = h.uploadImage(c, errs)
	}
	if !errs.Valid() {
		h.renderForm(c, form, errs, nil)
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := h.db.Create(&post).Error; err != nil {
		h.removeImage(c, image)
		renderDBError(c, err)
		return
	}
	h.cache.Purge()

	c.Redirect(http.StatusFound, profileURL(user.Username))
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}
	form := forms.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = utils.FormatID(*post.GroupID)
	}
	h.renderForm(c, form, forms.Errors{}, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}

	var form forms.PostForm
	errs := forms.Bind(c, &form)
	groupID := h.resolveGroup(form.Group, errs)
	var image string
	if errs.Valid() {
		image = h.uploadImage(c, errs)
	}
	if !errs.Valid() {
		h.renderForm(c, form, errs, post)
		return
	}

	oldImage := post.Image
	if image == "" && c.PostForm("image_clear") != "on" {
		image = oldImage
	}

	err := h.db.Model(post).Updates(map[string]interface{}{
		"text":     form.Text,
		"group_id": groupID,
		"image":    image,
	}).Error
	if err != nil {
		if image != oldImage {
			h.removeImage(c, image)
		}
		renderDBError(c, err)
		return
	}
	if image != oldImage {
		h.removeImage(c, oldImage)
	}
	h.cache.Purge()

	c.Redirect(http.StatusFound, postURL(post.ID))
}

// Delete removes the post with its comments and image, then shows a
// confirmation page.
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		renderDBError(c, err)
		return
	}
	h.removeImage(c, post.Image)
	h.cache.Purge()

	Render(c, http.StatusOK, "posts/delete_post.html", gin.H{"Post": post})
}

// Search matches the term against post text, author names and group titles.
// An empty term goes back to the index without querying. The term is used
// verbatim, surrounding whitespace included.
func (h *PostHandler) Search(c *gin.Context) {
	term := c.Query("search")
	if term == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	page, err := utils.Paginate[models.Post](services.SearchPosts(h.db, term), c.Query("page"), h.perPage, "Author", "Group")
	if err != nil {
		renderDBError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/search_results.html", gin.H{"Page": page, "Search": term})
}

func (h *PostHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := idParam(c, "post_id")
	if !ok {
		return nil, false
	}
	var post models.Post
	if err := h.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		renderDBError(c, err)
		return nil, false
	}
	return &post, true
}

// loadOwnPost sends everyone but the author back to the post page.
func (h *PostHandler) loadOwnPost(c *gin.Context) (*models.Post, bool) {
	post, ok := h.loadPost(c)
	if !ok {
		return nil, false
	}
	if post.AuthorID != middleware.CurrentUser(c).ID {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return nil, false
	}
	return post, true
}

func (h *PostHandler) renderForm(c *gin.Context, form forms.PostForm, errs forms.Errors, post *models.Post) {
	var groups []models.Group
	if err := h.db.Order(models.GroupOrder).Find(&groups).Error; err != nil {
		renderDBError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": post != nil,
		"Post":   post,
	})
}

func (h *PostHandler) resolveGroup(raw string, errs forms.Errors) *uint {
	if raw == "" || errs.Has("group") {
		return nil
	}
	var group models.Group
	id, ok := utils.ParseID(raw)
	if !ok || h.db.Select("id").First(&group, id).Error != nil {
		errs.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		return nil
	}
	return &group.ID
}

// uploadImage stores the optional "image" file and returns its storage path.
func (h *PostHandler) uploadImage(c *gin.Context, errs forms.Errors) string {
	header, err := c.FormFile("image")
	if err != nil {
		return ""
	}
	file, err := header.Open()
	if err != nil {
		errs.Add("image", services.ErrInvalidImage.Error())
		return ""
	}
	defer file.Close()

	path, err := h.images.Save(c.Request.Context(), file)
	if errors.Is(err, services.ErrInvalidImage) {
		errs.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		return ""
	}
	if errors.Is(err, services.ErrImageTooLarge) {
		errs.Add("image", "Upload a smaller image. Its dimensions are too large.")
		return ""
	}
	if err != nil {
		log.Printf("Failed to save image: %v", err)
		errs.Add("image", "The image could not be saved, please try again.")
		return ""
	}
	return path
}

func (h *PostHandler) removeImage(c *gin.Context, path string) {
	if err := h.images.Delete(c.Request.Context(), path); err != nil {
		log.Printf("Failed to delete image %s: %v", path, err)
	}
}
