package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path
	if _, ok := obj["Errors"]; !ok {
		obj["Errors"] = forms.Errors{}
	}
	if _, ok := obj["Search"]; !ok {
		obj["Search"] = ""
	}

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Code": code, "Error": message})
	c.Abort()
}

func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "The page you requested does not exist.")
}

// renderDBError answers 404 for missing rows and 500 for anything else.
func renderDBError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c)
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	RenderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// idParam reads a numeric path parameter; anything else is a 404.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		NotFound(c)
	}
	return id, ok
}

func postURL(id uint) string {
	return "/posts/" + utils.FormatID(id) + "/"
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
