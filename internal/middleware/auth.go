package middleware

import (
	"net/http"
	"net/url"
	"yatube/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	CheckUserKey  = "user"
	SessionUserID = "user_id"
	LoginPath     = "/auth/login/"
)

// AuthRequired sends anonymous visitors to the login page, remembering
// where they were going.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionUserID)

		if userID != nil {
			var user models.User
			if err := db.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			} else {
				// stale session, the account is gone
				session.Delete(SessionUserID)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
