package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": forms.SignupForm{}})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form forms.SignupForm
	errs := forms.Bind(c, &form)
	if errs.Valid() {
		user, err := h.createUser(form)
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			errs.Add("username", "A user with that username already exists.")
		case err != nil:
			renderDBError(c, err)
			return
		default:
			if err := login(c, user); err != nil {
				renderDBError(c, err)
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	form.Password1, form.Password2 = "", ""
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Form": form, "Errors": errs})
}

// createUser hashes the password and inserts the account.
func (h *AuthHandler) createUser(form forms.SignupForm) (*models.User, error) {
	hash, err := utils.HashPassword(form.Password1)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  hash,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Form": forms.LoginForm{Next: c.Query("next")}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	errs := forms.Bind(c, &form)
	if errs.Valid() {
		var user models.User
		err := h.db.Where("username = ?", form.Username).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			renderDBError(c, err)
			return
		}
		if err == nil && utils.CheckPasswordHash(form.Password, user.Password) {
			if err := login(c, &user); err != nil {
				renderDBError(c, err)
				return
			}
			c.Redirect(http.StatusFound, SafeNext(form.Next))
			return
		}
		errs.Add("", "Please enter a correct username and password. Note that both fields may be case-sensitive.")
	}
	form.Password = ""
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Form": form, "Errors": errs})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		renderDBError(c, fmt.Errorf("save session: %w", err))
		return
	}
	c.Set(middleware.CheckUserKey, nil)
	Render(c, http.StatusOK, "auth/logged_out.html", nil)
}

// login stores the user in the session. The caller must not report success
// when the session could not be saved.
func login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserID, user.ID)
	if err := session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SafeNext keeps post-login redirects on this site.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
