package forms

import (
	"strings"
)

type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,excludesall=/ "`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func (f *SignupForm) clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func (f *LoginForm) clean() {
	f.Username = strings.TrimSpace(f.Username)
}
