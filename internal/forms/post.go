package forms

import (
	"strings"
)

// PostForm is the post create/edit form. The author is never taken from
// submitted data. The image is read separately from the multipart body.
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,numeric"`
}

func (f *PostForm) clean() {
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

func (f *CommentForm) clean() {
	f.Text = strings.TrimSpace(f.Text)
}
