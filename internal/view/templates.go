// Package view assembles the HTML renderer from the embedded templates.
package view

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"time"
	"yatube/internal/storage"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// Views lists every page template; each is rendered inside the base layout
// together with all includes.
var Views = []string{
	"error.html",
	"posts/index.html",
	"posts/group_list.html",
	"posts/profile.html",
	"posts/post_detail.html",
	"posts/create_post.html",
	"posts/delete_post.html",
	"posts/follow.html",
	"posts/search_results.html",
	"posts/edit_comment.html",
	"auth/login.html",
	"auth/signup.html",
	"auth/logged_out.html",
}

func FuncMap(store storage.Storage) template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"markdown": utils.RenderMarkdown,
		"mediaURL": func(path string) string {
			if path == "" || store == nil {
				return ""
			}
			return store.URL(path)
		},
		// queryParam builds an extra "&key=value" pair for paginator links.
		"queryParam": func(key, value string) template.URL {
			if value == "" {
				return ""
			}
			return template.URL("&" + url.QueryEscape(key) + "=" + url.QueryEscape(value))
		},
	}
}

// LoadTemplates builds one template set per view from fsys, which must hold
// templates/layouts, templates/includes and templates/views.
func LoadTemplates(fsys fs.FS, store storage.Storage) (multitemplate.Render, error) {
	r := multitemplate.New()

	layouts, err := fs.Glob(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	includes, err := fs.Glob(fsys, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	funcMap := FuncMap(store)
	for _, view := range Views {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, "templates/views/"+view)

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}
