package utils

import (
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EnhanceHTMLContent lazy-loads images and keeps oversized images inside the
// post column.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		s.SetAttr("referrerpolicy", "no-referrer")
		s.AddClass("img-fluid")
	})

	// goquery wraps fragments in html/body
	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}

	return template.HTML(html)
}
