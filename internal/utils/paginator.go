package utils

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Page is one fixed-size slice of an ordered collection.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	PerPage  int
	Count    int64
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextPageNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange lists every page number, for the paginator widget.
func (p *Page[T]) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// PageNumber resolves the raw "page" parameter against count items. Missing
// or malformed values give the first page, "last" gives the last page and
// out-of-range numbers are clamped. There is always at least one page.
func PageNumber(raw string, count int64, perPage int) (number, numPages int) {
	if perPage < 1 {
		perPage = 1
	}
	numPages = int(math.Ceil(float64(count) / float64(perPage)))
	if numPages == 0 {
		numPages = 1
	}

	raw = strings.TrimSpace(raw)
	if raw == "last" {
		return numPages, numPages
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1, numPages
	}
	if number > numPages {
		number = numPages
	}
	return number, numPages
}

// Paginate counts query and loads the requested page of it. query must carry
// its own ordering; preloads are applied to the page query only.
func Paginate[T any](query *gorm.DB, raw string, perPage int, preloads ...string) (*Page[T], error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}

	number, numPages := PageNumber(raw, count, perPage)
	page := &Page[T]{
		Number:   number,
		NumPages: numPages,
		PerPage:  perPage,
		Count:    count,
		Items:    []T{},
	}
	if count == 0 {
		return page, nil
	}

	tx := query.Session(&gorm.Session{})
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.Offset((number - 1) * perPage).Limit(perPage).Find(&page.Items).Error; err != nil {
		return nil, err
	}
	return page, nil
}
