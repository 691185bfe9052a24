package listing

import "gorm.io/gorm"

const (
	DefaultLimit = 20
	MaxLimit     = 100
	SearchLimit  = 50
	// MaxPage держит page*limit далеко от переполнения int
	MaxPage = 1_000_000
)

// Page - нормализованные page/limit
type Page struct {
	Number int
	Limit  int
}

// Meta - метаданные страницы в ответе
type Meta struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPage нормализует ввод: page < 1 -> 1, page > MaxPage -> MaxPage, limit <= 0 -> DefaultLimit, limit > MaxLimit -> MaxLimit
func NewPage(page, limit int) Page {
	return NewPageWithDefault(page, limit, DefaultLimit)
}

func NewPageWithDefault(page, limit, def int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = def
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

func (p Page) Meta(total int64) Meta {
	pages := 0
	if total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		Current: p.Number,
		Pages:   pages,
		Total:   total,
		Limit:   p.Limit,
		HasNext: int64(p.Number)*int64(p.Limit) < total,
		HasPrev: p.Number > 1,
	}
}

// Scope - OFFSET/LIMIT для gorm
func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}
