package listing

import "strings"

// TalentFilter - параметры списка и поиска талантов.
// Search и Q - синонимы (q используется в /api/search).
type TalentFilter struct {
	Category  string   `form:"category" json:"category,omitempty"`
	Location  string   `form:"location" json:"location,omitempty"`
	Verified  string   `form:"verified" json:"verified,omitempty"`
	MinRating *float64 `form:"minRating" json:"minRating,omitempty" binding:"omitempty,min=0,max=5"`
	Search    string   `form:"search" json:"search,omitempty"`
	Q         string   `form:"q" json:"q,omitempty"`
	Sort      string   `form:"sort" json:"sort,omitempty"`
	Page      int      `form:"page" json:"-"`
	Limit     int      `form:"limit" json:"-"`
}

// TalentDocument - выражение tsvector для полнотекстового поиска (совпадает с GIN-индексом)
const TalentDocument = "to_tsvector('simple', coalesce(name, '') || ' ' || coalesce(skill, '') || ' ' || coalesce(description, '') || ' ' || coalesce(location_full, ''))"

func (f TalentFilter) text() string {
	if s := strings.TrimSpace(f.Q); s != "" {
		return s
	}
	return strings.TrimSpace(f.Search)
}

// BuildTalentQuery переводит фильтр в условия по таблице talents
func BuildTalentQuery(f TalentFilter) Query {
	var q Query

	if c := strings.TrimSpace(f.Category); !isSentinel(c) {
		q.where("category = ?", c)
	}

	if loc := strings.TrimSpace(f.Location); !isSentinel(loc) {
		q.where("location_full ILIKE ?", contains(loc))
	}

	if v, ok := parseBool(f.Verified); ok {
		q.where("verified = ?", v)
	}

	if f.MinRating != nil {
		q.where("rating_average >= ?", *f.MinRating)
	}

	if s := f.text(); s != "" {
		q.where(TalentDocument+" @@ plainto_tsquery('simple', ?)", s)
	}

	q.Order = TalentOrder(f.Sort)
	return q
}
