package listing

import (
	"strings"
)

// ProviderFilter - параметры запроса списка исполнителей
type ProviderFilter struct {
	ServiceType string   `form:"serviceType" json:"serviceType,omitempty"`
	Location    string   `form:"location" json:"location,omitempty"`
	MinRating   *float64 `form:"minRating" json:"minRating,omitempty" binding:"omitempty,min=0,max=5"`
	MinPrice    *float64 `form:"minPrice" json:"minPrice,omitempty" binding:"omitempty,min=0"`
	MaxPrice    *float64 `form:"maxPrice" json:"maxPrice,omitempty" binding:"omitempty,min=0"`
	Skills      []string `form:"skills" json:"skills,omitempty"`
	Verified    string   `form:"verified" json:"verified,omitempty"`
	Search      string   `form:"search" json:"search,omitempty"`
	Sort        string   `form:"sort" json:"sort,omitempty"`
	SortBy      string   `form:"sortBy" json:"-"` // старое имя параметра, sort важнее
	Page        int      `form:"page" json:"-"`
	Limit       int      `form:"limit" json:"-"`
}

// BuildProviderQuery переводит фильтр в условия по таблице service_providers.
// Неактивные (удаленные) исполнители в списки не попадают.
func BuildProviderQuery(f ProviderFilter) Query {
	var q Query
	q.where("is_active = ?", true)

	if st := strings.TrimSpace(f.ServiceType); !isSentinel(st) {
		q.where("service_type = ?", strings.ToLower(st))
	}

	if loc := strings.TrimSpace(f.Location); !isSentinel(loc) {
		q.where("location ILIKE ?", contains(loc))
	}

	if f.MinRating != nil {
		q.where("rating_average >= ?", *f.MinRating)
	}

	// обе границы относятся к минимальной цене исполнителя
	if f.MinPrice != nil {
		q.where("min_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.where("min_price <= ?", *f.MaxPrice)
	}

	q.anyOf("array_to_string(skills, ',')", splitList(f.Skills))

	if v, ok := parseBool(f.Verified); ok {
		q.where("verification_is_verified = ?", v)
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := contains(s)
		q.where(
			"(name ILIKE ? OR business_name ILIKE ? OR description ILIKE ? OR array_to_string(skills, ',') ILIKE ? OR location ILIKE ?)",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	q.Order = ProviderOrder(f.sortKey())
	return q
}

func (f ProviderFilter) sortKey() string {
	if strings.TrimSpace(f.Sort) != "" {
		return f.Sort
	}
	return f.SortBy
}

// Applied - фильтры, которые реально повлияли на выборку (эхо в ответе)
func (f ProviderFilter) Applied() ProviderFilter {
	out := f
	if isSentinel(strings.TrimSpace(out.ServiceType)) {
		out.ServiceType = ""
	}
	if isSentinel(strings.TrimSpace(out.Location)) {
		out.Location = ""
	}
	if _, ok := parseBool(out.Verified); !ok {
		out.Verified = ""
	}
	out.Skills = splitList(out.Skills)
	out.Search = strings.TrimSpace(out.Search)
	out.Sort = normalizeSort(out.sortKey())
	out.SortBy = ""
	if _, ok := providerOrders[out.Sort]; !ok {
		out.Sort = SortRating
	}
	return out
}
