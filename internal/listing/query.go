// Package listing строит условия выборки и сортировку для списков
// исполнителей и талантов, а также считает пагинацию.
package listing

import (
	"strings"

	"gorm.io/gorm"
)

// Condition - один фрагмент WHERE с плейсхолдерами gorm
type Condition struct {
	SQL  string
	Args []any
}

// Query - результат сборки фильтра: условия объединяются через AND
type Query struct {
	Conditions []Condition
	Order      string
}

func (q *Query) where(sql string, args ...any) {
	q.Conditions = append(q.Conditions, Condition{SQL: sql, Args: args})
}

// anyOf объединяет однотипные условия через OR в одну группу
func (q *Query) anyOf(column string, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	parts := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, p := range patterns {
		parts[i] = column + " ILIKE ?"
		args[i] = contains(p)
	}
	q.where("("+strings.Join(parts, " OR ")+")", args...)
}

// Scope применяет условия и сортировку к запросу gorm
func (q Query) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range q.Conditions {
			db = db.Where(c.SQL, c.Args...)
		}
		if q.Order != "" {
			db = db.Order(q.Order)
		}
		return db
	}
}

// Filters применяет только условия (для COUNT)
func (q Query) Filters() func(*gorm.DB) *gorm.DB {
	return Query{Conditions: q.Conditions}.Scope()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains - шаблон ILIKE для подстроки; спецсимволы экранируются
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// isSentinel - значения "all"/"All" означают отсутствие фильтра
func isSentinel(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// parseBool понимает только явные true/false
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// splitList разворачивает ["a,b", "c"] в ["a", "b", "c"] без пустых
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// LikePattern - экранированный шаблон подстроки для ILIKE
func LikePattern(s string) string {
	return contains(s)
}
