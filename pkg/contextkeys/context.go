package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - *gorm.DB текущего запроса
	DBContextKey = contextKey("db")
	// UserIDKey - id субъекта токена (provider или talent)
	UserIDKey = contextKey("userID")
	// RoleKey - "provider" | "talent"
	RoleKey = contextKey("role")
	// ClaimsKey - разобранные claims токена
	ClaimsKey = contextKey("claims")
)
