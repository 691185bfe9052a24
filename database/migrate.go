package database

import (
	"fmt"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/models"

	"gorm.io/gorm"
)

// Индексы, которые GORM не умеет описать тегами
var indexes = []struct {
	name string
	sql  string
}{
	{"idx_service_providers_skills", "CREATE INDEX IF NOT EXISTS idx_service_providers_skills ON service_providers USING GIN (skills)"},
	{"idx_service_providers_active_rating", "CREATE INDEX IF NOT EXISTS idx_service_providers_active_rating ON service_providers (is_active, rating_average DESC)"},
	{"idx_service_providers_online", "CREATE INDEX IF NOT EXISTS idx_service_providers_online ON service_providers (is_online, last_seen DESC)"},
	{"idx_talents_search", "CREATE INDEX IF NOT EXISTS idx_talents_search ON talents USING GIN (" + listing.TalentDocument + ")"},
	{"idx_talents_location", "CREATE INDEX IF NOT EXISTS idx_talents_location ON talents (location_country, location_city)"},
}

// AutoMigrate выполняет миграцию всех моделей и создает индексы
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.ServiceProvider{},
		&models.Talent{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	logger.Info("AutoMigrate completed", "indexes", len(indexes))
	return nil
}

// DropAll удаляет таблицы (только для dev/test)
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Talent{}, &models.ServiceProvider{})
}
