package repositories

import (
	"errors"
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Suggestions - подсказки для строки поиска
type Suggestions struct {
	ServiceTypes []string `json:"serviceTypes"`
	Locations    []string `json:"locations"`
	Skills       []string `json:"skills"`
}

type ProviderRepository interface {
	Create(db *gorm.DB, provider *models.ServiceProvider) error
	FindByID(db *gorm.DB, id string) (*models.ServiceProvider, error)
	FindByEmail(db *gorm.DB, email string) (*models.ServiceProvider, error)
	CheckUnique(db *gorm.DB, email, phone, excludeID string) error
	List(db *gorm.DB, q listing.Query, page listing.Page) ([]models.ServiceProvider, int64, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdateLocked(db *gorm.DB, id string, fn func(p *models.ServiceProvider) error) (*models.ServiceProvider, error)
	TouchLastSeen(db *gorm.DB, id string, at time.Time) error
	SetOnline(db *gorm.DB, id string, online bool, at time.Time) error
	Deactivate(db *gorm.DB, id string) error
	Suggest(db *gorm.DB, term string, limit int) (*Suggestions, error)
	MarkStaleOffline(db *gorm.DB, before time.Time) (int64, error)
}

type ProviderRepositoryImpl struct{}

func NewProviderRepository() ProviderRepository {
	return &ProviderRepositoryImpl{}
}

func (r *ProviderRepositoryImpl) Create(db *gorm.DB, provider *models.ServiceProvider) error {
	if err := r.CheckUnique(db, provider.Email, provider.Phone, ""); err != nil {
		return err
	}
	if err := db.Create(provider).Error; err != nil {
		return translateUnique(err)
	}
	return nil
}

func (r *ProviderRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	if err := db.First(&provider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	if err := db.First(&provider, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepositoryImpl) CheckUnique(db *gorm.DB, email, phone, excludeID string) error {
	return checkUnique(db, &models.ServiceProvider{}, email, phone, excludeID)
}

// List - выборка страницы и общее количество по одним и тем же условиям
func (r *ProviderRepositoryImpl) List(db *gorm.DB, q listing.Query, page listing.Page) ([]models.ServiceProvider, int64, error) {
	var total int64
	if err := db.Model(&models.ServiceProvider{}).Scopes(q.Filters()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	providers := make([]models.ServiceProvider, 0, page.Limit)
	if total == 0 {
		return providers, 0, nil
	}

	err := db.Model(&models.ServiceProvider{}).
		Scopes(q.Scope(), page.Scope()).
		Find(&providers).Error
	if err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *ProviderRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if phone, ok := updates["phone"].(string); ok {
		if err := r.CheckUnique(db, "", phone, id); err != nil {
			return err
		}
	}

	updates["updated_at"] = time.Now()
	result := db.Model(&models.ServiceProvider{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateUnique(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// UpdateLocked читает строку под FOR UPDATE, применяет fn и сохраняет в одной транзакции
func (r *ProviderRepositoryImpl) UpdateLocked(db *gorm.DB, id string, fn func(p *models.ServiceProvider) error) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&provider, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProviderNotFound
			}
			return err
		}
		if err := fn(&provider); err != nil {
			return err
		}
		return tx.Save(&provider).Error
	})
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// TouchLastSeen не трогает updated_at
func (r *ProviderRepositoryImpl) TouchLastSeen(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.ServiceProvider{}).Where("id = ?", id).UpdateColumn("last_seen", at).Error
}

func (r *ProviderRepositoryImpl) SetOnline(db *gorm.DB, id string, online bool, at time.Time) error {
	result := db.Model(&models.ServiceProvider{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"is_online": online,
		"last_seen": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// Deactivate - мягкое удаление
func (r *ProviderRepositoryImpl) Deactivate(db *gorm.DB, id string) error {
	return r.Update(db, id, map[string]interface{}{
		"is_active": false,
		"is_online": false,
	})
}

func (r *ProviderRepositoryImpl) Suggest(db *gorm.DB, term string, limit int) (*Suggestions, error) {
	pattern := listing.LikePattern(term)
	s := &Suggestions{ServiceTypes: []string{}, Locations: []string{}, Skills: []string{}}

	base := func() *gorm.DB {
		return db.Model(&models.ServiceProvider{}).Where("is_active = ?", true)
	}

	if err := base().Distinct("service_type").Where("service_type ILIKE ?", pattern).
		Limit(limit).Pluck("service_type", &s.ServiceTypes).Error; err != nil {
		return nil, err
	}
	if err := base().Distinct("location").Where("location ILIKE ?", pattern).
		Limit(limit).Pluck("location", &s.Locations).Error; err != nil {
		return nil, err
	}

	err := db.Raw(`
		SELECT DISTINCT skill FROM (
			SELECT unnest(skills) AS skill FROM service_providers WHERE is_active = true
		) s
		WHERE skill ILIKE ?
		LIMIT ?`, pattern, limit).Scan(&s.Skills).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MarkStaleOffline переводит в offline тех, кто не появлялся с before
func (r *ProviderRepositoryImpl) MarkStaleOffline(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Model(&models.ServiceProvider{}).
		Where("is_online = ? AND last_seen < ?", true, before).
		UpdateColumn("is_online", false)
	return result.RowsAffected, result.Error
}
