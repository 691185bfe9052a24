package repositories

import (
	"errors"
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilterOptions - значения для фильтров поиска талантов
type FilterOptions struct {
	Categories []string `json:"categories"`
	Locations  struct {
		Countries []string `json:"countries"`
		Cities    []string `json:"cities"`
	} `json:"locations"`
}

type TalentRepository interface {
	Create(db *gorm.DB, talent *models.Talent) error
	FindByID(db *gorm.DB, id string) (*models.Talent, error)
	FindByEmail(db *gorm.DB, email string) (*models.Talent, error)
	CheckUnique(db *gorm.DB, email, phone, excludeID string) error
	List(db *gorm.DB, q listing.Query, page listing.Page) ([]models.Talent, int64, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	UpdateLocked(db *gorm.DB, id string, fn func(t *models.Talent) error) (*models.Talent, error)
	Delete(db *gorm.DB, id string) error
	FilterOptions(db *gorm.DB) (*FilterOptions, error)
}

type TalentRepositoryImpl struct{}

func NewTalentRepository() TalentRepository {
	return &TalentRepositoryImpl{}
}

func (r *TalentRepositoryImpl) Create(db *gorm.DB, talent *models.Talent) error {
	if err := r.CheckUnique(db, talent.Email, talent.Phone, ""); err != nil {
		return err
	}
	if err := db.Create(talent).Error; err != nil {
		return translateUnique(err)
	}
	return nil
}

func (r *TalentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Talent, error) {
	var talent models.Talent
	if err := db.First(&talent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTalentNotFound
		}
		return nil, err
	}
	return &talent, nil
}

func (r *TalentRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Talent, error) {
	var talent models.Talent
	if err := db.First(&talent, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTalentNotFound
		}
		return nil, err
	}
	return &talent, nil
}

func (r *TalentRepositoryImpl) CheckUnique(db *gorm.DB, email, phone, excludeID string) error {
	return checkUnique(db, &models.Talent{}, email, phone, excludeID)
}

func (r *TalentRepositoryImpl) List(db *gorm.DB, q listing.Query, page listing.Page) ([]models.Talent, int64, error) {
	var total int64
	if err := db.Model(&models.Talent{}).Scopes(q.Filters()).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	talents := make([]models.Talent, 0, page.Limit)
	if total == 0 {
		return talents, 0, nil
	}

	err := db.Model(&models.Talent{}).
		Scopes(q.Scope(), page.Scope()).
		Find(&talents).Error
	if err != nil {
		return nil, 0, err
	}
	return talents, total, nil
}

func (r *TalentRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if phone, ok := updates["phone"].(string); ok {
		if err := r.CheckUnique(db, "", phone, id); err != nil {
			return err
		}
	}

	updates["updated_at"] = time.Now()
	result := db.Model(&models.Talent{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateUnique(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTalentNotFound
	}
	return nil
}

func (r *TalentRepositoryImpl) UpdateLocked(db *gorm.DB, id string, fn func(t *models.Talent) error) (*models.Talent, error) {
	var talent models.Talent
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&talent, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTalentNotFound
			}
			return err
		}
		if err := fn(&talent); err != nil {
			return err
		}
		return tx.Save(&talent).Error
	})
	if err != nil {
		return nil, err
	}
	return &talent, nil
}

// Delete - физическое удаление
func (r *TalentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Talent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTalentNotFound
	}
	return nil
}

func (r *TalentRepositoryImpl) FilterOptions(db *gorm.DB) (*FilterOptions, error) {
	opts := &FilterOptions{}

	pluck := func(column string, dst *[]string) error {
		return db.Model(&models.Talent{}).
			Distinct(column).
			Where(column+" <> ''").
			Order(column).
			Pluck(column, dst).Error
	}

	if err := pluck("category", &opts.Categories); err != nil {
		return nil, err
	}
	if err := pluck("location_country", &opts.Locations.Countries); err != nil {
		return nil, err
	}
	if err := pluck("location_city", &opts.Locations.Cities); err != nil {
		return nil, err
	}
	return opts, nil
}
