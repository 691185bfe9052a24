package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrProviderNotFound = errors.New("service provider not found")
	ErrTalentNotFound   = errors.New("talent not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPhoneTaken       = errors.New("phone already registered")
)

const uniqueViolation = "23505"

// translateUnique переводит нарушение уникального индекса в ErrEmailTaken/ErrPhoneTaken
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "phone") {
			return ErrPhoneTaken
		}
		return ErrEmailTaken
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

// checkUnique - предварительная проверка email/phone в таблице (excludeID - для обновлений)
func checkUnique(db *gorm.DB, model any, email, phone, excludeID string) error {
	if email != "" {
		var n int64
		q := db.Model(model).Where("email = ?", email)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailTaken
		}
	}
	if phone != "" {
		var n int64
		q := db.Model(model).Where("phone = ?", phone)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrPhoneTaken
		}
	}
	return nil
}
