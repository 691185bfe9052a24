package dto

import (
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"
)

// CreateProviderRequest - публичная регистрация исполнителя (без пароля)
type CreateProviderRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=100"`
	BusinessName string              `json:"businessName" validate:"max=150"`
	Email        string              `json:"email" validate:"required,email"`
	Phone        string              `json:"phone" validate:"required,phone"`
	ServiceType  models.ServiceType  `json:"serviceType" validate:"required,is-service-type"`
	Location     string              `json:"location" validate:"required,max=255"`
	Experience   models.Experience   `json:"experience" validate:"required,is-experience"`
	Description  string              `json:"description" validate:"required,max=1000"`
	Skills       []string            `json:"skills" validate:"max=30,dive,max=50"`
	MinPrice     *float64            `json:"minPrice" validate:"omitempty,min=0"`
	MaxPrice     *float64            `json:"maxPrice" validate:"omitempty,min=0"`
	ProfilePhoto string              `json:"profilePhoto" validate:"omitempty,url"`
	SocialLinks  *models.SocialLinks `json:"socialLinks"`
}

// UpdateProviderRequest - изменяемые поля; неизвестные ключи (id, rating, stats, email...) игнорируются
type UpdateProviderRequest struct {
	Name         *string              `json:"name" validate:"omitempty,min=2,max=100"`
	BusinessName *string              `json:"businessName" validate:"omitempty,max=150"`
	Phone        *string              `json:"phone" validate:"omitempty,phone"`
	ServiceType  *models.ServiceType  `json:"serviceType" validate:"omitempty,is-service-type"`
	Location     *string              `json:"location" validate:"omitempty,min=1,max=255"`
	Experience   *models.Experience   `json:"experience" validate:"omitempty,is-experience"`
	Description  *string              `json:"description" validate:"omitempty,max=1000"`
	Skills       []string             `json:"skills" validate:"omitempty,max=30,dive,max=50"`
	MinPrice     *float64             `json:"minPrice" validate:"omitempty,min=0"`
	MaxPrice     *float64             `json:"maxPrice" validate:"omitempty,min=0"`
	ProfilePhoto *string              `json:"profilePhoto" validate:"omitempty,url"`
	SocialLinks  *models.SocialLinks  `json:"socialLinks"`
	Availability *models.Availability `json:"availability"`
}

type CreateStoryRequest struct {
	Title         string                `json:"title" validate:"required,min=1,max=150"`
	Description   string                `json:"description" validate:"required,max=2000"`
	Skills        []string              `json:"skills" validate:"max=20,dive,max=50"`
	ProjectPhotos []models.ProjectPhoto `json:"projectPhotos" validate:"max=20"`
	VoiceIntro    *models.VoiceIntro    `json:"voiceIntro"`
}

type OnlineStatusRequest struct {
	IsOnline *bool `json:"isOnline" validate:"required"`
}

// PublicVerification - статус проверки без документов
type PublicVerification struct {
	IsVerified bool       `json:"isVerified"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// ProviderResponse - профиль исполнителя для выдачи наружу.
// Поля верхнего уровня перекрывают одноименные поля модели при сериализации.
type ProviderResponse struct {
	*models.ServiceProvider
	Verification        PublicVerification          `json:"verificationStatus"`
	Preferences         *models.ProviderPreferences `json:"preferences,omitempty"`
	ProfileCompleteness int                         `json:"profileCompleteness"`
}

// NewProviderResponse скрывает документы верификации; настройки видит только владелец
func NewProviderResponse(p *models.ServiceProvider, owner bool) *ProviderResponse {
	resp := &ProviderResponse{
		ServiceProvider: p,
		Verification: PublicVerification{
			IsVerified: p.Verification.IsVerified,
			VerifiedAt: p.Verification.VerifiedAt,
		},
		ProfileCompleteness: p.ProfileCompleteness(),
	}
	if owner {
		prefs := p.Preferences.Data()
		resp.Preferences = &prefs
	}
	return resp
}

type ProviderListResponse struct {
	Success    bool                   `json:"success"`
	Providers  []*ProviderResponse    `json:"providers"`
	Pagination listing.Meta           `json:"pagination"`
	Filters    listing.ProviderFilter `json:"filters"`
}

type DashboardStats struct {
	TotalStories        int           `json:"totalStories"`
	CompletedJobs       int64         `json:"completedJobs"`
	TotalEarnings       float64       `json:"totalEarnings"`
	ResponseTime        string        `json:"responseTime"`
	Rating              models.Rating `json:"rating"`
	ProfileCompleteness int           `json:"profileCompleteness"`
}

type DashboardNotification struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type DashboardResponse struct {
	Success       bool                    `json:"success"`
	Provider      *ProviderResponse       `json:"provider"`
	Stats         DashboardStats          `json:"stats"`
	Notifications []DashboardNotification `json:"notifications"`
}
