package dto

import (
	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"
)

// CreateTalentRequest - публичная регистрация таланта; location - "город, округ, страна"
type CreateTalentRequest struct {
	Name           string                `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email          string                `json:"email" form:"email" validate:"required,email"`
	Phone          string                `json:"phone" form:"phone" validate:"required,phone"`
	Skill          string                `json:"skill" form:"skill" validate:"required,max=100"`
	Category       models.TalentCategory `json:"category" form:"category" validate:"required,is-talent-category"`
	Location       string                `json:"location" form:"location" validate:"required,max=255"`
	Description    string                `json:"description" form:"description" validate:"required,max=2000"`
	ProfileImage   string                `json:"profileImage" form:"profileImage" validate:"omitempty,url"`
	VoiceIntroURL  string                `json:"voiceIntroUrl" form:"voiceIntroUrl" validate:"omitempty,url"`
	VoiceLanguage  string                `json:"voiceLanguage" form:"voiceLanguage" validate:"max=32"`
	GlobalShipping bool                  `json:"globalShipping" form:"globalShipping"`
	SocialLinks    *models.SocialLinks   `json:"socialLinks"`
}

type UpdateTalentRequest struct {
	Name               *string                    `json:"name" validate:"omitempty,min=2,max=100"`
	Phone              *string                    `json:"phone" validate:"omitempty,phone"`
	Skill              *string                    `json:"skill" validate:"omitempty,max=100"`
	Category           *models.TalentCategory     `json:"category" validate:"omitempty,is-talent-category"`
	Location           *string                    `json:"location" validate:"omitempty,min=1,max=255"`
	Description        *string                    `json:"description" validate:"omitempty,max=2000"`
	ProfileImage       *string                    `json:"profileImage" validate:"omitempty,url"`
	VoiceIntroURL      *string                    `json:"voiceIntroUrl" validate:"omitempty,url"`
	VoiceLanguage      *string                    `json:"voiceLanguage" validate:"omitempty,max=32"`
	AvailabilityStatus *models.AvailabilityStatus `json:"availabilityStatus" validate:"omitempty,oneof=available busy unavailable"`
	GlobalShipping     *bool                      `json:"globalShipping"`
	SocialLinks        *models.SocialLinks        `json:"socialLinks"`
}

// PortfolioRequest - элемент портфолио (multipart-поля или JSON с готовыми URL)
type PortfolioRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=150"`
	Description string `json:"description" form:"description" validate:"max=2000"`
	ImageURL    string `json:"imageUrl" form:"imageUrl" validate:"omitempty,url"`
	VideoURL    string `json:"videoUrl" form:"videoUrl" validate:"omitempty,url"`
}

type TalentListResponse struct {
	Success    bool            `json:"success"`
	Talents    []models.Talent `json:"talents"`
	Pagination listing.Meta    `json:"pagination"`
}
