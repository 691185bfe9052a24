package dto

import "fursa_backend/internal/models"

// RegisterRequest - регистрация исполнителя или таланта с паролем
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Phone    string      `json:"phone" validate:"required,phone"`
	Password string      `json:"password" validate:"required,min=8"`
	UserType models.Role `json:"userType" validate:"required,is-user-type"`
	Location string      `json:"location" validate:"required,max=255"`

	// исполнитель
	BusinessName string             `json:"businessName,omitempty" validate:"max=150"`
	ServiceType  models.ServiceType `json:"serviceType,omitempty" validate:"required_if=UserType provider,is-service-type"`
	Experience   models.Experience  `json:"experience,omitempty" validate:"required_if=UserType provider,is-experience"`
	Skills       []string           `json:"skills,omitempty" validate:"max=30,dive,max=50"`
	MinPrice     *float64           `json:"minPrice,omitempty" validate:"omitempty,min=0"`
	MaxPrice     *float64           `json:"maxPrice,omitempty" validate:"omitempty,min=0"`

	// талант
	Skill    string                `json:"skill,omitempty" validate:"required_if=UserType talent,max=100"`
	Category models.TalentCategory `json:"category,omitempty" validate:"required_if=UserType talent,is-talent-category"`

	Description string `json:"description,omitempty" validate:"max=1000"`
}

type LoginRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	UserType models.Role `json:"userType" validate:"required,is-user-type"`
}

// AuthResponse - ответ на register/login
type AuthResponse struct {
	Success   bool             `json:"success"`
	Token     string           `json:"token"`
	User      models.Principal `json:"user"`
	ExpiresIn int64            `json:"expiresIn"` // секунды
}
