package services

import (
	"fursa_backend/internal/auth"
	"fursa_backend/internal/cache"
	"fursa_backend/internal/config"
	"fursa_backend/internal/email"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProviderService     ProviderService
	TalentService       TalentService
	SearchService       SearchService
	UploadService       UploadService
	NotificationService NotificationService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	Tokens  *auth.TokenManager
	Storage storage.Storage
	Cache   cache.Cache
	Email   email.Provider
	Upload  config.UploadConfig
	Metrics UploadRecorder
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	providerRepo := repositories.NewProviderRepository()
	talentRepo := repositories.NewTalentRepository()

	mailer := deps.Email
	if mailer == nil {
		mailer = email.NoopProvider{}
	}
	notifier := NewNotificationService(mailer)
	uploads := NewUploadService(deps.Storage, deps.Upload)
	if deps.Metrics != nil {
		uploads.WithRecorder(deps.Metrics)
	}

	return &ServiceContainer{
		AuthService:         NewAuthService(providerRepo, talentRepo, deps.Tokens, notifier),
		ProviderService:     NewProviderService(providerRepo, notifier),
		TalentService:       NewTalentService(talentRepo, uploads, notifier),
		SearchService:       NewSearchService(talentRepo, providerRepo, deps.Cache),
		UploadService:       uploads,
		NotificationService: notifier,
	}
}
