package services

import (
	"context"
	"time"

	"fursa_backend/internal/email"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/models"
)

// NotificationService - письма пользователям (сейчас только приветственное)
type NotificationService interface {
	WelcomeProvider(p *models.ServiceProvider)
	WelcomeTalent(t *models.Talent)
}

type NotificationServiceImpl struct {
	provider email.Provider
	timeout  time.Duration
}

func NewNotificationService(provider email.Provider) NotificationService {
	return &NotificationServiceImpl{provider: provider, timeout: 30 * time.Second}
}

func (s *NotificationServiceImpl) WelcomeProvider(p *models.ServiceProvider) {
	s.sendAsync([]string{p.Email}, "Welcome to FURSA", email.TemplateWelcomeProvider, email.TemplateData{
		"Name":        p.Name,
		"ServiceType": p.ServiceType,
		"Location":    p.Location,
	})
}

func (s *NotificationServiceImpl) WelcomeTalent(t *models.Talent) {
	s.sendAsync([]string{t.Email}, "Welcome to FURSA", email.TemplateWelcomeTalent, email.TemplateData{
		"Name": t.Name,
	})
}

// отправка не блокирует запрос; ошибки только логируются
func (s *NotificationServiceImpl) sendAsync(to []string, subject, tpl string, data email.TemplateData) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.provider.SendTemplate(ctx, to, subject, tpl, data); err != nil {
			logger.Warn("Failed to send email", "template", tpl, "error", err)
		}
	}()
}
