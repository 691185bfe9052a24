package email

import "context"

// Provider отправляет письма
type Provider interface {
	// Send отправляет готовое письмо
	Send(ctx context.Context, email *Email) error

	// SendTemplate рендерит шаблон и отправляет его
	SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error
}

// NoopProvider используется, когда SMTP не настроен
type NoopProvider struct{}

func (NoopProvider) Send(context.Context, *Email) error { return nil }

func (NoopProvider) SendTemplate(context.Context, []string, string, string, TemplateData) error {
	return nil
}
