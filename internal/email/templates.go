package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateWelcomeProvider = "welcome_provider"
	TemplateWelcomeTalent   = "welcome_talent"
)

var builtinTemplates = map[string]string{
	TemplateWelcomeProvider: `<p>Hello {{.Name}},</p>
<p>Your FURSA service provider profile is live. Customers searching for a {{.ServiceType}} in {{.Location}} can now find you.</p>
<p>Complete your profile and add stories about your work to rank higher in search.</p>`,
	TemplateWelcomeTalent: `<p>Hello {{.Name}},</p>
<p>Welcome to FURSA! Your talent profile is ready.</p>
<p>Add portfolio items so clients can see what you do.</p>`,
}

// TemplateManager хранит разобранные html-шаблоны
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, ok := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
