package validator

import (
	"log"
	"regexp"
	"strings"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила; ошибка регистрации - фатальна
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-service-type", validateServiceType)
	mustRegister("is-experience", validateExperience)
	mustRegister("is-talent-category", validateTalentCategory)
	mustRegister("is-user-type", validateUserType)
	mustRegister("phone", validatePhone)
}

// пустые значения пропускаем, для них есть 'required'

func validateServiceType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ServiceType(value).IsValid()
}

func validateExperience(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.Experience(value).IsValid()
}

func validateTalentCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.TalentCategory(value).IsValid()
}

func validateUserType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || auth.ValidateRole(value) == nil
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// validatePhone допускает пробелы, дефисы и скобки как разделители
func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneRe.MatchString(NormalizePhone(value))
}

var phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

func NormalizePhone(phone string) string {
	return phoneStrip.Replace(strings.TrimSpace(phone))
}
