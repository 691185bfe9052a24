package services

import (
	"strings"
	"time"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/models"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/services/dto"
	"fursa_backend/internal/validator"
	"fursa_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, claims *auth.Claims) (*models.Principal, error)
	Logout(db *gorm.DB, claims *auth.Claims)
}

type AuthServiceImpl struct {
	providerRepo repositories.ProviderRepository
	talentRepo   repositories.TalentRepository
	tokens       *auth.TokenManager
	notifier     NotificationService
	hashPassword func(string) (string, error)
	now          func() time.Time
}

func NewAuthService(
	providerRepo repositories.ProviderRepository,
	talentRepo repositories.TalentRepository,
	tokens *auth.TokenManager,
	notifier NotificationService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		providerRepo: providerRepo,
		talentRepo:   talentRepo,
		tokens:       tokens,
		notifier:     notifier,
		hashPassword: auth.HashPassword,
		now:          time.Now,
	}
}

// Register - регистрация с паролем, сразу выдает токен
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidateRole(string(req.UserType)); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"userType": "Must be either provider or talent"})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if err := checkPriceRange(req.MinPrice, req.MaxPrice); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var principal models.Principal

	switch req.UserType {
	case models.RoleProvider:
		provider := &models.ServiceProvider{
			Name:         strings.TrimSpace(req.Name),
			BusinessName: strings.TrimSpace(req.BusinessName),
			Email:        req.Email,
			Phone:        validator.NormalizePhone(req.Phone),
			PasswordHash: hash,
			ServiceType:  req.ServiceType,
			Location:     strings.TrimSpace(req.Location),
			Experience:   req.Experience,
			Description:  strings.TrimSpace(req.Description),
			Skills:       pq.StringArray(cleanSkills(req.Skills)),
			MinPrice:     req.MinPrice,
			MaxPrice:     req.MaxPrice,
		}
		provider.ApplyDefaults(s.now())

		if err := s.providerRepo.Create(db, provider); err != nil {
			return nil, mapRepoError(err)
		}
		s.notifier.WelcomeProvider(provider)
		principal = provider.Principal()

	case models.RoleTalent:
		talent := &models.Talent{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			Phone:        validator.NormalizePhone(req.Phone),
			PasswordHash: hash,
			Skill:        strings.TrimSpace(req.Skill),
			Category:     req.Category,
			Location:     models.ParseLocation(req.Location),
			Description:  strings.TrimSpace(req.Description),
			SocialLinks:  datatypes.NewJSONType(models.SocialLinks{}),
		}
		talent.ApplyDefaults()

		if err := s.talentRepo.Create(db, talent); err != nil {
			return nil, mapRepoError(err)
		}
		s.notifier.WelcomeTalent(talent)
		principal = talent.Principal()
	}

	logger.Info("User registered", "user_id", principal.ID, "role", principal.Role)
	return s.issue(principal)
}

// Login - одинаковый ответ для неизвестного email, отключенного профиля и неверного пароля
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := models.NormalizeEmail(req.Email)

	var (
		principal models.Principal
		hash      string
	)

	switch req.UserType {
	case models.RoleProvider:
		provider, err := s.providerRepo.FindByEmail(db, email)
		if err != nil {
			return nil, s.credentialsError(err)
		}
		if !provider.IsActive {
			return nil, apperrors.ErrInvalidCredentials
		}
		principal, hash = provider.Principal(), provider.PasswordHash

	case models.RoleTalent:
		talent, err := s.talentRepo.FindByEmail(db, email)
		if err != nil {
			return nil, s.credentialsError(err)
		}
		principal, hash = talent.Principal(), talent.PasswordHash

	default:
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, hash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if principal.Role == models.RoleProvider {
		if err := s.providerRepo.SetOnline(db, principal.ID, true, s.now()); err != nil {
			logger.Warn("Failed to mark provider online", "provider_id", principal.ID, "error", err)
		}
	}

	return s.issue(principal)
}

// Me перечитывает субъекта токена; удаленный или отключенный профиль - 401
func (s *AuthServiceImpl) Me(db *gorm.DB, claims *auth.Claims) (*models.Principal, error) {
	switch models.Role(claims.Role) {
	case models.RoleProvider:
		provider, err := s.providerRepo.FindByID(db, claims.UserID)
		if err != nil {
			return nil, s.tokenSubjectError(err)
		}
		if !provider.IsActive {
			return nil, apperrors.ErrInvalidToken
		}
		p := provider.Principal()
		return &p, nil

	case models.RoleTalent:
		talent, err := s.talentRepo.FindByID(db, claims.UserID)
		if err != nil {
			return nil, s.tokenSubjectError(err)
		}
		p := talent.Principal()
		return &p, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// Logout - токен остается валидным до истечения; только снимаем online у исполнителя
func (s *AuthServiceImpl) Logout(db *gorm.DB, claims *auth.Claims) {
	if claims == nil || models.Role(claims.Role) != models.RoleProvider {
		return
	}
	if err := s.providerRepo.SetOnline(db, claims.UserID, false, s.now()); err != nil {
		logger.Warn("Failed to mark provider offline", "provider_id", claims.UserID, "error", err)
	}
}

func (s *AuthServiceImpl) issue(p models.Principal) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(p.ID, p.Email, string(p.Role), p.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Success:   true,
		Token:     token,
		User:      p,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *AuthServiceImpl) credentialsError(err error) error {
	if isNotFound(err) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.InternalError(err)
}

func (s *AuthServiceImpl) tokenSubjectError(err error) error {
	if isNotFound(err) {
		return apperrors.ErrInvalidToken
	}
	return apperrors.InternalError(err)
}

func isNotFound(err error) bool {
	return apperrors.Is(err, repositories.ErrProviderNotFound) || apperrors.Is(err, repositories.ErrTalentNotFound)
}

// cleanSkills убирает пробелы и пустые навыки
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
