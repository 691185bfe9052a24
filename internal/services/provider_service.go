package services

import (
	"sort"
	"strings"
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/models"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/services/dto"
	"fursa_backend/internal/validator"
	"fursa_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const completenessThreshold = 80

type ProviderService interface {
	List(db *gorm.DB, filter listing.ProviderFilter) (*dto.ProviderListResponse, error)
	GetByID(db *gorm.DB, id string, owner bool) (*dto.ProviderResponse, error)
	Create(db *gorm.DB, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error)
	Delete(db *gorm.DB, id string) error

	AddStory(db *gorm.DB, id string, req *dto.CreateStoryRequest) (*models.Story, error)
	ListStories(db *gorm.DB, id string) ([]models.Story, error)
	Dashboard(db *gorm.DB, id string) (*dto.DashboardResponse, error)
	UpdatePreferences(db *gorm.DB, id string, prefs *models.ProviderPreferences) (*models.ProviderPreferences, error)
	SetOnlineStatus(db *gorm.DB, id string, online bool) error
	Rate(db *gorm.DB, id, raterID string, stars int) (*models.Rating, error)
}

type ProviderServiceImpl struct {
	providerRepo repositories.ProviderRepository
	notifier     NotificationService
	now          func() time.Time
}

func NewProviderService(providerRepo repositories.ProviderRepository, notifier NotificationService) *ProviderServiceImpl {
	return &ProviderServiceImpl{
		providerRepo: providerRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *ProviderServiceImpl) List(db *gorm.DB, filter listing.ProviderFilter) (*dto.ProviderListResponse, error) {
	page := listing.NewPage(filter.Page, filter.Limit)
	query := listing.BuildProviderQuery(filter)

	providers, total, err := s.providerRepo.List(db, query, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.ProviderResponse, len(providers))
	for i := range providers {
		items[i] = dto.NewProviderResponse(&providers[i], false)
	}

	return &dto.ProviderListResponse{
		Success:    true,
		Providers:  items,
		Pagination: page.Meta(total),
		Filters:    filter.Applied(),
	}, nil
}

// GetByID отдает профиль и в том числе неактивные; обновляет last_seen
func (s *ProviderServiceImpl) GetByID(db *gorm.DB, id string, owner bool) (*dto.ProviderResponse, error) {
	provider, err := s.providerRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	now := s.now()
	if err := s.providerRepo.TouchLastSeen(db, id, now); err != nil {
		logger.Warn("Failed to update last seen", "provider_id", id, "error", err)
	} else {
		provider.LastSeen = now
	}

	return dto.NewProviderResponse(provider, owner), nil
}

func (s *ProviderServiceImpl) Create(db *gorm.DB, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	if err := checkPriceRange(req.MinPrice, req.MaxPrice); err != nil {
		return nil, err
	}

	provider := &models.ServiceProvider{
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        req.Email,
		Phone:        validator.NormalizePhone(req.Phone),
		ServiceType:  req.ServiceType,
		Location:     strings.TrimSpace(req.Location),
		Experience:   req.Experience,
		Description:  strings.TrimSpace(req.Description),
		Skills:       pq.StringArray(cleanSkills(req.Skills)),
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		ProfilePhoto: req.ProfilePhoto,
	}
	if req.SocialLinks != nil {
		provider.SocialLinks = datatypes.NewJSONType(*req.SocialLinks)
	}
	provider.ApplyDefaults(s.now())

	if err := s.providerRepo.Create(db, provider); err != nil {
		return nil, mapRepoError(err)
	}

	logger.Info("Service provider created", "provider_id", provider.ID, "service_type", provider.ServiceType)
	s.notifier.WelcomeProvider(provider)

	return dto.NewProviderResponse(provider, true), nil
}

func (s *ProviderServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	current, err := s.providerRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	minPrice, maxPrice := current.MinPrice, current.MaxPrice
	if req.MinPrice != nil {
		minPrice = req.MinPrice
	}
	if req.MaxPrice != nil {
		maxPrice = req.MaxPrice
	}
	if err := checkPriceRange(minPrice, maxPrice); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	setTrimmed(updates, "name", req.Name)
	setTrimmed(updates, "business_name", req.BusinessName)
	setTrimmed(updates, "location", req.Location)
	setTrimmed(updates, "description", req.Description)
	setTrimmed(updates, "profile_photo", req.ProfilePhoto)
	if req.Phone != nil {
		updates["phone"] = validator.NormalizePhone(*req.Phone)
	}
	if req.ServiceType != nil {
		updates["service_type"] = *req.ServiceType
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(cleanSkills(req.Skills))
	}
	if req.MinPrice != nil {
		updates["min_price"] = *req.MinPrice
	}
	if req.MaxPrice != nil {
		updates["max_price"] = *req.MaxPrice
	}
	if req.SocialLinks != nil {
		updates["social_links"] = datatypes.NewJSONType(*req.SocialLinks)
	}
	if req.Availability != nil {
		updates["availability"] = datatypes.NewJSONType(*req.Availability)
	}

	if len(updates) > 0 {
		if err := s.providerRepo.Update(db, id, updates); err != nil {
			return nil, mapRepoError(err)
		}
	}

	updated, err := s.providerRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return dto.NewProviderResponse(updated, true), nil
}

// Delete - мягкое удаление: профиль остается доступен по id
func (s *ProviderServiceImpl) Delete(db *gorm.DB, id string) error {
	if err := s.providerRepo.Deactivate(db, id); err != nil {
		return mapRepoError(err)
	}
	logger.Info("Service provider deactivated", "provider_id", id)
	return nil
}

func (s *ProviderServiceImpl) AddStory(db *gorm.DB, id string, req *dto.CreateStoryRequest) (*models.Story, error) {
	story := models.Story{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Skills:        cleanSkills(req.Skills),
		ProjectPhotos: req.ProjectPhotos,
		VoiceIntro:    req.VoiceIntro,
		CreatedAt:     s.now(),
	}
	if story.ProjectPhotos == nil {
		story.ProjectPhotos = []models.ProjectPhoto{}
	}

	_, err := s.providerRepo.UpdateLocked(db, id, func(p *models.ServiceProvider) error {
		p.Stories = append(p.Stories, story)
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &story, nil
}

// ListStories - новые сверху
func (s *ProviderServiceImpl) ListStories(db *gorm.DB, id string) ([]models.Story, error) {
	provider, err := s.providerRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return sortedStories(provider.Stories), nil
}

func (s *ProviderServiceImpl) Dashboard(db *gorm.DB, id string) (*dto.DashboardResponse, error) {
	provider, err := s.providerRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	resp := dto.NewProviderResponse(provider, true)
	stats := dto.DashboardStats{
		TotalStories:        len(provider.Stories),
		CompletedJobs:       provider.Stats.CompletedJobs,
		TotalEarnings:       provider.Stats.TotalEarnings,
		ResponseTime:        provider.Stats.ResponseTime,
		Rating:              provider.Rating,
		ProfileCompleteness: resp.ProfileCompleteness,
	}

	notifications := []dto.DashboardNotification{}
	if stats.ProfileCompleteness < completenessThreshold {
		notifications = append(notifications, dto.DashboardNotification{
			Type:     "profile_incomplete",
			Message:  "Complete your profile to get more customers",
			Priority: "high",
		})
	}
	if stats.TotalStories == 0 {
		notifications = append(notifications, dto.DashboardNotification{
			Type:     "no_stories",
			Message:  "Add stories about your work to build trust with customers",
			Priority: "medium",
		})
	}

	return &dto.DashboardResponse{
		Success:       true,
		Provider:      resp,
		Stats:         stats,
		Notifications: notifications,
	}, nil
}

func (s *ProviderServiceImpl) UpdatePreferences(db *gorm.DB, id string, prefs *models.ProviderPreferences) (*models.ProviderPreferences, error) {
	err := s.providerRepo.Update(db, id, map[string]interface{}{
		"preferences": datatypes.NewJSONType(*prefs),
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return prefs, nil
}

func (s *ProviderServiceImpl) SetOnlineStatus(db *gorm.DB, id string, online bool) error {
	if err := s.providerRepo.SetOnline(db, id, online, s.now()); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// Rate учитывает оценку под блокировкой строки
func (s *ProviderServiceImpl) Rate(db *gorm.DB, id, raterID string, stars int) (*models.Rating, error) {
	if id == raterID {
		return nil, apperrors.ErrCannotRateSelf
	}

	provider, err := s.providerRepo.UpdateLocked(db, id, func(p *models.ServiceProvider) error {
		if !p.IsActive {
			return repositories.ErrProviderNotFound
		}
		if err := p.Rating.Add(stars); err != nil {
			return apperrors.ErrInvalidOperation("rating", err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &provider.Rating, nil
}

func checkPriceRange(minPrice, maxPrice *float64) error {
	if minPrice != nil && maxPrice != nil && *maxPrice < *minPrice {
		return apperrors.ValidationError(map[string]string{
			"maxPrice": "Must be greater than or equal to minPrice",
		})
	}
	return nil
}

func setTrimmed(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = strings.TrimSpace(*value)
	}
}

func sortedStories(stories []models.Story) []models.Story {
	out := make([]models.Story, len(stories))
	copy(out, stories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
