package services

import (
	"context"
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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TalentService interface {
	List(db *gorm.DB, filter listing.TalentFilter) (*dto.TalentListResponse, error)
	GetByID(db *gorm.DB, id string) (*models.Talent, error)
	Create(db *gorm.DB, req *dto.CreateTalentRequest) (*models.Talent, error)
	Update(db *gorm.DB, id string, req *dto.UpdateTalentRequest) (*models.Talent, error)
	Delete(db *gorm.DB, id string) error

	// AddPortfolioItem загружает первый файл (если есть) и добавляет работу в портфолио
	AddPortfolioItem(ctx context.Context, db *gorm.DB, id string, req *dto.PortfolioRequest, files []*dto.FileInput) (*models.PortfolioItem, error)
	Rate(db *gorm.DB, id, raterID string, stars int) (*models.Rating, error)
}

type TalentServiceImpl struct {
	talentRepo repositories.TalentRepository
	uploads    UploadService
	notifier   NotificationService
	now        func() time.Time
}

func NewTalentService(talentRepo repositories.TalentRepository, uploads UploadService, notifier NotificationService) *TalentServiceImpl {
	return &TalentServiceImpl{
		talentRepo: talentRepo,
		uploads:    uploads,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *TalentServiceImpl) List(db *gorm.DB, filter listing.TalentFilter) (*dto.TalentListResponse, error) {
	page := listing.NewPage(filter.Page, filter.Limit)

	talents, total, err := s.talentRepo.List(db, listing.BuildTalentQuery(filter), page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TalentListResponse{
		Success:    true,
		Talents:    talents,
		Pagination: page.Meta(total),
	}, nil
}

func (s *TalentServiceImpl) GetByID(db *gorm.DB, id string) (*models.Talent, error) {
	talent, err := s.talentRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return talent, nil
}

func (s *TalentServiceImpl) Create(db *gorm.DB, req *dto.CreateTalentRequest) (*models.Talent, error) {
	talent := &models.Talent{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		Phone:          validator.NormalizePhone(req.Phone),
		Skill:          strings.TrimSpace(req.Skill),
		Category:       req.Category,
		Location:       models.ParseLocation(req.Location),
		Description:    strings.TrimSpace(req.Description),
		ProfileImage:   req.ProfileImage,
		VoiceIntroURL:  req.VoiceIntroURL,
		VoiceLanguage:  strings.ToLower(strings.TrimSpace(req.VoiceLanguage)),
		GlobalShipping: req.GlobalShipping,
	}
	if req.SocialLinks != nil {
		talent.SocialLinks = datatypes.NewJSONType(*req.SocialLinks)
	}
	talent.ApplyDefaults()

	if err := s.talentRepo.Create(db, talent); err != nil {
		return nil, mapRepoError(err)
	}

	logger.Info("Talent created", "talent_id", talent.ID, "category", talent.Category)
	s.notifier.WelcomeTalent(talent)
	return talent, nil
}

func (s *TalentServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateTalentRequest) (*models.Talent, error) {
	updates := make(map[string]interface{})
	setTrimmed(updates, "name", req.Name)
	setTrimmed(updates, "skill", req.Skill)
	setTrimmed(updates, "description", req.Description)
	setTrimmed(updates, "profile_image", req.ProfileImage)
	setTrimmed(updates, "voice_intro_url", req.VoiceIntroURL)
	if req.VoiceLanguage != nil {
		updates["voice_language"] = strings.ToLower(strings.TrimSpace(*req.VoiceLanguage))
	}
	if req.Phone != nil {
		updates["phone"] = validator.NormalizePhone(*req.Phone)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Location != nil {
		loc := models.ParseLocation(*req.Location)
		updates["location_city"] = loc.City
		updates["location_county"] = loc.County
		updates["location_country"] = loc.Country
		updates["location_full"] = loc.Full
	}
	if req.AvailabilityStatus != nil {
		updates["availability_status"] = *req.AvailabilityStatus
	}
	if req.GlobalShipping != nil {
		updates["global_shipping"] = *req.GlobalShipping
	}
	if req.SocialLinks != nil {
		updates["social_links"] = datatypes.NewJSONType(*req.SocialLinks)
	}

	if len(updates) > 0 {
		if err := s.talentRepo.Update(db, id, updates); err != nil {
			return nil, mapRepoError(err)
		}
	}
	return s.GetByID(db, id)
}

// Delete - физическое удаление
func (s *TalentServiceImpl) Delete(db *gorm.DB, id string) error {
	if err := s.talentRepo.Delete(db, id); err != nil {
		return mapRepoError(err)
	}
	logger.Info("Talent deleted", "talent_id", id)
	return nil
}

func (s *TalentServiceImpl) AddPortfolioItem(ctx context.Context, db *gorm.DB, id string, req *dto.PortfolioRequest, files []*dto.FileInput) (*models.PortfolioItem, error) {
	// до загрузки файла убеждаемся, что талант существует
	if _, err := s.talentRepo.FindByID(db, id); err != nil {
		return nil, mapRepoError(err)
	}

	item := models.PortfolioItem{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		CreatedAt:   s.now(),
	}

	if len(files) > 0 {
		uploaded, err := s.uploads.UploadFile(ctx, id, files[0])
		if err != nil {
			return nil, err
		}
		if uploaded.Type == "video" {
			item.VideoURL = uploaded.URL
		} else {
			item.ImageURL = uploaded.URL
		}
	}

	_, err := s.talentRepo.UpdateLocked(db, id, func(t *models.Talent) error {
		t.Portfolio = append(t.Portfolio, item)
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &item, nil
}

func (s *TalentServiceImpl) Rate(db *gorm.DB, id, raterID string, stars int) (*models.Rating, error) {
	if id == raterID {
		return nil, apperrors.ErrCannotRateSelf
	}

	talent, err := s.talentRepo.UpdateLocked(db, id, func(t *models.Talent) error {
		if err := t.Rating.Add(stars); err != nil {
			return apperrors.ErrInvalidOperation("rating", err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &talent.Rating, nil
}
