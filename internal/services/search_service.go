package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"fursa_backend/internal/cache"
	"fursa_backend/internal/listing"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/services/dto"
	"fursa_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	searchCacheNamespace = "search"
	filtersCacheTTL      = 5 * time.Minute
	suggestionsCacheTTL  = 5 * time.Minute
	suggestionsLimit     = 5
	suggestionsMinChars  = 2
)

type SearchService interface {
	Search(db *gorm.DB, filter listing.TalentFilter) (*dto.SearchResponse, error)
	Filters(ctx context.Context, db *gorm.DB) (*repositories.FilterOptions, error)
	Suggestions(ctx context.Context, db *gorm.DB, q string) (*repositories.Suggestions, error)
}

type SearchServiceImpl struct {
	talentRepo   repositories.TalentRepository
	providerRepo repositories.ProviderRepository
	cache        cache.Cache
}

func NewSearchService(talentRepo repositories.TalentRepository, providerRepo repositories.ProviderRepository, c cache.Cache) *SearchServiceImpl {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &SearchServiceImpl{talentRepo: talentRepo, providerRepo: providerRepo, cache: c}
}

// Search - полнотекстовый поиск талантов; по умолчанию 50 на страницу
func (s *SearchServiceImpl) Search(db *gorm.DB, filter listing.TalentFilter) (*dto.SearchResponse, error) {
	page := listing.NewPageWithDefault(filter.Page, filter.Limit, listing.SearchLimit)

	talents, total, err := s.talentRepo.List(db, listing.BuildTalentQuery(filter), page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SearchResponse{
		Success:    true,
		Talents:    talents,
		Total:      total,
		Pagination: page.Meta(total),
	}, nil
}

func (s *SearchServiceImpl) Filters(ctx context.Context, db *gorm.DB) (*repositories.FilterOptions, error) {
	var cached repositories.FilterOptions
	if hit := s.fromCache(ctx, "filters", &cached); hit {
		return &cached, nil
	}

	opts, err := s.talentRepo.FilterOptions(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.toCache(ctx, "filters", opts, filtersCacheTTL)
	return opts, nil
}

// Suggestions: короче двух символов - пустой ответ без запроса к базе
func (s *SearchServiceImpl) Suggestions(ctx context.Context, db *gorm.DB, q string) (*repositories.Suggestions, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < suggestionsMinChars {
		return &repositories.Suggestions{ServiceTypes: []string{}, Locations: []string{}, Skills: []string{}}, nil
	}

	key := "suggestions:" + strings.ToLower(q)
	var cached repositories.Suggestions
	if hit := s.fromCache(ctx, key, &cached); hit {
		return &cached, nil
	}

	sugg, err := s.providerRepo.Suggest(db, q, suggestionsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.toCache(ctx, key, sugg, suggestionsCacheTTL)
	return sugg, nil
}

// ошибки кэша не ломают запрос
func (s *SearchServiceImpl) fromCache(ctx context.Context, key string, dst interface{}) bool {
	hit, err := s.cache.Get(ctx, searchCacheNamespace, key, dst)
	if err != nil {
		logger.CtxWarn(ctx, "Cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *SearchServiceImpl) toCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, searchCacheNamespace, key, value, ttl); err != nil {
		logger.CtxWarn(ctx, "Cache write failed", "key", key, "error", err)
	}
}
