package handlers

import (
	"net/http"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/listing"
	"fursa_backend/internal/middleware"
	"fursa_backend/internal/models"
	"fursa_backend/internal/services"
	"fursa_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	*BaseHandler
	providerService services.ProviderService
	tokens          *auth.TokenManager
}

func NewProviderHandler(base *BaseHandler, providerService services.ProviderService, tokens *auth.TokenManager) *ProviderHandler {
	return &ProviderHandler{
		BaseHandler:     base,
		providerService: providerService,
		tokens:          tokens,
	}
}

func (h *ProviderHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/service-providers")
	{
		public.GET("", h.ListProviders)
		public.GET("/:id", middleware.OptionalAuthMiddleware(h.tokens), h.GetProvider)
		public.POST("", h.CreateProvider)
		public.GET("/:id/stories", h.ListStories)
	}

	// Любой авторизованный пользователь
	rated := r.Group("/service-providers")
	rated.Use(middleware.AuthMiddleware(h.tokens), middleware.RequirePermission(auth.PermRatingsWrite))
	{
		rated.POST("/:id/ratings", h.RateProvider)
	}

	// Только владелец профиля
	owner := r.Group("/service-providers")
	owner.Use(
		middleware.AuthMiddleware(h.tokens),
		middleware.RequireRoles(auth.RoleProvider),
		middleware.RequireOwner(auth.RoleProvider, "id"),
	)
	{
		profileWrite := middleware.RequirePermission(auth.PermProfileWriteSelf)
		owner.PUT("/:id", profileWrite, h.UpdateProvider)
		owner.DELETE("/:id", profileWrite, h.DeleteProvider)
		owner.POST("/:id/stories", middleware.RequirePermission(auth.PermStoriesWriteSelf), h.AddStory)
		owner.GET("/:id/dashboard", middleware.RequirePermission(auth.PermDashboardRead), h.GetDashboard)
		owner.PUT("/:id/preferences", profileWrite, h.UpdatePreferences)
		owner.PUT("/:id/online-status", profileWrite, h.UpdateOnlineStatus)
	}
}

// ListProviders godoc
// @Summary Список исполнителей
// @Description Фильтры, сортировка и пагинация. Неактивные исполнители не выводятся.
// @Tags service-providers
// @Produce json
// @Param serviceType query string false "Тип услуги (all - без фильтра)"
// @Param location query string false "Локация (подстрока)"
// @Param minRating query number false "Минимальный рейтинг"
// @Param minPrice query number false "Минимальная цена"
// @Param maxPrice query number false "Максимальная цена"
// @Param skills query string false "Навыки через запятую"
// @Param verified query string false "true | false"
// @Param search query string false "Поиск по имени, описанию и навыкам"
// @Param sort query string false "rating | reviews | price_low | price_high | newest | experience | online"
// @Param sortBy query string false "Старое имя параметра sort"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} dto.ProviderListResponse
// @Router /service-providers [get]
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	var filter listing.ProviderFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.providerService.List(db, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProvider godoc
// @Summary Профиль исполнителя
// @Description Документы верификации скрыты; настройки видит только владелец.
// @Tags service-providers
// @Produce json
// @Param id path string true "ID исполнителя"
// @Success 200 {object} dto.ProviderResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /service-providers/{id} [get]
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	id := c.Param("id")
	db := h.GetDB(c)

	provider, err := h.providerService.GetByID(db, id, h.IsOwner(c, auth.RoleProvider, id))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}

// CreateProvider godoc
// @Summary Публичная регистрация исполнителя
// @Tags service-providers
// @Accept json
// @Produce json
// @Param request body dto.CreateProviderRequest true "Профиль"
// @Success 201 {object} dto.ProviderResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /service-providers [post]
func (h *ProviderHandler) CreateProvider(c *gin.Context) {
	var req dto.CreateProviderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	provider, err := h.providerService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "provider": provider})
}

// UpdateProvider godoc
// @Summary Обновление профиля (владелец)
// @Tags service-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID исполнителя"
// @Param request body dto.UpdateProviderRequest true "Изменяемые поля"
// @Success 200 {object} dto.ProviderResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /service-providers/{id} [put]
func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	var req dto.UpdateProviderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	provider, err := h.providerService.Update(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "provider": provider})
}

// DeleteProvider godoc
// @Summary Деактивация профиля (владелец)
// @Tags service-providers
// @Security BearerAuth
// @Param id path string true "ID исполнителя"
// @Success 200 {object} map[string]interface{}
// @Router /service-providers/{id} [delete]
func (h *ProviderHandler) DeleteProvider(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.providerService.Delete(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Provider deactivated successfully"})
}

// AddStory godoc
// @Summary Добавить историю работы (владелец)
// @Tags service-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID исполнителя"
// @Param request body dto.CreateStoryRequest true "История"
// @Success 201 {object} models.Story
// @Router /service-providers/{id}/stories [post]
func (h *ProviderHandler) AddStory(c *gin.Context) {
	var req dto.CreateStoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	story, err := h.providerService.AddStory(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "story": story})
}

// ListStories godoc
// @Summary Истории исполнителя (новые первыми)
// @Tags service-providers
// @Produce json
// @Param id path string true "ID исполнителя"
// @Success 200 {array} models.Story
// @Router /service-providers/{id}/stories [get]
func (h *ProviderHandler) ListStories(c *gin.Context) {
	db := h.GetDB(c)

	stories, err := h.providerService.ListStories(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stories": stories})
}

// GetDashboard godoc
// @Summary Дашборд исполнителя (владелец)
// @Tags service-providers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID исполнителя"
// @Success 200 {object} dto.DashboardResponse
// @Router /service-providers/{id}/dashboard [get]
func (h *ProviderHandler) GetDashboard(c *gin.Context) {
	db := h.GetDB(c)

	dashboard, err := h.providerService.Dashboard(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *ProviderHandler) UpdatePreferences(c *gin.Context) {
	var prefs models.ProviderPreferences
	if !h.BindAndValidate_JSON(c, &prefs) {
		return
	}

	db := h.GetDB(c)

	updated, err := h.providerService.UpdatePreferences(db, c.Param("id"), &prefs)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": updated})
}

func (h *ProviderHandler) UpdateOnlineStatus(c *gin.Context) {
	var req dto.OnlineStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.providerService.SetOnlineStatus(db, c.Param("id"), *req.IsOnline); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isOnline": *req.IsOnline})
}

// RateProvider godoc
// @Summary Оценка исполнителя
// @Tags service-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID исполнителя"
// @Param request body dto.RatingRequest true "Оценка 1..5"
// @Success 200 {object} dto.RatingResponse
// @Failure 400 {object} apperrors.ErrorResponse "Нельзя оценить себя"
// @Router /service-providers/{id}/ratings [post]
func (h *ProviderHandler) RateProvider(c *gin.Context) {
	claims, ok := h.GetClaims(c)
	if !ok {
		return
	}

	var req dto.RatingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	rating, err := h.providerService.Rate(db, c.Param("id"), claims.UserID, req.Stars)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{Success: true, Rating: *rating})
}
