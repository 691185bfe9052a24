package handlers

import (
	"net/http"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/listing"
	"fursa_backend/internal/middleware"
	"fursa_backend/internal/services"
	"fursa_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TalentHandler struct {
	*BaseHandler
	talentService services.TalentService
	tokens        *auth.TokenManager
}

func NewTalentHandler(base *BaseHandler, talentService services.TalentService, tokens *auth.TokenManager) *TalentHandler {
	return &TalentHandler{
		BaseHandler:   base,
		talentService: talentService,
		tokens:        tokens,
	}
}

func (h *TalentHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/talents")
	{
		public.GET("", h.ListTalents)
		public.GET("/:id", h.GetTalent)
		public.POST("", h.CreateTalent)
	}

	rated := r.Group("/talents")
	rated.Use(middleware.AuthMiddleware(h.tokens), middleware.RequirePermission(auth.PermRatingsWrite))
	{
		rated.POST("/:id/ratings", h.RateTalent)
	}

	owner := r.Group("/talents")
	owner.Use(
		middleware.AuthMiddleware(h.tokens),
		middleware.RequireRoles(auth.RoleTalent),
		middleware.RequireOwner(auth.RoleTalent, "id"),
	)
	{
		profileWrite := middleware.RequirePermission(auth.PermProfileWriteSelf)
		owner.PUT("/:id", profileWrite, h.UpdateTalent)
		owner.DELETE("/:id", profileWrite, h.DeleteTalent)
		owner.POST("/:id/portfolio", middleware.RequirePermission(auth.PermPortfolioWriteSelf), h.AddPortfolioItem)
	}
}

// ListTalents godoc
// @Summary Список талантов
// @Tags talents
// @Produce json
// @Param category query string false "Категория (all - без фильтра)"
// @Param location query string false "Город, округ или страна"
// @Param search query string false "Полнотекстовый поиск"
// @Param verified query string false "true | false"
// @Param minRating query number false "Минимальный рейтинг"
// @Param sort query string false "rating | newest | name"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} dto.TalentListResponse
// @Router /talents [get]
func (h *TalentHandler) ListTalents(c *gin.Context) {
	var filter listing.TalentFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.talentService.List(db, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTalent godoc
// @Summary Профиль таланта
// @Tags talents
// @Produce json
// @Param id path string true "ID таланта"
// @Success 200 {object} models.Talent
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /talents/{id} [get]
func (h *TalentHandler) GetTalent(c *gin.Context) {
	db := h.GetDB(c)

	talent, err := h.talentService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "talent": talent})
}

// CreateTalent godoc
// @Summary Публичная регистрация таланта
// @Description location - "город, округ, страна"; страна по умолчанию Kenya
// @Tags talents
// @Accept json
// @Produce json
// @Param request body dto.CreateTalentRequest true "Профиль"
// @Success 201 {object} models.Talent
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /talents [post]
func (h *TalentHandler) CreateTalent(c *gin.Context) {
	var req dto.CreateTalentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	talent, err := h.talentService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "talent": talent})
}

func (h *TalentHandler) UpdateTalent(c *gin.Context) {
	var req dto.UpdateTalentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	talent, err := h.talentService.Update(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "talent": talent})
}

func (h *TalentHandler) DeleteTalent(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.talentService.Delete(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Talent deleted successfully"})
}

// AddPortfolioItem godoc
// @Summary Добавить работу в портфолио (владелец)
// @Description multipart: title, description, files (первый файл загружается) или JSON с imageUrl/videoUrl
// @Tags talents
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID таланта"
// @Param title formData string true "Название"
// @Param description formData string false "Описание"
// @Param files formData file false "Изображение или видео"
// @Success 201 {object} models.PortfolioItem
// @Router /talents/{id}/portfolio [post]
func (h *TalentHandler) AddPortfolioItem(c *gin.Context) {
	var req dto.PortfolioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	item, err := h.talentService.AddPortfolioItem(c.Request.Context(), db, c.Param("id"), &req, FormFiles(c, "files"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

func (h *TalentHandler) RateTalent(c *gin.Context) {
	claims, ok := h.GetClaims(c)
	if !ok {
		return
	}

	var req dto.RatingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	rating, err := h.talentService.Rate(db, c.Param("id"), claims.UserID, req.Stars)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{Success: true, Rating: *rating})
}
