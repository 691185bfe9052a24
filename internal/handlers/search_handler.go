package handlers

import (
	"net/http"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/services"
	"fursa_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	{
		search.GET("", h.Search)
		search.GET("/filters", h.Filters)
		search.GET("/suggestions", h.Suggestions)
	}
}

// Search godoc
// @Summary Поиск талантов
// @Tags search
// @Produce json
// @Param q query string false "Поисковая строка"
// @Param category query string false "Категория"
// @Param location query string false "Локация"
// @Param verified query string false "true | false"
// @Param sort query string false "rating | newest | name"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы (по умолчанию 50)"
// @Success 200 {object} dto.SearchResponse
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var filter listing.TalentFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.searchService.Search(db, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Filters godoc
// @Summary Значения для фильтров поиска
// @Tags search
// @Produce json
// @Success 200 {object} dto.FiltersResponse
// @Router /search/filters [get]
func (h *SearchHandler) Filters(c *gin.Context) {
	db := h.GetDB(c)

	options, err := h.searchService.Filters(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FiltersResponse{Success: true, FilterOptions: *options})
}

// Suggestions godoc
// @Summary Подсказки по типам услуг, локациям и навыкам
// @Tags search
// @Produce json
// @Param q query string true "Не короче 2 символов"
// @Success 200 {object} dto.SuggestionsResponse
// @Router /search/suggestions [get]
func (h *SearchHandler) Suggestions(c *gin.Context) {
	db := h.GetDB(c)

	suggestions, err := h.searchService.Suggestions(c.Request.Context(), db, c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestionsResponse{Success: true, Suggestions: suggestions})
}
