package handlers

import (
	"net/http"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/middleware"
	"fursa_backend/internal/services"
	"fursa_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	tokens        *auth.TokenManager
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, tokens *auth.TokenManager) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		tokens:        tokens,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware(h.tokens), middleware.RequirePermission(auth.PermUploadsWrite))
	{
		upload.POST("", h.Upload)
	}
}

// Upload godoc
// @Summary Загрузка изображений и видео
// @Description До 10 файлов по 10 MB; изображения вписываются в 800x800
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Файлы"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse "Хранилище недоступно"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	claims, ok := h.GetClaims(c)
	if !ok {
		return
	}

	files, err := h.uploadService.UploadFiles(c.Request.Context(), claims.UserID, FormFiles(c, "files"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{Success: true, Files: files})
}
