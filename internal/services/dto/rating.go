package dto

import "fursa_backend/internal/models"

type RatingRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}

type RatingResponse struct {
	Success bool          `json:"success"`
	Rating  models.Rating `json:"rating"`
}
