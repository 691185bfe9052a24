package dto

import (
	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"
	"fursa_backend/internal/repositories"
)

type SearchResponse struct {
	Success    bool            `json:"success"`
	Talents    []models.Talent `json:"talents"`
	Total      int64           `json:"total"`
	Pagination listing.Meta    `json:"pagination"`
}

type FiltersResponse struct {
	Success bool `json:"success"`
	repositories.FilterOptions
}

type SuggestionsResponse struct {
	Success     bool                      `json:"success"`
	Suggestions *repositories.Suggestions `json:"suggestions"`
}
