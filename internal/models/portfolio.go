package models

import "time"

// Story - запись о выполненной работе в профиле исполнителя
type Story struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Skills        []string       `json:"skills"`
	ProjectPhotos []ProjectPhoto `json:"projectPhotos"`
	VoiceIntro    *VoiceIntro    `json:"voiceIntro,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type ProjectPhoto struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

type VoiceIntro struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"` // секунды
	Language string  `json:"language"`
}

// PortfolioItem - работа в портфолио таланта
type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
