package models

import (
	"strings"

	"gorm.io/datatypes"
)

const DefaultCountry = "Kenya"

type Talent struct {
	BaseModel
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Skill        string         `gorm:"size:100;not null" json:"skill"`
	Category     TalentCategory `gorm:"size:32;index;not null" json:"category"`
	Location     TalentLocation `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Description  string         `gorm:"type:text;not null" json:"description"`

	ProfileImage  string `gorm:"size:512" json:"profileImage,omitempty"`
	VoiceIntroURL string `gorm:"size:512" json:"voiceIntroUrl,omitempty"`
	VoiceLanguage string `gorm:"size:32;default:'english'" json:"voiceLanguage"`

	Portfolio   datatypes.JSONSlice[PortfolioItem] `json:"portfolio"`
	Rating      Rating                             `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Verified    bool                               `gorm:"not null;default:false;index" json:"verified"`
	VerifiedBy  string                             `gorm:"size:100" json:"verifiedBy,omitempty"`
	SocialLinks datatypes.JSONType[SocialLinks]    `json:"socialLinks"`

	AvailabilityStatus AvailabilityStatus `gorm:"size:16;default:'available'" json:"availabilityStatus"`
	GlobalShipping     bool               `gorm:"not null;default:false" json:"globalShipping"`
}

type TalentLocation struct {
	City    string `gorm:"column:city;size:100;index" json:"city,omitempty"`
	County  string `gorm:"column:county;size:100" json:"county,omitempty"`
	Country string `gorm:"column:country;size:100;index" json:"country"`
	Full    string `gorm:"column:full;size:255" json:"full"`
}

// ParseLocation разбирает "город, округ, страна"; страна по умолчанию Kenya
func ParseLocation(full string) TalentLocation {
	full = strings.TrimSpace(full)
	parts := strings.Split(full, ",")
	part := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}

	loc := TalentLocation{
		City:    part(0),
		County:  part(1),
		Country: part(2),
		Full:    full,
	}
	if loc.Country == "" {
		loc.Country = DefaultCountry
	}
	return loc
}

func (t *Talent) ApplyDefaults() {
	t.Email = NormalizeEmail(t.Email)
	if t.Location.Country == "" {
		t.Location.Country = DefaultCountry
	}
	if t.Location.Full == "" {
		var parts []string
		for _, p := range []string{t.Location.City, t.Location.County, t.Location.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		t.Location.Full = strings.Join(parts, ", ")
	}
	if t.VoiceLanguage == "" {
		t.VoiceLanguage = "english"
	}
	if t.AvailabilityStatus == "" {
		t.AvailabilityStatus = AvailabilityAvailable
	}
	if t.Portfolio == nil {
		t.Portfolio = datatypes.JSONSlice[PortfolioItem]{}
	}
}
