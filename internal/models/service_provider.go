package models

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ServiceProvider struct {
	BaseModel
	Name         string      `gorm:"size:100;not null" json:"name"`
	BusinessName string      `gorm:"size:150" json:"businessName"`
	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string      `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	PasswordHash string      `gorm:"size:255" json:"-"`
	ServiceType  ServiceType `gorm:"size:32;index;not null" json:"serviceType"`
	Location     string      `gorm:"size:255;index;not null" json:"location"`
	Experience   Experience  `gorm:"size:8;not null" json:"experience"`
	Description  string      `gorm:"type:text" json:"description"`

	Skills   pq.StringArray `gorm:"type:text[]" json:"skills"`
	MinPrice *float64       `gorm:"index" json:"minPrice,omitempty"`
	MaxPrice *float64       `json:"maxPrice,omitempty"`

	ProfilePhoto string `gorm:"size:512" json:"profilePhoto,omitempty"`

	Rating       Rating                                  `gorm:"embedded;embeddedPrefix:rating_" json:"rating"`
	Stats        ProviderStats                           `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Availability datatypes.JSONType[Availability]        `json:"availability"`
	SocialLinks  datatypes.JSONType[SocialLinks]         `json:"socialLinks"`
	Verification Verification                            `gorm:"embedded;embeddedPrefix:verification_" json:"verificationStatus"`
	Preferences  datatypes.JSONType[ProviderPreferences] `json:"preferences"`

	IsActive bool      `gorm:"not null;default:true;index" json:"isActive"`
	IsOnline bool      `gorm:"not null;default:false" json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`

	Stories    datatypes.JSONSlice[Story] `json:"stories"`
	JoinedDate time.Time                  `json:"joinedDate"`
}

type ProviderStats struct {
	CompletedJobs  int64   `gorm:"column:completed_jobs;not null;default:0" json:"completedJobs"`
	ResponseTime   string  `gorm:"column:response_time;size:32;default:'2 hours'" json:"responseTime"`
	CompletionRate float64 `gorm:"column:completion_rate;not null;default:100" json:"completionRate"`
	TotalEarnings  float64 `gorm:"column:total_earnings;not null;default:0" json:"totalEarnings"`
}

type Verification struct {
	IsVerified bool                                      `gorm:"column:is_verified;not null;default:false;index" json:"isVerified"`
	VerifiedBy string                                    `gorm:"column:verified_by;size:100" json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time                                `gorm:"column:verified_at" json:"verifiedAt,omitempty"`
	Documents  datatypes.JSONSlice[VerificationDocument] `gorm:"column:documents" json:"documents,omitempty"`
}

type VerificationDocument struct {
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Availability struct {
	Schedule            map[string]DaySchedule `json:"schedule"`
	Timezone            string                 `json:"timezone"`
	GeneralAvailability GeneralAvailability    `json:"generalAvailability"`
}

type DaySchedule struct {
	Available bool      `json:"available"`
	StartTime string    `json:"startTime,omitempty"`
	EndTime   string    `json:"endTime,omitempty"`
	Booked    []Booking `json:"booked,omitempty"`
}

type Booking struct {
	StartTime  string        `json:"startTime"`
	EndTime    string        `json:"endTime"`
	CustomerID string        `json:"customerId"`
	Status     BookingStatus `json:"status"`
}

type ProviderPreferences struct {
	Notifications struct {
		Email bool `json:"email"`
		SMS   bool `json:"sms"`
		Push  bool `json:"push"`
	} `json:"notifications"`
	Privacy struct {
		ShowPhone    bool `json:"showPhone"`
		ShowEmail    bool `json:"showEmail"`
		ShowLocation bool `json:"showLocation"`
	} `json:"privacy"`
	WorkPreferences struct {
		MaxTravelDistance int      `json:"maxTravelDistance"`
		PreferredJobTypes []string `json:"preferredJobTypes,omitempty"`
		MinJobValue       float64  `json:"minJobValue"`
	} `json:"workPreferences"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DefaultAvailability - будни 08:00-17:00, Africa/Nairobi
func DefaultAvailability() Availability {
	a := Availability{
		Schedule:            make(map[string]DaySchedule, len(weekdays)),
		Timezone:            "Africa/Nairobi",
		GeneralAvailability: GeneralAvailabilityFlexible,
	}
	for _, d := range weekdays {
		day := DaySchedule{Available: d != "saturday" && d != "sunday"}
		if day.Available {
			day.StartTime, day.EndTime = "08:00", "17:00"
		}
		a.Schedule[d] = day
	}
	return a
}

func DefaultProviderPreferences() ProviderPreferences {
	var p ProviderPreferences
	p.Notifications.Email = true
	p.Notifications.SMS = true
	p.Notifications.Push = true
	p.Privacy.ShowPhone = true
	p.Privacy.ShowLocation = true
	p.WorkPreferences.MaxTravelDistance = 50
	return p
}

// ApplyDefaults заполняет поля, которые не пришли при регистрации
func (p *ServiceProvider) ApplyDefaults(now time.Time) {
	p.Email = NormalizeEmail(p.Email)
	if p.BusinessName == "" {
		p.BusinessName = p.Name
	}
	if p.Stats.ResponseTime == "" {
		p.Stats.ResponseTime = "2 hours"
	}
	if p.Stats.CompletionRate == 0 {
		p.Stats.CompletionRate = 100
	}
	if p.Availability.Data().Timezone == "" {
		p.Availability = datatypes.NewJSONType(DefaultAvailability())
	}
	if reflect.ValueOf(p.Preferences.Data()).IsZero() {
		p.Preferences = datatypes.NewJSONType(DefaultProviderPreferences())
	}
	if p.Skills == nil {
		p.Skills = pq.StringArray{}
	}
	if p.Stories == nil {
		p.Stories = datatypes.JSONSlice[Story]{}
	}
	if p.JoinedDate.IsZero() {
		p.JoinedDate = now
	}
	p.LastSeen = now
	p.IsActive = true
}

// ProfileCompleteness - процент заполненности профиля (0..100)
func (p *ServiceProvider) ProfileCompleteness() int {
	required := []string{p.Name, p.Email, p.Phone, string(p.ServiceType), p.Location, string(p.Experience), p.Description}
	filled := 0
	for _, v := range required {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	if len(p.Skills) > 0 {
		filled++
	}
	if p.ProfilePhoto != "" {
		filled++
	}
	return int(math.Round(float64(filled) / float64(len(required)+2) * 100))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
