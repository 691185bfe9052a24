package models

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestServiceProvider_ProfileCompleteness(t *testing.T) {
	p := ServiceProvider{
		Name:        "Amina",
		Email:       "amina@example.com",
		Phone:       "+254700000001",
		ServiceType: ServiceTypeElectrician,
		Location:    "Nairobi",
		Experience:  Experience3to5,
	}
	// 6 из 9
	assert.Equal(t, 67, p.ProfileCompleteness())

	p.Description = "Solar installs"
	p.Skills = pq.StringArray{"wiring"}
	p.ProfilePhoto = "https://cdn/x.jpg"
	assert.Equal(t, 100, p.ProfileCompleteness())
}

func TestServiceProvider_ApplyDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := ServiceProvider{Name: "Juma Works", Email: "  Juma@Example.COM "}
	p.ApplyDefaults(now)

	assert.Equal(t, "juma@example.com", p.Email)
	assert.Equal(t, "Juma Works", p.BusinessName)
	assert.Equal(t, "2 hours", p.Stats.ResponseTime)
	assert.Equal(t, 100.0, p.Stats.CompletionRate)
	assert.Equal(t, "Africa/Nairobi", p.Availability.Data().Timezone)
	assert.True(t, p.Availability.Data().Schedule["monday"].Available)
	assert.False(t, p.Availability.Data().Schedule["sunday"].Available)
	assert.True(t, p.Preferences.Data().Notifications.Email)
	assert.True(t, p.IsActive)
	assert.Equal(t, now, p.JoinedDate)
	assert.NotNil(t, p.Stories)
}

func TestParseLocation(t *testing.T) {
	loc := ParseLocation("Kisumu, Kisumu County")
	assert.Equal(t, TalentLocation{City: "Kisumu", County: "Kisumu County", Country: "Kenya", Full: "Kisumu, Kisumu County"}, loc)

	loc = ParseLocation("Lagos, Lagos, Nigeria")
	assert.Equal(t, "Nigeria", loc.Country)

	loc = ParseLocation("")
	assert.Equal(t, "Kenya", loc.Country)
	assert.Empty(t, loc.City)
}

func TestTalent_ApplyDefaults(t *testing.T) {
	tl := Talent{Email: "Sarah@Example.com", Location: TalentLocation{City: "Accra", Country: "Ghana"}}
	tl.ApplyDefaults()

	assert.Equal(t, "sarah@example.com", tl.Email)
	assert.Equal(t, "Accra, Ghana", tl.Location.Full)
	assert.Equal(t, "english", tl.VoiceLanguage)
	assert.Equal(t, AvailabilityAvailable, tl.AvailabilityStatus)
}
