package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"fursa_backend/database"
	"fursa_backend/internal/auth"
	"fursa_backend/internal/config"
	"fursa_backend/internal/logger"
	"fursa_backend/internal/models"
	"fursa_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// пароль всех демо-аккаунтов
const demoPassword = "password123"

func price(v float64) *float64 { return &v }

func sampleTalents(now time.Time) []*models.Talent {
	item := func(title, description string) models.PortfolioItem {
		return models.PortfolioItem{ID: uuid.NewString(), Title: title, Description: description, CreatedAt: now}
	}
	return []*models.Talent{
		{
			Name:        "Lydian Kamau",
			Email:       "lydian.kamau@example.com",
			Phone:       "+254712345678",
			Skill:       "Beadwork Artist",
			Category:    models.CategoryArtisans,
			Location:    models.TalentLocation{City: "Nairobi", County: "Nairobi", Country: "Kenya", Full: "Nairobi, Kenya"},
			Description: "Handcrafted African beaded jewelry using traditional techniques passed down through generations. Specializing in custom designs for special occasions.",
			Verified:    true,
			Rating:      models.Rating{Breakdown: models.RatingBreakdown{Five: 14, Four: 3}},
			Portfolio: datatypes.JSONSlice[models.PortfolioItem]{
				item("Traditional Necklace", "Colorful beaded necklace"),
				item("Maasai Bracelet", "Traditional Maasai beadwork"),
			},
		},
		{
			Name:        "John Ochieng",
			Email:       "john.ochieng@example.com",
			Phone:       "+254723456789",
			Skill:       "Wood Carver",
			Category:    models.CategoryArtisans,
			Location:    models.TalentLocation{City: "Kisumu", County: "Kisumu", Country: "Kenya", Full: "Kisumu, Kenya"},
			Description: "Traditional wood carving with modern artistic touches. Creating functional and decorative pieces.",
			Verified:    true,
			Rating:      models.Rating{Breakdown: models.RatingBreakdown{Five: 6, Four: 6}},
			Portfolio: datatypes.JSONSlice[models.PortfolioItem]{
				item("Wooden Sculpture", "Hand-carved animal sculpture"),
				item("Decorative Bowl", "Traditional wooden bowl"),
			},
		},
		{
			Name:        "Sarah Nyong",
			Email:       "sarah.nyong@example.com",
			Phone:       "+234801234567",
			Skill:       "Fashion Designer",
			Category:    models.CategoryCreatives,
			Location:    models.TalentLocation{City: "Lagos", County: "Lagos", Country: "Nigeria", Full: "Lagos, Nigeria"},
			Description: "Contemporary African fashion with traditional influences. Sustainable fashion practices.",
			Verified:    true,
			Rating:      models.Rating{Breakdown: models.RatingBreakdown{Five: 14, Four: 9}},
			Portfolio: datatypes.JSONSlice[models.PortfolioItem]{
				item("Ankara Dress", "Modern Ankara print dress"),
				item("Traditional Headwrap", "Colorful traditional headwrap"),
			},
		},
	}
}

func sampleProviders() []*models.ServiceProvider {
	return []*models.ServiceProvider{
		{
			Name:        "Peter Mwangi",
			Email:       "peter.mwangi@example.com",
			Phone:       "+254734567890",
			ServiceType: models.ServiceTypePlumber,
			Location:    "Nairobi, Kenya",
			Experience:  models.Experience5to10,
			Description: "Residential and commercial plumbing, leak repairs and water heater installation.",
			Skills:      pq.StringArray{"pipe fitting", "leak repair", "water heaters"},
			MinPrice:    price(1500),
			MaxPrice:    price(8000),
			Rating:      models.Rating{Breakdown: models.RatingBreakdown{Five: 20, Four: 5, Three: 1}},
		},
		{
			Name:         "Grace Wanjiru",
			BusinessName: "Bright Walls Painting",
			Email:        "grace.wanjiru@example.com",
			Phone:        "+254745678901",
			ServiceType:  models.ServiceTypePainter,
			Location:     "Mombasa, Kenya",
			Experience:   models.Experience3to5,
			Description:  "Interior and exterior painting with eco-friendly paints.",
			Skills:       pq.StringArray{"interior painting", "exterior painting", "wallpaper"},
			MinPrice:     price(3000),
			MaxPrice:     price(20000),
			Rating:       models.Rating{Breakdown: models.RatingBreakdown{Five: 8, Four: 4}},
		},
		{
			Name:        "Samuel Otieno",
			Email:       "samuel.otieno@example.com",
			Phone:       "+254756789012",
			ServiceType: models.ServiceTypeElectrician,
			Location:    "Kisumu, Kenya",
			Experience:  models.Experience10Plus,
			Description: "Certified electrician: wiring, solar installation and appliance repair.",
			Skills:      pq.StringArray{"wiring", "solar installation", "appliance repair"},
			MinPrice:    price(2000),
			Rating:      models.Rating{Breakdown: models.RatingBreakdown{Five: 30, Four: 2}},
		},
	}
}

func main() {
	reset := flag.Bool("reset", false, "delete existing demo accounts before seeding")
	flag.Parse()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(context.Background(), database.Options{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		logger.Fatal("Failed to hash demo password", "error", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, hash, *reset)
	})
	if err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}
	logger.Info("Database seeded", "password", demoPassword)
}

func seed(tx *gorm.DB, hash string, reset bool) error {
	now := time.Now().UTC()
	providerRepo := repositories.NewProviderRepository()
	talentRepo := repositories.NewTalentRepository()

	for _, t := range sampleTalents(now) {
		t.ApplyDefaults()
		existing, err := talentRepo.FindByEmail(tx, t.Email)
		switch {
		case err == nil && reset:
			if err := talentRepo.Delete(tx, existing.ID); err != nil {
				return err
			}
		case err == nil:
			logger.Info("Talent already exists, skipping", "email", t.Email)
			continue
		case !errors.Is(err, repositories.ErrTalentNotFound):
			return err
		}

		t.PasswordHash = hash
		t.Rating.Recalculate()
		if err := talentRepo.Create(tx, t); err != nil {
			return err
		}
		logger.Info("Talent created", "email", t.Email, "id", t.ID)
	}

	for _, p := range sampleProviders() {
		p.ApplyDefaults(now)
		existing, err := providerRepo.FindByEmail(tx, p.Email)
		switch {
		case err == nil && reset:
			if err := tx.Unscoped().Delete(&models.ServiceProvider{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		case err == nil:
			logger.Info("Provider already exists, skipping", "email", p.Email)
			continue
		case !errors.Is(err, repositories.ErrProviderNotFound):
			return err
		}

		p.PasswordHash = hash
		p.Rating.Recalculate()
		p.Stats.CompletedJobs = p.Rating.Count
		if err := providerRepo.Create(tx, p); err != nil {
			return err
		}
		logger.Info("Provider created", "email", p.Email, "id", p.ID)
	}
	return nil
}
