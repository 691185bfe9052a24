package client

import "time"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

type AuthResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	User      User   `json:"user"`
	ExpiresIn int64  `json:"expiresIn"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	UserType string `json:"userType"`
	Location string `json:"location"`

	BusinessName string   `json:"businessName,omitempty"`
	ServiceType  string   `json:"serviceType,omitempty"`
	Experience   string   `json:"experience,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`

	Skill       string `json:"skill,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

type Rating struct {
	Average   float64          `json:"average"`
	Count     int64            `json:"count"`
	Breakdown map[string]int64 `json:"breakdown"`
}

type Story struct {
	ID            string                   `json:"id,omitempty"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Skills        []string                 `json:"skills,omitempty"`
	ProjectPhotos []map[string]interface{} `json:"projectPhotos,omitempty"`
	CreatedAt     time.Time                `json:"createdAt,omitempty"`
}

type Provider struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	BusinessName       string   `json:"businessName"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	ServiceType        string   `json:"serviceType"`
	Location           string   `json:"location"`
	Experience         string   `json:"experience"`
	Description        string   `json:"description"`
	Skills             []string `json:"skills"`
	MinPrice           *float64 `json:"minPrice,omitempty"`
	MaxPrice           *float64 `json:"maxPrice,omitempty"`
	ProfilePhoto       string   `json:"profilePhoto,omitempty"`
	Rating             Rating   `json:"rating"`
	VerificationStatus struct {
		IsVerified bool       `json:"isVerified"`
		VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	} `json:"verificationStatus"`
	Preferences         map[string]interface{} `json:"preferences,omitempty"`
	IsActive            bool                   `json:"isActive"`
	IsOnline            bool                   `json:"isOnline"`
	LastSeen            time.Time              `json:"lastSeen"`
	Stories             []Story                `json:"stories"`
	JoinedDate          time.Time              `json:"joinedDate"`
	ProfileCompleteness int                    `json:"profileCompleteness"`
}

// ProviderFilter - параметры списка исполнителей; пустые поля не передаются
type ProviderFilter struct {
	ServiceType string
	Location    string
	MinRating   *float64
	MinPrice    *float64
	MaxPrice    *float64
	Skills      []string
	Verified    *bool
	Search      string
	Sort        string
	Page        int
	Limit       int
}

type ProviderList struct {
	Success    bool                   `json:"success"`
	Providers  []Provider             `json:"providers"`
	Pagination Pagination             `json:"pagination"`
	Filters    map[string]interface{} `json:"filters"`
}

type Dashboard struct {
	Success  bool     `json:"success"`
	Provider Provider `json:"provider"`
	Stats    struct {
		TotalStories        int     `json:"totalStories"`
		CompletedJobs       int64   `json:"completedJobs"`
		TotalEarnings       float64 `json:"totalEarnings"`
		ResponseTime        string  `json:"responseTime"`
		Rating              Rating  `json:"rating"`
		ProfileCompleteness int     `json:"profileCompleteness"`
	} `json:"stats"`
	Notifications []struct {
		Type     string `json:"type"`
		Message  string `json:"message"`
		Priority string `json:"priority"`
	} `json:"notifications"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	County  string `json:"county,omitempty"`
	Country string `json:"country"`
	Full    string `json:"full"`
}

type PortfolioItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Talent struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	Skill              string          `json:"skill"`
	Category           string          `json:"category"`
	Location           Location        `json:"location"`
	Description        string          `json:"description"`
	ProfileImage       string          `json:"profileImage,omitempty"`
	VoiceIntroURL      string          `json:"voiceIntroUrl,omitempty"`
	Portfolio          []PortfolioItem `json:"portfolio"`
	Rating             Rating          `json:"rating"`
	Verified           bool            `json:"verified"`
	AvailabilityStatus string          `json:"availabilityStatus"`
	GlobalShipping     bool            `json:"globalShipping"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// TalentFilter - параметры списка и поиска талантов
type TalentFilter struct {
	Query     string // q (поиск) или search (список)
	Category  string
	Location  string
	Verified  *bool
	MinRating *float64
	Sort      string
	Page      int
	Limit     int
}

type TalentList struct {
	Success    bool       `json:"success"`
	Talents    []Talent   `json:"talents"`
	Total      int64      `json:"total,omitempty"`
	Pagination Pagination `json:"pagination"`
}

type SearchFilters struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
	Locations  struct {
		Countries []string `json:"countries"`
		Cities    []string `json:"cities"`
	} `json:"locations"`
}

type Suggestions struct {
	ServiceTypes []string `json:"serviceTypes"`
	Locations    []string `json:"locations"`
	Skills       []string `json:"skills"`
}

type UploadedFile struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Type     string `json:"type"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size"`
}
