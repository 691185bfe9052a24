package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"
	"fursa_backend/internal/repositories"
	"fursa_backend/internal/services/dto"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// fakeProviderRepo - репозиторий в памяти; условия Query не интерпретируются
type fakeProviderRepo struct {
	mu        sync.Mutex
	items     map[string]*models.ServiceProvider
	lastQuery listing.Query
	lastPage  listing.Page
	suggested int
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{items: map[string]*models.ServiceProvider{}}
}

func (r *fakeProviderRepo) Create(_ *gorm.DB, p *models.ServiceProvider) error {
	if err := r.CheckUnique(nil, p.Email, p.Phone, ""); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProviderRepo) FindByID(_ *gorm.DB, id string) (*models.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrProviderNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProviderRepo) FindByEmail(_ *gorm.DB, email string) (*models.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrProviderNotFound
}

func (r *fakeProviderRepo) CheckUnique(_ *gorm.DB, email, phone, excludeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		if id == excludeID {
			continue
		}
		if email != "" && p.Email == email {
			return repositories.ErrEmailTaken
		}
		if phone != "" && p.Phone == phone {
			return repositories.ErrPhoneTaken
		}
	}
	return nil
}

func (r *fakeProviderRepo) List(_ *gorm.DB, q listing.Query, page listing.Page) ([]models.ServiceProvider, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery, r.lastPage = q, page

	var out []models.ServiceProvider
	for _, p := range r.items {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := int64(len(out))
	if page.Offset() >= len(out) {
		return []models.ServiceProvider{}, total, nil
	}
	out = out[page.Offset():]
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, total, nil
}

func (r *fakeProviderRepo) Update(_ *gorm.DB, id string, updates map[string]interface{}) error {
	if phone, ok := updates["phone"].(string); ok {
		if err := r.CheckUnique(nil, "", phone, id); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return repositories.ErrProviderNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			p.Name = v.(string)
		case "phone":
			p.Phone = v.(string)
		case "location":
			p.Location = v.(string)
		case "description":
			p.Description = v.(string)
		case "skills":
			p.Skills = v.(pq.StringArray)
		case "min_price":
			f := v.(float64)
			p.MinPrice = &f
		case "max_price":
			f := v.(float64)
			p.MaxPrice = &f
		case "is_active":
			p.IsActive = v.(bool)
		case "is_online":
			p.IsOnline = v.(bool)
		case "preferences":
			raw, _ := json.Marshal(v)
			_ = json.Unmarshal(raw, &p.Preferences)
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProviderRepo) UpdateLocked(_ *gorm.DB, id string, fn func(p *models.ServiceProvider) error) (*models.ServiceProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrProviderNotFound
	}
	cp := *p
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.items[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeProviderRepo) TouchLastSeen(_ *gorm.DB, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		p.LastSeen = at
	}
	return nil
}

func (r *fakeProviderRepo) SetOnline(_ *gorm.DB, id string, online bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return repositories.ErrProviderNotFound
	}
	p.IsOnline, p.LastSeen = online, at
	return nil
}

func (r *fakeProviderRepo) Deactivate(db *gorm.DB, id string) error {
	return r.Update(db, id, map[string]interface{}{"is_active": false, "is_online": false})
}

func (r *fakeProviderRepo) Suggest(_ *gorm.DB, term string, limit int) (*repositories.Suggestions, error) {
	r.mu.Lock()
	r.suggested++
	r.mu.Unlock()
	return &repositories.Suggestions{
		ServiceTypes: []string{"plumber"},
		Locations:    []string{"Nairobi"},
		Skills:       []string{"pipe fitting"},
	}, nil
}

func (r *fakeProviderRepo) MarkStaleOffline(_ *gorm.DB, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.items {
		if p.IsOnline && p.LastSeen.Before(before) {
			p.IsOnline = false
			n++
		}
	}
	return n, nil
}

type fakeTalentRepo struct {
	mu          sync.Mutex
	items       map[string]*models.Talent
	lastPage    listing.Page
	filterCalls int
}

func newFakeTalentRepo() *fakeTalentRepo {
	return &fakeTalentRepo{items: map[string]*models.Talent{}}
}

func (r *fakeTalentRepo) Create(_ *gorm.DB, t *models.Talent) error {
	if err := r.CheckUnique(nil, t.Email, t.Phone, ""); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTalentRepo) FindByID(_ *gorm.DB, id string) (*models.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrTalentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTalentRepo) FindByEmail(_ *gorm.DB, email string) (*models.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.items {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrTalentNotFound
}

func (r *fakeTalentRepo) CheckUnique(_ *gorm.DB, email, phone, excludeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.items {
		if id == excludeID {
			continue
		}
		if email != "" && t.Email == email {
			return repositories.ErrEmailTaken
		}
		if phone != "" && t.Phone == phone {
			return repositories.ErrPhoneTaken
		}
	}
	return nil
}

func (r *fakeTalentRepo) List(_ *gorm.DB, _ listing.Query, page listing.Page) ([]models.Talent, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page
	out := make([]models.Talent, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTalentRepo) Update(_ *gorm.DB, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return repositories.ErrTalentNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			t.Name = v.(string)
		case "location_city":
			t.Location.City = v.(string)
		case "location_county":
			t.Location.County = v.(string)
		case "location_country":
			t.Location.Country = v.(string)
		case "location_full":
			t.Location.Full = v.(string)
		}
	}
	return nil
}

func (r *fakeTalentRepo) UpdateLocked(_ *gorm.DB, id string, fn func(t *models.Talent) error) (*models.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrTalentNotFound
	}
	cp := *t
	if err := fn(&cp); err != nil {
		return nil, err
	}
	r.items[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeTalentRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrTalentNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTalentRepo) FilterOptions(_ *gorm.DB) (*repositories.FilterOptions, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filterCalls++
	opts := &repositories.FilterOptions{Categories: []string{"Artisans", "Creatives"}}
	opts.Locations.Countries = []string{"Kenya"}
	opts.Locations.Cities = []string{"Mombasa", "Nairobi"}
	return opts, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	providers []string
	talents   []string
}

func (n *recordingNotifier) WelcomeProvider(p *models.ServiceProvider) {
	n.mu.Lock()
	n.providers = append(n.providers, p.Email)
	n.mu.Unlock()
}

func (n *recordingNotifier) WelcomeTalent(t *models.Talent) {
	n.mu.Lock()
	n.talents = append(n.talents, t.Email)
	n.mu.Unlock()
}

// memoryStorage - хранилище в памяти
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failOn  int // номер вызова Save, который вернет ошибку (с 1)
	calls   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memoryStorage) Save(_ context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failOn > 0 && s.calls == s.failOn {
		return errors.New("bucket unavailable")
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) GetURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *memoryStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// mapCache - кэш в памяти с JSON-сериализацией, как у redis
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, ns, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	raw, ok := c.data[ns+":"+key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, ns, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[ns+":"+key] = raw
	c.mu.Unlock()
	return nil
}

func (c *mapCache) Delete(_ context.Context, ns, key string) error {
	c.mu.Lock()
	delete(c.data, ns+":"+key)
	c.mu.Unlock()
	return nil
}

func fileInput(name, contentType string, data []byte) *dto.FileInput {
	return &dto.FileInput{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func ptr[T any](v T) *T { return &v }
