package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

// ---- auth ----

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, email, password, userType string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
		"userType": userType,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*AuthResponse, error) {
	in, err := jsonPayload(body)
	if err != nil {
		return nil, err
	}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, path, nil, in, &resp); err != nil {
		return nil, err
	}
	if err := c.SetSession(resp.Token, resp.User); err != nil {
		return &resp, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout уведомляет сервер (ошибки игнорируются) и всегда очищает сессию
func (c *Client) Logout(ctx context.Context) {
	_ = c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.ClearSession()
}

// ---- service providers ----

// ProviderInput - публичная регистрация исполнителя
type ProviderInput struct {
	Name         string   `json:"name"`
	BusinessName string   `json:"businessName,omitempty"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceType  string   `json:"serviceType"`
	Location     string   `json:"location"`
	Experience   string   `json:"experience"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	ProfilePhoto string   `json:"profilePhoto,omitempty"`
}

func (f ProviderFilter) values() url.Values {
	v := url.Values{}
	setString(v, "serviceType", f.ServiceType)
	setString(v, "location", f.Location)
	setFloat(v, "minRating", f.MinRating)
	setFloat(v, "minPrice", f.MinPrice)
	setFloat(v, "maxPrice", f.MaxPrice)
	if len(f.Skills) > 0 {
		v.Set("skills", strings.Join(f.Skills, ","))
	}
	setBool(v, "verified", f.Verified)
	setString(v, "search", f.Search)
	setString(v, "sort", f.Sort)
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	return v
}

func (c *Client) ListProviders(ctx context.Context, filter ProviderFilter) (*ProviderList, error) {
	var resp ProviderList
	if err := c.do(ctx, http.MethodGet, "/service-providers", filter.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProvider(ctx context.Context, id string) (*Provider, error) {
	var resp struct {
		Provider Provider `json:"provider"`
	}
	if err := c.do(ctx, http.MethodGet, "/service-providers/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Provider, nil
}

func (c *Client) CreateProvider(ctx context.Context, in ProviderInput) (*Provider, error) {
	return c.writeProvider(ctx, http.MethodPost, "/service-providers", in)
}

// UpdateProvider - частичное обновление; ключи как в JSON профиля
func (c *Client) UpdateProvider(ctx context.Context, id string, changes map[string]interface{}) (*Provider, error) {
	return c.writeProvider(ctx, http.MethodPut, "/service-providers/"+url.PathEscape(id), changes)
}

func (c *Client) writeProvider(ctx context.Context, method, path string, body interface{}) (*Provider, error) {
	in, err := jsonPayload(body)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Provider Provider `json:"provider"`
	}
	if err := c.do(ctx, method, path, nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Provider, nil
}

func (c *Client) DeleteProvider(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/service-providers/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AddStory(ctx context.Context, providerID string, story Story) (*Story, error) {
	in, err := jsonPayload(story)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Story Story `json:"story"`
	}
	if err := c.do(ctx, http.MethodPost, "/service-providers/"+url.PathEscape(providerID)+"/stories", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Story, nil
}

func (c *Client) ListStories(ctx context.Context, providerID string) ([]Story, error) {
	var resp struct {
		Stories []Story `json:"stories"`
	}
	if err := c.do(ctx, http.MethodGet, "/service-providers/"+url.PathEscape(providerID)+"/stories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

func (c *Client) Dashboard(ctx context.Context, providerID string) (*Dashboard, error) {
	var resp Dashboard
	if err := c.do(ctx, http.MethodGet, "/service-providers/"+url.PathEscape(providerID)+"/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdatePreferences(ctx context.Context, providerID string, prefs map[string]interface{}) (map[string]interface{}, error) {
	in, err := jsonPayload(prefs)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Preferences map[string]interface{} `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodPut, "/service-providers/"+url.PathEscape(providerID)+"/preferences", nil, in, &resp); err != nil {
		return nil, err
	}
	return resp.Preferences, nil
}

func (c *Client) SetOnlineStatus(ctx context.Context, providerID string, online bool) error {
	in, err := jsonPayload(map[string]bool{"isOnline": online})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/service-providers/"+url.PathEscape(providerID)+"/online-status", nil, in, nil)
}

func (c *Client) RateProvider(ctx context.Context, providerID string, stars int) (*Rating, error) {
	return c.rate(ctx, "/service-providers/"+url.PathEscape(providerID)+"/ratings", stars)
}

func (c *Client) rate(ctx context.Context, path string, stars int) (*Rating, error) {
	in, err := jsonPayload(map[string]int{"stars": stars})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Rating Rating `json:"rating"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Rating, nil
}

// ---- talents ----

// TalentInput - публичная регистрация таланта; Location - "город, округ, страна"
type TalentInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Skill          string `json:"skill"`
	Category       string `json:"category"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	ProfileImage   string `json:"profileImage,omitempty"`
	VoiceIntroURL  string `json:"voiceIntroUrl,omitempty"`
	GlobalShipping bool   `json:"globalShipping,omitempty"`
}

func (f TalentFilter) values(queryKey string) url.Values {
	v := url.Values{}
	setString(v, queryKey, f.Query)
	setString(v, "category", f.Category)
	setString(v, "location", f.Location)
	setBool(v, "verified", f.Verified)
	setFloat(v, "minRating", f.MinRating)
	setString(v, "sort", f.Sort)
	setInt(v, "page", f.Page)
	setInt(v, "limit", f.Limit)
	return v
}

func (c *Client) ListTalents(ctx context.Context, filter TalentFilter) (*TalentList, error) {
	var resp TalentList
	if err := c.do(ctx, http.MethodGet, "/talents", filter.values("search"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTalent(ctx context.Context, id string) (*Talent, error) {
	var resp struct {
		Talent Talent `json:"talent"`
	}
	if err := c.do(ctx, http.MethodGet, "/talents/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Talent, nil
}

func (c *Client) CreateTalent(ctx context.Context, in TalentInput) (*Talent, error) {
	return c.writeTalent(ctx, http.MethodPost, "/talents", in)
}

func (c *Client) UpdateTalent(ctx context.Context, id string, changes map[string]interface{}) (*Talent, error) {
	return c.writeTalent(ctx, http.MethodPut, "/talents/"+url.PathEscape(id), changes)
}

func (c *Client) writeTalent(ctx context.Context, method, path string, body interface{}) (*Talent, error) {
	in, err := jsonPayload(body)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Talent Talent `json:"talent"`
	}
	if err := c.do(ctx, method, path, nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Talent, nil
}

func (c *Client) DeleteTalent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/talents/"+url.PathEscape(id), nil, nil, nil)
}

// AddPortfolioItem: с файлом - multipart, без файла - JSON (imageURL может быть пустым)
func (c *Client) AddPortfolioItem(ctx context.Context, talentID, title, description, imageURL string, file *File) (*PortfolioItem, error) {
	var (
		in  *payload
		err error
	)
	if file != nil {
		in, err = multipartPayload(map[string]string{"title": title, "description": description}, []File{*file})
	} else {
		in, err = jsonPayload(map[string]string{"title": title, "description": description, "imageUrl": imageURL})
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Item PortfolioItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/talents/"+url.PathEscape(talentID)+"/portfolio", nil, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (c *Client) RateTalent(ctx context.Context, talentID string, stars int) (*Rating, error) {
	return c.rate(ctx, "/talents/"+url.PathEscape(talentID)+"/ratings", stars)
}

// ---- search ----

func (c *Client) Search(ctx context.Context, filter TalentFilter) (*TalentList, error) {
	var resp TalentList
	if err := c.do(ctx, http.MethodGet, "/search", filter.values("q"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchFilters(ctx context.Context) (*SearchFilters, error) {
	var resp SearchFilters
	if err := c.do(ctx, http.MethodGet, "/search/filters", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions: запросы короче 2 символов не отправляются
func (c *Client) Suggestions(ctx context.Context, q string) (*Suggestions, error) {
	if len([]rune(strings.TrimSpace(q))) < 2 {
		return &Suggestions{ServiceTypes: []string{}, Locations: []string{}, Skills: []string{}}, nil
	}
	var resp struct {
		Suggestions Suggestions `json:"suggestions"`
	}
	if err := c.do(ctx, http.MethodGet, "/search/suggestions", url.Values{"q": {q}}, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Suggestions, nil
}

// ---- uploads ----

// File - файл для multipart-загрузки
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

func (c *Client) Upload(ctx context.Context, files ...File) ([]UploadedFile, error) {
	in, err := multipartPayload(nil, files)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Files []UploadedFile `json:"files"`
	}
	if err := c.do(ctx, http.MethodPost, "/upload", nil, in, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// multipartPayload собирает тело целиком, чтобы его можно было отправить повторно
func multipartPayload(fields map[string]string, files []File) (*payload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("client: read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &payload{body: buf.Bytes(), contentType: mw.FormDataContentType()}, nil
}

// Health - GET /health без кэша
func (c *Client) Health(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, c.baseURL+"/health", nil, c.retries)
	return err
}

// ---- query helpers ----

func setString(v url.Values, key, value string) {
	if s := strings.TrimSpace(value); s != "" {
		v.Set(key, s)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}

func setFloat(v url.Values, key string, value *float64) {
	if value != nil {
		v.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

func setBool(v url.Values, key string, value *bool) {
	if value != nil {
		v.Set(key, strconv.FormatBool(*value))
	}
}
