package services

import (
	"encoding/json"
	"testing"
	"time"

	"fursa_backend/internal/listing"
	"fursa_backend/internal/models"
	"fursa_backend/internal/services/dto"
	"fursa_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProviderFixture(t *testing.T) (*ProviderServiceImpl, *fakeProviderRepo, *models.ServiceProvider) {
	t.Helper()
	repo := newFakeProviderRepo()
	svc := NewProviderService(repo, &recordingNotifier{})

	resp, err := svc.Create(nil, &dto.CreateProviderRequest{
		Name:        "Juma Electricals",
		Email:       "Juma@Example.com",
		Phone:       "0711222333",
		ServiceType: models.ServiceTypeElectrician,
		Location:    "Kisumu",
		Experience:  models.Experience5to10,
		Description: "Wiring and solar installs",
		Skills:      []string{"wiring", "solar"},
		MinPrice:    ptr(500.0),
		MaxPrice:    ptr(2000.0),
	})
	require.NoError(t, err)
	return svc, repo, resp.ServiceProvider
}

func TestCreateProviderDefaults(t *testing.T) {
	_, _, p := newProviderFixture(t)

	assert.Equal(t, "juma@example.com", p.Email)
	assert.Equal(t, "Juma Electricals", p.BusinessName)
	assert.True(t, p.IsActive)
	assert.Equal(t, "Africa/Nairobi", p.Availability.Data().Timezone)
	assert.True(t, p.Preferences.Data().Notifications.Email)
	assert.Equal(t, 89, p.ProfileCompleteness())
}

func TestCreateProviderDuplicateEmail(t *testing.T) {
	svc, _, _ := newProviderFixture(t)

	_, err := svc.Create(nil, &dto.CreateProviderRequest{
		Name: "Copy", Email: "juma@example.com", Phone: "0799000000",
		ServiceType: models.ServiceTypeOther, Location: "Nakuru", Experience: models.Experience0to1, Description: "x",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestProviderResponseRedaction(t *testing.T) {
	svc, repo, p := newProviderFixture(t)
	_, err := repo.UpdateLocked(nil, p.ID, func(sp *models.ServiceProvider) error {
		sp.Verification.Documents = append(sp.Verification.Documents, models.VerificationDocument{Type: "id", URL: "https://secret"})
		return nil
	})
	require.NoError(t, err)

	public, err := svc.GetByID(nil, p.ID, false)
	require.NoError(t, err)

	raw, err := json.Marshal(public)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.NotContains(t, body, "preferences")
	assert.NotContains(t, body, "passwordHash")
	verification := body["verificationStatus"].(map[string]interface{})
	assert.NotContains(t, verification, "documents")
	assert.Equal(t, float64(89), body["profileCompleteness"])
	assert.Equal(t, p.ID, body["id"])

	owner, err := svc.GetByID(nil, p.ID, true)
	require.NoError(t, err)
	raw, _ = json.Marshal(owner)
	assert.Contains(t, string(raw), `"preferences"`)
}

func TestUpdateProvider(t *testing.T) {
	svc, _, p := newProviderFixture(t)

	updated, err := svc.Update(nil, p.ID, &dto.UpdateProviderRequest{
		Name:   ptr("  Juma & Sons "),
		Skills: []string{" wiring ", " ", "CCTV"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Juma & Sons", updated.Name)
	assert.Equal(t, []string{"wiring", "CCTV"}, []string(updated.Skills))
	assert.Equal(t, "juma@example.com", updated.Email)

	_, err = svc.Update(nil, p.ID, &dto.UpdateProviderRequest{MaxPrice: ptr(100.0)})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	_, err = svc.Update(nil, "missing", &dto.UpdateProviderRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, apperrors.ErrProviderNotFound)
}

func TestDeleteProviderIsSoft(t *testing.T) {
	svc, _, p := newProviderFixture(t)

	require.NoError(t, svc.Delete(nil, p.ID))

	got, err := svc.GetByID(nil, p.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsOnline)

	list, err := svc.List(nil, listing.ProviderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Providers)
	assert.Equal(t, int64(0), list.Pagination.Total)
}

func TestListProvidersPagination(t *testing.T) {
	svc, repo, _ := newProviderFixture(t)

	list, err := svc.List(nil, listing.ProviderFilter{ServiceType: "all", Sort: "bogus", Page: 0, Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, listing.Page{Number: 1, Limit: listing.MaxLimit}, repo.lastPage)
	assert.Equal(t, listing.ProviderOrder(listing.SortRating), repo.lastQuery.Order)
	assert.Len(t, list.Providers, 1)
	assert.Equal(t, listing.SortRating, list.Filters.Sort)
	assert.Empty(t, list.Filters.ServiceType)
	assert.Equal(t, 1, list.Pagination.Pages)
	assert.False(t, list.Pagination.HasNext)
}

func TestStoriesNewestFirst(t *testing.T) {
	svc, _, p := newProviderFixture(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		story, err := svc.AddStory(nil, p.ID, &dto.CreateStoryRequest{Title: title, Description: "work"})
		require.NoError(t, err)
		assert.NotEmpty(t, story.ID)
	}

	stories, err := svc.ListStories(nil, p.ID)
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "third", stories[0].Title)
	assert.Equal(t, "first", stories[2].Title)
}

func TestDashboardNotifications(t *testing.T) {
	svc, _, p := newProviderFixture(t)

	dash, err := svc.Dashboard(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, dash.Stats.TotalStories)

	var types []string
	for _, n := range dash.Notifications {
		types = append(types, n.Type)
	}
	assert.Equal(t, []string{"no_stories"}, types)

	_, err = svc.AddStory(nil, p.ID, &dto.CreateStoryRequest{Title: "t", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Update(nil, p.ID, &dto.UpdateProviderRequest{Description: ptr(" ")})
	require.NoError(t, err)

	dash, err = svc.Dashboard(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Stats.TotalStories)
	require.Len(t, dash.Notifications, 1)
	assert.Equal(t, "profile_incomplete", dash.Notifications[0].Type)
}

func TestRateProvider(t *testing.T) {
	svc, _, p := newProviderFixture(t)

	_, err := svc.Rate(nil, p.ID, p.ID, 5)
	assert.ErrorIs(t, err, apperrors.ErrCannotRateSelf)

	for _, stars := range []int{5, 4, 4} {
		_, err = svc.Rate(nil, p.ID, "customer", stars)
		require.NoError(t, err)
	}
	rating, err := svc.Rate(nil, p.ID, "customer", 2)
	require.NoError(t, err)

	assert.Equal(t, int64(4), rating.Count)
	assert.Equal(t, 3.8, rating.Average)
	assert.Equal(t, int64(2), rating.Breakdown.Four)

	_, err = svc.Rate(nil, p.ID, "customer", 6)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)

	_, err = svc.Rate(nil, "missing", "customer", 3)
	assert.ErrorIs(t, err, apperrors.ErrProviderNotFound)
}

func TestPreferencesAndOnlineStatus(t *testing.T) {
	svc, repo, p := newProviderFixture(t)

	prefs := models.DefaultProviderPreferences()
	prefs.Privacy.ShowPhone = false
	_, err := svc.UpdatePreferences(nil, p.ID, &prefs)
	require.NoError(t, err)

	stored, _ := repo.FindByID(nil, p.ID)
	assert.False(t, stored.Preferences.Data().Privacy.ShowPhone)

	require.NoError(t, svc.SetOnlineStatus(nil, p.ID, true))
	stored, _ = repo.FindByID(nil, p.ID)
	assert.True(t, stored.IsOnline)

	assert.ErrorIs(t, svc.SetOnlineStatus(nil, "missing", true), apperrors.ErrProviderNotFound)
}
