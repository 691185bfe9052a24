package services

import (
	"testing"
	"time"

	"fursa_backend/internal/auth"
	"fursa_backend/internal/models"
	"fursa_backend/internal/services/dto"
	"fursa_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc       *AuthServiceImpl
	providers *fakeProviderRepo
	talents   *fakeTalentRepo
	notifier  *recordingNotifier
	tokens    *auth.TokenManager
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		providers: newFakeProviderRepo(),
		talents:   newFakeTalentRepo(),
		notifier:  &recordingNotifier{},
		tokens:    auth.NewTokenManager("test-secret", time.Hour),
	}
	f.svc = NewAuthService(f.providers, f.talents, f.tokens, f.notifier)
	f.svc.hashPassword = func(p string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.MinCost)
		return string(h), err
	}
	return f
}

func providerRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:        "Amina Otieno",
		Email:       "  Amina@Example.COM ",
		Phone:       "+254 712 345 678",
		Password:    "supersecret",
		UserType:    models.RoleProvider,
		Location:    "Nairobi",
		ServiceType: models.ServiceTypePlumber,
		Experience:  models.Experience3to5,
		Skills:      []string{" pipes ", "", "boilers"},
	}
}

func TestRegisterProvider(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "amina@example.com", resp.User.Email)
	assert.Equal(t, models.RoleProvider, resp.User.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := f.tokens.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "provider", claims.Role)

	stored, err := f.providers.FindByID(nil, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "+254712345678", stored.Phone)
	assert.Equal(t, []string{"pipes", "boilers"}, []string(stored.Skills))
	assert.True(t, stored.IsActive)
	assert.True(t, auth.CheckPasswordHash("supersecret", stored.PasswordHash))
	assert.Equal(t, []string{"amina@example.com"}, f.notifier.providers)
}

func TestRegisterTalentSplitsLocation(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(nil, &dto.RegisterRequest{
		Name:     "Baraka",
		Email:    "baraka@example.com",
		Phone:    "0722000111",
		Password: "supersecret",
		UserType: models.RoleTalent,
		Location: "Mombasa, Mombasa County",
		Skill:    "Beadwork",
		Category: models.CategoryArtisans,
	})
	require.NoError(t, err)

	stored, err := f.talents.FindByID(nil, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mombasa", stored.Location.City)
	assert.Equal(t, "Mombasa County", stored.Location.County)
	assert.Equal(t, models.DefaultCountry, stored.Location.Country)
}

func TestRegisterDuplicates(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)

	_, err = f.svc.Register(nil, providerRegistration())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	req := providerRegistration()
	req.Email = "other@example.com"
	_, err = f.svc.Register(nil, req)
	assert.ErrorIs(t, err, apperrors.ErrPhoneAlreadyExists)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	f := newAuthFixture()
	req := providerRegistration()
	req.UserType = "admin"

	_, err := f.svc.Register(nil, req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Empty(t, f.providers.items)
}

func TestRegisterRejectsInvertedPriceRange(t *testing.T) {
	f := newAuthFixture()
	req := providerRegistration()
	req.MinPrice, req.MaxPrice = ptr(2000.0), ptr(500.0)

	_, err := f.svc.Register(nil, req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestLoginGenericFailure(t *testing.T) {
	f := newAuthFixture()
	reg, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)

	ok, err := f.svc.Login(nil, &dto.LoginRequest{Email: "AMINA@example.com", Password: "supersecret", UserType: models.RoleProvider})
	require.NoError(t, err)
	assert.NotEmpty(t, ok.Token)

	stored, _ := f.providers.FindByID(nil, reg.User.ID)
	assert.True(t, stored.IsOnline)

	_, wrongPassword := f.svc.Login(nil, &dto.LoginRequest{Email: "amina@example.com", Password: "nope-nope", UserType: models.RoleProvider})
	_, unknownUser := f.svc.Login(nil, &dto.LoginRequest{Email: "ghost@example.com", Password: "supersecret", UserType: models.RoleProvider})
	_, wrongRole := f.svc.Login(nil, &dto.LoginRequest{Email: "amina@example.com", Password: "supersecret", UserType: models.RoleTalent})

	for _, err := range []error{wrongPassword, unknownUser, wrongRole} {
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestLoginRejectsInactiveAndPasswordlessAccounts(t *testing.T) {
	f := newAuthFixture()
	reg, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)
	require.NoError(t, f.providers.Deactivate(nil, reg.User.ID))

	_, err = f.svc.Login(nil, &dto.LoginRequest{Email: "amina@example.com", Password: "supersecret", UserType: models.RoleProvider})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// талант, созданный через публичный POST, не имеет пароля
	talent := &models.Talent{Name: "No Password", Email: "np@example.com", Phone: "0700000000"}
	require.NoError(t, f.talents.Create(nil, talent))

	_, err = f.svc.Login(nil, &dto.LoginRequest{Email: "np@example.com", Password: "", UserType: models.RoleTalent})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	f := newAuthFixture()
	reg, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)

	claims, err := f.tokens.ParseToken(reg.Token)
	require.NoError(t, err)

	me, err := f.svc.Me(nil, claims)
	require.NoError(t, err)
	assert.Equal(t, reg.User, *me)

	_, err = f.svc.Me(nil, &auth.Claims{UserID: "missing", Role: "provider"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	require.NoError(t, f.providers.Deactivate(nil, reg.User.ID))
	_, err = f.svc.Me(nil, claims)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogoutMarksProviderOffline(t *testing.T) {
	f := newAuthFixture()
	reg, err := f.svc.Register(nil, providerRegistration())
	require.NoError(t, err)
	require.NoError(t, f.providers.SetOnline(nil, reg.User.ID, true, time.Now()))

	f.svc.Logout(nil, &auth.Claims{UserID: reg.User.ID, Role: "provider"})
	f.svc.Logout(nil, nil)

	stored, _ := f.providers.FindByID(nil, reg.User.ID)
	assert.False(t, stored.IsOnline)
}
