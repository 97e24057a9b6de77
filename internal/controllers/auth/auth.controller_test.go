package authController

import (
	"context"
	"testing"

	"server/config"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*AuthController, database.DB) {
	t.Helper()

	db := database.NewTest(t)
	cfg := config.Config{
		AuthSecretKey:          "test-secret-key-not-for-production",
		AuthTokenExpiryMinutes: 30,
	}

	controller := New(
		repositories.NewUser(db),
		repositories.NewPatient(db),
		services.NewTokenService(cfg),
		services.NewTransactionService(db),
		cfg,
	)

	return controller, db
}

func providerRequest() *SignupProviderRequest {
	return &SignupProviderRequest{
		FullName:     "Dr. Amina Otieno",
		Email:        "amina@example.com",
		Password:     "password123",
		HospitalName: HospitalAgaKhan,
		Role:         RoleDoctor,
	}
}

func TestSignupProvider(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	user, err := controller.SignupProvider(ctx, providerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsProvider)
	require.NotNil(t, user.Role)
	assert.Equal(t, RoleDoctor, *user.Role)
	assert.NotEqual(t, "password123", user.HashedPassword)
}

func TestSignupProvider_Validation(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*SignupProviderRequest)
	}{
		{name: "missing email", mutate: func(r *SignupProviderRequest) { r.Email = "" }},
		{name: "missing password", mutate: func(r *SignupProviderRequest) { r.Password = "" }},
		{name: "unknown hospital", mutate: func(r *SignupProviderRequest) { r.HospitalName = "St. Nowhere" }},
		{name: "unknown role", mutate: func(r *SignupProviderRequest) { r.Role = "Janitor" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := providerRequest()
			tt.mutate(request)
			_, err := controller.SignupProvider(ctx, request)
			assert.Error(t, err)
		})
	}
}

func TestSignupProvider_DuplicateEmail(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.SignupProvider(ctx, providerRequest())
	require.NoError(t, err)

	_, err = controller.SignupProvider(ctx, providerRequest())
	assert.Error(t, err)
}

func TestSignupPatient_AssignsProviderFromHospital(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	provider, err := controller.SignupProvider(ctx, providerRequest())
	require.NoError(t, err)

	user, patient, err := controller.SignupPatient(ctx, &SignupPatientRequest{
		FullName:     "Mary Akinyi",
		Email:        "mary@example.com",
		Password:     "password123",
		HospitalName: HospitalAgaKhan,
	})
	require.NoError(t, err)

	assert.False(t, user.IsProvider)
	assert.Equal(t, user.ID, patient.UserID)
	assert.Equal(t, RiskLevelUnknown, patient.RiskLevel)
	require.NotNil(t, patient.ProviderID)
	assert.Equal(t, provider.ID, *patient.ProviderID)
}

func TestSignupPatient_NoProviderAvailable(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, patient, err := controller.SignupPatient(ctx, &SignupPatientRequest{
		FullName:     "Mary Akinyi",
		Email:        "mary@example.com",
		Password:     "password123",
		HospitalName: HospitalMediCare,
	})
	require.NoError(t, err)
	assert.Nil(t, patient.ProviderID)
}

func TestLogin(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.SignupProvider(ctx, providerRequest())
	require.NoError(t, err)

	response, err := controller.Login(ctx, &LoginRequest{
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, "bearer", response.TokenType)
	assert.True(t, response.IsProvider)
	assert.Equal(t, HospitalAgaKhan, response.HospitalName)
}

func TestLogin_Rejections(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.SignupProvider(ctx, providerRequest())
	require.NoError(t, err)

	tests := []struct {
		name    string
		request *LoginRequest
	}{
		{
			name:    "wrong password",
			request: &LoginRequest{Email: "amina@example.com", Password: "nope"},
		},
		{
			name:    "unknown email",
			request: &LoginRequest{Email: "ghost@example.com", Password: "password123"},
		},
		{
			name:    "empty credentials",
			request: &LoginRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Login(ctx, tt.request)
			assert.Error(t, err)
		})
	}
}
