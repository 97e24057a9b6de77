package repositories

import (
	"context"
	"testing"

	"server/internal/database"
	. "server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := database.NewTest(t)
	repo := NewUser(db)
	ctx := context.Background()

	user := seedProvider(t, db, "Dr. Amina Otieno", "amina@example.com", HospitalAgaKhan)
	require.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, "no-such-id")
	assert.Error(t, err)
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := database.NewTest(t)
	repo := NewUser(db)
	ctx := context.Background()

	seedProvider(t, db, "Dr. Amina Otieno", "amina@example.com", HospitalAgaKhan)

	exists, err := repo.EmailExists(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_GetRandomProviderByHospital(t *testing.T) {
	db := database.NewTest(t)
	repo := NewUser(db)
	ctx := context.Background()

	seedProvider(t, db, "Dr. Amina Otieno", "amina@example.com", HospitalAgaKhan)
	seedProvider(t, db, "Nurse Grace Wanjiru", "grace@example.com", HospitalAgaKhan)

	provider, err := repo.GetRandomProviderByHospital(ctx, HospitalAgaKhan)
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, HospitalAgaKhan, provider.HospitalName)
	assert.True(t, provider.IsProvider)

	// No provider at this hospital: nil without error so signup can proceed
	// unassigned.
	provider, err = repo.GetRandomProviderByHospital(ctx, HospitalMediCare)
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestUserRepository_ProviderLookupsRejectPatients(t *testing.T) {
	db := database.NewTest(t)
	repo := NewUser(db)
	ctx := context.Background()

	patient := seedPatient(t, db, "Mary Akinyi", HospitalAgaKhan, nil)

	var patientUser User
	require.NoError(t, db.SQL.First(&patientUser, "id = ?", patient.UserID).Error)

	_, err := repo.GetProviderByID(ctx, patientUser.ID)
	assert.Error(t, err)

	_, err = repo.GetProviderByEmail(ctx, patientUser.Email)
	assert.Error(t, err)
}
