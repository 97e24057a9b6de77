package repositories

import (
	"context"
	"testing"

	"server/internal/database"
	. "server/internal/models"

	"github.com/stretchr/testify/require"
)

func seedProvider(t *testing.T, db database.DB, name, email, hospital string) *User {
	t.Helper()

	role := RoleDoctor
	user := &User{
		FullName:       name,
		Email:          email,
		HashedPassword: "x",
		IsProvider:     true,
		Role:           &role,
		HospitalName:   hospital,
	}
	require.NoError(t, NewUser(db).Create(context.Background(), user))
	return user
}

func seedPatient(t *testing.T, db database.DB, name, hospital string, providerID *string) *Patient {
	t.Helper()

	user := &User{
		FullName:       name,
		Email:          name + "@example.com",
		HashedPassword: "x",
		HospitalName:   hospital,
	}
	require.NoError(t, NewUser(db).Create(context.Background(), user))

	patient := &Patient{
		FullName:     name,
		UserID:       user.ID,
		HospitalName: hospital,
		RiskLevel:    RiskLevelUnknown,
		ProviderID:   providerID,
	}
	require.NoError(t, NewPatient(db).Create(context.Background(), patient))
	return patient
}
