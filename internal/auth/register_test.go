package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/helphub/helphub-backend/internal/testdb"
	"github.com/helphub/helphub-backend/internal/users"
	"github.com/helphub/helphub-backend/internal/volunteers"
	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/enums"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/helphub/helphub-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *security.Hasher {
	return security.NewHasher(config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32})
}

func newRegisterService(t *testing.T) (RegisterService, *users.Repository, *volunteers.Repository) {
	t.Helper()
	client := testdb.Open(t)
	svc, err := NewRegisterService(RegisterServiceParams{DB: client, Hasher: testHasher()})
	require.NoError(t, err)
	return svc, users.NewRepository(client.DB()), volunteers.NewRepository(client.DB())
}

func TestRegisterUserPersistsHashedCredential(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newRegisterService(t)

	user, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Name:     "Ana",
		Phone:    "555-0101",
		Age:      34,
		City:     "Springfield",
		Email:    " Ana@Example.com ",
		Password: "pw",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	stored, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ana@example.com", stored.Email)
	assert.Equal(t, enums.UserRoleUser, stored.Role)
	assert.NotEqual(t, "pw", stored.Password)

	ok, err := security.VerifyPassword("pw", stored.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newRegisterService(t)

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Name: "Other", Email: "ANA@example.com", Password: "pw2"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegisterUserSanitizesProfileFields(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newRegisterService(t)

	longName := strings.Repeat("é", maxNameLen+10)
	user, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Name:     "  " + longName + "  ",
		Phone:    " 555-0101 ",
		City:     "\tSpringfield\n",
		Email:    "ana@example.com",
		Password: "pw",
	})
	require.NoError(t, err)

	stored, err := userRepo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, strings.Repeat("é", maxNameLen), stored.Name)
	assert.Equal(t, "555-0101", stored.Phone)
	assert.Equal(t, "Springfield", stored.City)
}

func TestRegisterUserConflictsWithMixedCaseStoredEmail(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newRegisterService(t)

	_, err := userRepo.Create(ctx, users.CreateUserDTO{Name: "Legacy", Email: "Ana@Example.com", PasswordHash: "plain"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Name: "Ana", Email: "ana@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _, _ := newRegisterService(t)

	_, err := svc.RegisterUser(context.Background(), RegisterUserRequest{Name: "Ana", Email: "not-an-email"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
}

func TestRegisterVolunteerDefaultsActive(t *testing.T) {
	ctx := context.Background()
	svc, _, volunteerRepo := newRegisterService(t)

	volunteer, err := svc.RegisterVolunteer(ctx, RegisterVolunteerRequest{Name: "Vic", City: "Springfield", Email: "vic@example.com", Password: "pw"})
	require.NoError(t, err)

	stored, err := volunteerRepo.FindByID(ctx, volunteer.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, enums.VolunteerStatusActive, stored.Status)

	_, err = svc.RegisterVolunteer(ctx, RegisterVolunteerRequest{Name: "Vic 2", Email: "vic@example.com", Password: "pw"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestNewRegisterServiceRequiresDependencies(t *testing.T) {
	_, err := NewRegisterService(RegisterServiceParams{})
	require.Error(t, err)
	_, err = NewRegisterService(RegisterServiceParams{DB: testdb.Open(t)})
	require.Error(t, err)
}
