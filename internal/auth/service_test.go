package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/helphub/helphub-backend/pkg/db/models"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, nil
}

type stubVolunteerRepo struct {
	volunteer *models.Volunteer
}

func (s stubVolunteerRepo) FindByEmail(ctx context.Context, email string) (*models.Volunteer, error) {
	if s.volunteer != nil && s.volunteer.Email == email {
		return s.volunteer, nil
	}
	return nil, nil
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := testHasher().Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildTestService(t *testing.T, users stubUserRepo, volunteers stubVolunteerRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: users, VolunteerRepo: volunteers})
	require.NoError(t, err)
	return svc
}

func TestLoginUser(t *testing.T) {
	user := &models.User{ID: 7, Email: "ana@example.com", Password: mustHashPassword(t, "pw")}
	svc := buildTestService(t, stubUserRepo{user: user}, stubVolunteerRepo{})
	ctx := context.Background()

	got, err := svc.LoginUser(ctx, LoginRequest{Email: "Ana@Example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(7), got.ID)

	got, err = svc.LoginUser(ctx, LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.LoginUser(ctx, LoginRequest{Email: "nobody@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.LoginUser(ctx, LoginRequest{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoginUserLegacyPlaintextIsMismatch(t *testing.T) {
	user := &models.User{ID: 1, Email: "old@example.com", Password: "pw"}
	svc := buildTestService(t, stubUserRepo{user: user}, stubVolunteerRepo{})

	got, err := svc.LoginUser(context.Background(), LoginRequest{Email: "old@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoginUserPropagatesStoreFailure(t *testing.T) {
	storeErr := pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("disk I/O error"), "find user by email")
	svc := buildTestService(t, stubUserRepo{err: storeErr}, stubVolunteerRepo{})

	_, err := svc.LoginUser(context.Background(), LoginRequest{Email: "ana@example.com", Password: "pw"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestLoginVolunteer(t *testing.T) {
	volunteer := &models.Volunteer{ID: 3, Email: "vic@example.com", Password: mustHashPassword(t, "secret")}
	svc := buildTestService(t, stubUserRepo{}, stubVolunteerRepo{volunteer: volunteer})
	ctx := context.Background()

	got, err := svc.LoginVolunteer(ctx, LoginRequest{Email: "vic@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), got.ID)

	got, err = svc.LoginVolunteer(ctx, LoginRequest{Email: "vic@example.com", Password: "nope"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewServiceRequiresRepositories(t *testing.T) {
	_, err := NewService(ServiceParams{UserRepo: stubUserRepo{}})
	require.Error(t, err)
}
