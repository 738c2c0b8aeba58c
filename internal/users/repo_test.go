package users

import (
	"context"
	"testing"

	"github.com/helphub/helphub-backend/internal/testdb"
	"github.com/helphub/helphub-backend/pkg/enums"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())

	created, err := repo.Create(ctx, CreateUserDTO{Name: "Ana", Age: 34, City: "Springfield", Email: "ana@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, enums.UserRoleUser, byEmail.Role)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Springfield", byID.City)

	exists, err := repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepositoryMissingRowsAreNil(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())

	user, err := repo.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	exists, err := repo.Exists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())

	_, err := repo.Create(ctx, CreateUserDTO{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateUserDTO{Name: "Ana 2", Email: "ana@example.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
}

func TestRepositoryFindByEmailIgnoresCase(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())

	created, err := repo.Create(ctx, CreateUserDTO{Name: "Legacy", Email: "Legacy.User@Example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "legacy.user@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
