package reports

import (
	"context"
	"testing"
	"time"

	"github.com/helphub/helphub-backend/internal/testdb"
	"github.com/helphub/helphub-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryOrderingTiebreakOnID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, CreateReportDTO{Description: "a", At: at})
	require.NoError(t, err)
	second, err := repo.Create(ctx, CreateReportDTO{Description: "b", At: at})
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestRepositoryApplyStatusChange(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	image := "/img/before.jpg"

	report, err := repo.Create(ctx, CreateReportDTO{Description: "a", ImagePath: &image, At: at})
	require.NoError(t, err)

	later := at.Add(time.Hour)
	ok, err := repo.ApplyStatusChange(ctx, report.ID, StatusChange{Status: enums.ReportStatusInProgress, At: later})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportStatusInProgress, stored.Status)
	require.NotNil(t, stored.ImagePath)
	assert.Equal(t, image, *stored.ImagePath)
	assert.True(t, stored.CreatedAt.Equal(at))
	assert.True(t, stored.UpdatedAt.Equal(later))

	ok, err = repo.ApplyStatusChange(ctx, 999, StatusChange{Status: enums.ReportStatusResolved, At: later})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepositoryEmptyListsAreNonNil(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t).DB())

	byUser, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, byUser)
	assert.Empty(t, byUser)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{}, counts)
}
