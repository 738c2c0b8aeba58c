package reports

import (
	"context"

	"github.com/helphub/helphub-backend/internal/repo"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/db/models"
	"github.com/helphub/helphub-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes report persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) Create(ctx context.Context, dto CreateReportDTO) (*models.Report, error) {
	report := dto.ToModel()
	if err := r.DB(ctx).Create(report).Error; err != nil {
		return nil, repo.StoreError(err, "create report")
	}
	return report, nil
}

// FindByID returns nil when the report does not exist.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	return r.findByID(ctx, id, false)
}

// FindByIDForUpdate loads the report with a row lock where the dialect has one.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Report, error) {
	return r.findByID(ctx, id, true)
}

func (r *Repository) findByID(ctx context.Context, id uint, lock bool) (*models.Report, error) {
	var report models.Report
	query := r.DB(ctx)
	if lock && query.Dialector.Name() == db.DialectPostgres {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&report, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, repo.StoreError(err, "find report by id")
	}
	return &report, nil
}

// ListByUser returns the user's reports, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	return r.list(ctx, "list reports by user", repo.Newest("createdAt"), clause.Eq{Column: repo.Column("userId"), Value: userID})
}

// ListAll returns every report, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Report, error) {
	return r.list(ctx, "list reports", repo.Newest("createdAt"))
}

// ListByStatus returns the reports in a lifecycle state, newest first.
func (r *Repository) ListByStatus(ctx context.Context, status enums.ReportStatus) ([]models.Report, error) {
	return r.list(ctx, "list reports by status", repo.Newest("createdAt"), clause.Eq{Column: repo.Column("status"), Value: status})
}

// ListByVolunteer returns the reports assigned to a volunteer, most recently
// updated first.
func (r *Repository) ListByVolunteer(ctx context.Context, volunteerID uint) ([]models.Report, error) {
	return r.list(ctx, "list reports by volunteer", repo.Newest("updatedAt"), clause.Eq{Column: repo.Column("assignedVolunteerId"), Value: volunteerID})
}

// ListUnassigned returns pending reports nobody has taken yet, newest first.
func (r *Repository) ListUnassigned(ctx context.Context) ([]models.Report, error) {
	return r.list(ctx, "list unassigned reports", repo.Newest("createdAt"),
		clause.Eq{Column: repo.Column("status"), Value: enums.ReportStatusPending},
		clause.Eq{Column: repo.Column("assignedVolunteerId"), Value: nil},
	)
}

func (r *Repository) list(ctx context.Context, op string, order clause.OrderBy, conds ...clause.Expression) ([]models.Report, error) {
	reports := []models.Report{}
	query := r.DB(ctx).Model(&models.Report{})
	if len(conds) > 0 {
		query = query.Clauses(clause.Where{Exprs: conds})
	}
	if err := query.Order(order).Find(&reports).Error; err != nil {
		return nil, repo.StoreError(err, op)
	}
	return reports, nil
}

// ApplyStatusChange writes the change and reports whether a row matched.
func (r *Repository) ApplyStatusChange(ctx context.Context, id uint, change StatusChange) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		UpdateColumns(change.columns())
	if res.Error != nil {
		return false, repo.StoreError(res.Error, "update report")
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus groups the report table by status.
func (r *Repository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var rows []struct {
		Status enums.ReportStatus
		Total  int64
	}
	if err := r.DB(ctx).
		Model(&models.Report{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return StatusCounts{}, repo.StoreError(err, "count reports")
	}

	var counts StatusCounts
	for _, row := range rows {
		counts.Total += row.Total
		switch row.Status {
		case enums.ReportStatusPending:
			counts.Pending = row.Total
		case enums.ReportStatusInProgress:
			counts.InProgress = row.Total
		case enums.ReportStatusResolved:
			counts.Resolved = row.Total
		}
	}
	return counts, nil
}
