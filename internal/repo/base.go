package repo

import (
	"context"

	"github.com/helphub/helphub-backend/pkg/db"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// StoreError maps a driver/gorm error to the data layer taxonomy. Unique
// violations become CodeConflict; anything else is a store failure.
func StoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}

// Column builds a dialect-quoted column reference; report columns are camelCase.
func Column(name string) clause.Column {
	return clause.Column{Name: name}
}

// Newest orders by the given timestamp column, newest first, with id DESC as
// the tiebreak.
func Newest(column string) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: Column(column), Desc: true},
		{Column: Column("id"), Desc: true},
	}}
}
