package orderarchive

import (
	"context"
	"time"

	"shelf2door/internal/core/application/tracking"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderArchive implements tracking.Archiver using GORM.
type GormOrderArchive struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderArchive creates a new GORM order archive.
func NewGormOrderArchive(db *gorm.DB) *GormOrderArchive {
	return &GormOrderArchive{
		db:  db,
		now: time.Now,
	}
}

// Save upserts the snapshot keyed by order ID, so repeated saves of the same
// order keep a single row with its latest state.
func (r *GormOrderArchive) Save(ctx context.Context, snapshot tracking.Snapshot) error {
	if err := snapshot.ID.Validate(); err != nil {
		return err
	}

	dto, err := fromSnapshot(snapshot, r.now())
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
