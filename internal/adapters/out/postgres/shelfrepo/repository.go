package shelfrepo

import (
	"context"

	"shelf2door/internal/core/domain/model/shelf"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShelfStockRepository implements ports.ShelfStockRepository using GORM.
type GormShelfStockRepository struct {
	db *gorm.DB
}

// NewGormShelfStockRepository creates a new GORM shelf stock repository.
func NewGormShelfStockRepository(db *gorm.DB) *GormShelfStockRepository {
	return &GormShelfStockRepository{
		db: db,
	}
}

// Upsert stores the report, replacing any earlier report for the same shelf.
func (r *GormShelfStockRepository) Upsert(ctx context.Context, report shelf.StockReport) error {
	if err := report.Validate(); err != nil {
		return err
	}

	dto := fromDomain(report)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shelf_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// All returns the latest report of every shelf, ordered by shelf ID.
func (r *GormShelfStockRepository) All(ctx context.Context) ([]shelf.StockReport, error) {
	var dtos []ShelfStockDTO
	if err := r.db.WithContext(ctx).Order("shelf_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	reports := make([]shelf.StockReport, 0, len(dtos))
	for _, dto := range dtos {
		reports = append(reports, toDomain(dto))
	}

	return reports, nil
}
