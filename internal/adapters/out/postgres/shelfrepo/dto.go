// Package shelfrepo persists shelf stock reports to PostgreSQL. One row per
// shelf, holding the latest report from the store's sensor network.
package shelfrepo

import (
	"time"

	"shelf2door/internal/core/domain/model/shelf"
)

// ShelfStockDTO represents the database row for one shelf's latest stock report.
type ShelfStockDTO struct {
	ShelfID     string `gorm:"primaryKey"`
	ProductName string
	Quantity    int
	ReportedAt  time.Time
}

// TableName specifies the database table name for shelf stock reports.
func (ShelfStockDTO) TableName() string {
	return "shelf_stock"
}

// fromDomain converts a stock report to its database representation.
func fromDomain(report shelf.StockReport) ShelfStockDTO {
	return ShelfStockDTO{
		ShelfID:     report.ShelfID,
		ProductName: report.ProductName,
		Quantity:    report.Quantity,
		ReportedAt:  report.ReportedAt,
	}
}

// toDomain converts a database row back to a stock report.
func toDomain(dto ShelfStockDTO) shelf.StockReport {
	return shelf.StockReport{
		ShelfID:     dto.ShelfID,
		ProductName: dto.ProductName,
		Quantity:    dto.Quantity,
		ReportedAt:  dto.ReportedAt,
	}
}
