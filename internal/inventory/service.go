// Package inventory owns the stock ledger: incoming grain records and their
// AVAILABLE -> CONSUMED transitions. Consumption itself is driven by the
// milling package, which calls MarkConsumed inside its own transaction.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type StockFilter struct {
	FarmerID  *uint
	VarietyID *uint
	From      *time.Time // incoming date range, inclusive
	To        *time.Time
}

// ListAvailableStock returns AVAILABLE stocks, newest first.
func (s *Service) ListAvailableStock(f StockFilter) ([]models.Stock, error) {
	q := s.db.
		Preload("Farmer.ProducerGroup").
		Preload("Variety").
		Where("status = ?", models.StockAvailable)

	if f.FarmerID != nil {
		q = q.Where("farmer_id = ?", *f.FarmerID)
	}
	if f.VarietyID != nil {
		q = q.Where("variety_id = ?", *f.VarietyID)
	}
	if f.From != nil {
		q = q.Where("incoming_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("incoming_date <= ?", *f.To)
	}

	var stocks []models.Stock
	if err := q.Order("incoming_date DESC, id DESC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

type CreateStockInput struct {
	FarmerID       uint
	VarietyID      uint
	ProductionYear int
	WeightKg       decimal.Decimal
	IncomingDate   time.Time
	BagNo          int
}

// CreateStock registers an incoming bag. A lot number is assigned only when
// the farmer's producer group is certified; general ("일반") grain stays
// untraced by business rule.
func (s *Service) CreateStock(in CreateStockInput) (*models.Stock, error) {
	if !in.WeightKg.IsPositive() {
		return nil, apperr.Validation("weight_kg must be greater than zero")
	}
	if in.FarmerID == 0 || in.VarietyID == 0 {
		return nil, apperr.Validation("farmer_id and variety_id are required")
	}

	var farmer models.Farmer
	if err := s.db.Preload("ProducerGroup").First(&farmer, in.FarmerID).Error; err != nil {
		return nil, apperr.Validation("farmer %d does not exist", in.FarmerID)
	}

	var variety models.Variety
	if err := s.db.First(&variety, in.VarietyID).Error; err != nil {
		return nil, apperr.Validation("variety %d does not exist", in.VarietyID)
	}

	if in.BagNo <= 0 {
		in.BagNo = 1
	}

	stock := models.Stock{
		FarmerID:       in.FarmerID,
		VarietyID:      in.VarietyID,
		ProductionYear: in.ProductionYear,
		WeightKg:       in.WeightKg,
		Status:         models.StockAvailable,
		IncomingDate:   in.IncomingDate,
		BagNo:          in.BagNo,
	}

	if farmer.ProducerGroup.Certified() {
		lot := fmt.Sprintf("LOT-%s-G%d-B%d",
			in.IncomingDate.Format("20060102"), farmer.ProducerGroupID, in.BagNo)
		stock.LotNo = &lot
	}

	if err := s.db.Create(&stock).Error; err != nil {
		return nil, err
	}

	stock.Farmer = farmer
	stock.Variety = variety
	return &stock, nil
}

// DeleteStock removes a stock record. Consumed stocks cannot be deleted:
// the batch that consumed them depends on their weight. The row is locked so
// a concurrent CreateBatch cannot consume it mid-delete.
func (s *Service) DeleteStock(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var stock models.Stock
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stock, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("stock %d does not exist", id)
		}
		if err != nil {
			return err
		}

		if stock.Status == models.StockConsumed {
			return apperr.Conflict("stock %d is consumed by a milling batch and cannot be deleted", id)
		}

		return tx.Delete(&stock).Error
	})
}

// MarkConsumed flips the given stocks AVAILABLE -> CONSUMED and binds them to
// a batch, all inside the caller's transaction. The status guard in the WHERE
// clause makes double consumption lose the race: if any row was not
// AVAILABLE anymore, the affected-row count comes up short and the whole
// transaction rolls back.
func MarkConsumed(tx *gorm.DB, batchID uint, ids []uint) error {
	res := tx.Model(&models.Stock{}).
		Where("id IN ? AND status = ?", ids, models.StockAvailable).
		Updates(map[string]interface{}{
			"status":           models.StockConsumed,
			"milling_batch_id": batchID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		return apperr.Conflict("some stocks are no longer available")
	}
	return nil
}

// Release reverses MarkConsumed for every stock of a batch. Used when an open
// batch is deleted so its inputs return to the available pool.
func Release(tx *gorm.DB, batchID uint) error {
	return tx.Model(&models.Stock{}).
		Where("milling_batch_id = ?", batchID).
		Updates(map[string]interface{}{
			"status":           models.StockAvailable,
			"milling_batch_id": nil,
		}).Error
}
