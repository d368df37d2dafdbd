// Package milling owns milling batches: aggregation of input stocks, the
// one-way open -> closed transition, and the output packages recorded while a
// batch is still open.
package milling

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/inventory"
	"ricemill-backend/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateBatchInput struct {
	Date        time.Time
	MillingType models.MillingType
	StockIDs    []uint
	Note        string
}

// CreateBatch verifies the selected stocks, consumes them and creates the
// batch in one transaction. Partial application (stocks consumed but no
// batch, or the reverse) is never observable: the stock rows are locked FOR
// UPDATE, so of two callers racing for the same stock exactly one commits and
// the other gets a conflict.
func (s *Service) CreateBatch(in CreateBatchInput) (*models.MillingBatch, error) {
	if len(in.StockIDs) == 0 {
		return nil, apperr.Validation("stock_ids must not be empty")
	}
	seen := make(map[uint]bool, len(in.StockIDs))
	for _, id := range in.StockIDs {
		if seen[id] {
			return nil, apperr.Validation("stock_ids contains duplicate id %d", id)
		}
		seen[id] = true
	}
	if in.MillingType != models.MillingWhite && in.MillingType != models.MillingBrown {
		return nil, apperr.Validation("milling_type must be WHITE or BROWN")
	}

	var batch models.MillingBatch

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var stocks []models.Stock
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", in.StockIDs).
			Find(&stocks).Error; err != nil {
			return err
		}
		if len(stocks) != len(in.StockIDs) {
			return apperr.NotFound("some stock ids do not exist")
		}

		total := decimal.Zero
		for _, st := range stocks {
			if st.Status != models.StockAvailable {
				return apperr.Conflict("stock %d is not available", st.ID)
			}
			total = total.Add(st.WeightKg)
		}

		batch = models.MillingBatch{
			Date:         in.Date,
			MillingType:  in.MillingType,
			TotalInputKg: total,
			IsClosed:     false,
			Note:         in.Note,
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		return inventory.MarkConsumed(tx, batch.ID, in.StockIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBatch(batch.ID)
}

// CloseBatch finalizes a batch. The guarded UPDATE decides races with
// concurrent mutations deterministically: whoever flips the flag first wins,
// a second close is a conflict, not a silent no-op. There is no reopen.
func (s *Service) CloseBatch(id uint) (*models.MillingBatch, error) {
	res := s.db.Model(&models.MillingBatch{}).
		Where("id = ? AND is_closed = ?", id, false).
		Update("is_closed", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var batch models.MillingBatch
		if err := s.db.First(&batch, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("milling batch %d does not exist", id)
		} else if err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("milling batch %d is already closed", id)
	}

	return s.GetBatch(id)
}

// DeleteBatch removes an open batch and returns its input stocks to the
// available pool in the same transaction, so no consumed stock is ever
// orphaned. Closed batches are an audit boundary and cannot be deleted.
func (s *Service) DeleteBatch(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var batch models.MillingBatch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&batch, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("milling batch %d does not exist", id)
		}
		if err != nil {
			return err
		}

		if batch.IsClosed {
			return apperr.Conflict("milling batch %d is closed and cannot be deleted", id)
		}

		if err := inventory.Release(tx, batch.ID); err != nil {
			return err
		}
		if err := tx.Where("milling_batch_id = ?", batch.ID).
			Delete(&models.MillingOutputPackage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&batch).Error
	})
}

func (s *Service) GetBatch(id uint) (*models.MillingBatch, error) {
	var batch models.MillingBatch
	err := s.db.
		Preload("Stocks.Farmer").
		Preload("Stocks.Variety").
		Preload("Outputs").
		First(&batch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("milling batch %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (s *Service) ListBatches() ([]models.MillingBatch, error) {
	var batches []models.MillingBatch
	err := s.db.
		Preload("Outputs").
		Order("date DESC, id DESC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
