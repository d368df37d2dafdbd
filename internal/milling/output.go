package milling

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/models"
)

type AddOutputInput struct {
	Grade         string
	PackageSpec   string
	TotalWeightKg decimal.Decimal
}

// AddOutputPackage records produced product against an open batch. The batch
// row is re-read under lock inside the transaction, so a concurrent close
// resolves to one winner and the loser gets a conflict.
//
// Output weight is deliberately not bounded by the batch input weight:
// milling yield and byproducts make that relation a report, not an invariant.
func (s *Service) AddOutputPackage(batchID uint, in AddOutputInput) (*models.MillingOutputPackage, error) {
	if !in.TotalWeightKg.IsPositive() {
		return nil, apperr.Validation("total_weight_kg must be greater than zero")
	}
	if in.Grade == "" {
		return nil, apperr.Validation("grade is required")
	}

	var pkg models.MillingOutputPackage

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var batch models.MillingBatch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&batch, batchID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("milling batch %d does not exist", batchID)
		}
		if err != nil {
			return err
		}

		if batch.IsClosed {
			return apperr.Conflict("milling batch %d is closed", batchID)
		}

		pkg = models.MillingOutputPackage{
			MillingBatchID: batch.ID,
			Grade:          in.Grade,
			PackageSpec:    in.PackageSpec,
			TotalWeightKg:  in.TotalWeightKg,
		}
		return tx.Create(&pkg).Error
	})
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

// RemoveOutputPackage deletes an output record while its batch is still open.
func (s *Service) RemoveOutputPackage(packageID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var pkg models.MillingOutputPackage
		err := tx.First(&pkg, packageID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("output package %d does not exist", packageID)
		}
		if err != nil {
			return err
		}

		var batch models.MillingBatch
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&batch, pkg.MillingBatchID).Error; err != nil {
			return err
		}

		if batch.IsClosed {
			return apperr.Conflict("milling batch %d is closed", batch.ID)
		}

		return tx.Delete(&pkg).Error
	})
}
