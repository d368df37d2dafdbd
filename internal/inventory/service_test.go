package inventory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/inventory"
	"ricemill-backend/internal/milling"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/testdb"
)

type fixture struct {
	generalFarmer   models.Farmer
	certifiedFarmer models.Farmer
	variety         models.Variety
}

func seedRefData(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	general := models.ProducerGroup{Name: "일반농가", CertType: models.CertTypeGeneral}
	if err := db.Create(&general).Error; err != nil {
		t.Fatalf("seed general group: %v", err)
	}
	organic := models.ProducerGroup{Name: "유기농작목반", CertType: models.CertTypeOrganic}
	if err := db.Create(&organic).Error; err != nil {
		t.Fatalf("seed organic group: %v", err)
	}

	f := fixture{}
	f.generalFarmer = models.Farmer{Name: "김철수", ProducerGroupID: general.ID}
	if err := db.Create(&f.generalFarmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	f.certifiedFarmer = models.Farmer{Name: "이영희", ProducerGroupID: organic.ID}
	if err := db.Create(&f.certifiedFarmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	f.variety = models.Variety{Name: "신동진"}
	if err := db.Create(&f.variety).Error; err != nil {
		t.Fatalf("seed variety: %v", err)
	}
	return f
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestCreateStock_GeneralGroupGetsNoLotNumber(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)

	stock, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID:       f.generalFarmer.ID,
		VarietyID:      f.variety.ID,
		ProductionYear: 2024,
		WeightKg:       decimal.NewFromInt(500),
		IncomingDate:   mustDate(t, "2024-05-01"),
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	if stock.LotNo != nil {
		t.Errorf("general-tier stock must have no lot number, got %q", *stock.LotNo)
	}
	if stock.Status != models.StockAvailable {
		t.Errorf("new stock status = %s, want AVAILABLE", stock.Status)
	}
}

func TestCreateStock_CertifiedGroupGetsLotNumber(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)

	stock, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID:       f.certifiedFarmer.ID,
		VarietyID:      f.variety.ID,
		ProductionYear: 2024,
		WeightKg:       decimal.NewFromInt(300),
		IncomingDate:   mustDate(t, "2024-05-01"),
		BagNo:          2,
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	if stock.LotNo == nil {
		t.Fatal("certified-tier stock must get a lot number")
	}
	want := fmt.Sprintf("LOT-20240501-G%d-B2", stock.Farmer.ProducerGroupID)
	if *stock.LotNo != want {
		t.Errorf("lot number = %q, want %q", *stock.LotNo, want)
	}
}

func TestCreateStock_RejectsNonPositiveWeight(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)

	for _, w := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.CreateStock(inventory.CreateStockInput{
			FarmerID:     f.generalFarmer.ID,
			VarietyID:    f.variety.ID,
			WeightKg:     w,
			IncomingDate: mustDate(t, "2024-05-01"),
		})
		if !apperr.IsValidation(err) {
			t.Errorf("weight %s: got %v, want validation error", w, err)
		}
	}
}

func TestCreateStock_RejectsMissingReferences(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)

	_, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID:     99999,
		VarietyID:    f.variety.ID,
		WeightKg:     decimal.NewFromInt(100),
		IncomingDate: mustDate(t, "2024-05-01"),
	})
	if !apperr.IsValidation(err) {
		t.Errorf("missing farmer: got %v, want validation error", err)
	}

	_, err = svc.CreateStock(inventory.CreateStockInput{
		FarmerID:     f.generalFarmer.ID,
		VarietyID:    99999,
		WeightKg:     decimal.NewFromInt(100),
		IncomingDate: mustDate(t, "2024-05-01"),
	})
	if !apperr.IsValidation(err) {
		t.Errorf("missing variety: got %v, want validation error", err)
	}
}

func TestListAvailableStock_ExcludesConsumed(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)
	batches := milling.NewService(db)

	s1, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID: f.generalFarmer.ID, VarietyID: f.variety.ID,
		WeightKg: decimal.NewFromInt(300), IncomingDate: mustDate(t, "2024-05-01"),
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	s2, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID: f.generalFarmer.ID, VarietyID: f.variety.ID,
		WeightKg: decimal.NewFromInt(200), IncomingDate: mustDate(t, "2024-05-02"),
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	if _, err := batches.CreateBatch(milling.CreateBatchInput{
		Date:        mustDate(t, "2024-05-03"),
		MillingType: models.MillingWhite,
		StockIDs:    []uint{s1.ID},
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	available, err := svc.ListAvailableStock(inventory.StockFilter{})
	if err != nil {
		t.Fatalf("ListAvailableStock: %v", err)
	}
	if len(available) != 1 || available[0].ID != s2.ID {
		t.Errorf("expected only stock %d available, got %d rows", s2.ID, len(available))
	}
}

func TestDeleteStock_ConsumedIsRejected(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)
	batches := milling.NewService(db)

	stock, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID: f.generalFarmer.ID, VarietyID: f.variety.ID,
		WeightKg: decimal.NewFromInt(300), IncomingDate: mustDate(t, "2024-05-01"),
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}
	if _, err := batches.CreateBatch(milling.CreateBatchInput{
		Date:        mustDate(t, "2024-05-03"),
		MillingType: models.MillingWhite,
		StockIDs:    []uint{stock.ID},
	}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	if err := svc.DeleteStock(stock.ID); !apperr.IsConflict(err) {
		t.Errorf("DeleteStock on consumed stock: got %v, want conflict", err)
	}

	// The record must be untouched.
	var after models.Stock
	if err := db.First(&after, stock.ID).Error; err != nil {
		t.Fatalf("reload stock: %v", err)
	}
	if after.Status != models.StockConsumed {
		t.Errorf("stock status = %s, want CONSUMED", after.Status)
	}
}

func TestDeleteStock_AvailableAndMissing(t *testing.T) {
	db := testdb.Connect(t)
	f := seedRefData(t, db)
	svc := inventory.NewService(db)

	stock, err := svc.CreateStock(inventory.CreateStockInput{
		FarmerID: f.generalFarmer.ID, VarietyID: f.variety.ID,
		WeightKg: decimal.NewFromInt(100), IncomingDate: mustDate(t, "2024-05-01"),
	})
	if err != nil {
		t.Fatalf("CreateStock: %v", err)
	}

	if err := svc.DeleteStock(stock.ID); err != nil {
		t.Fatalf("DeleteStock: %v", err)
	}
	if err := svc.DeleteStock(stock.ID); !apperr.IsNotFound(err) {
		t.Errorf("second delete: got %v, want not-found", err)
	}
}
