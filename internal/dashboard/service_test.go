package dashboard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ricemill-backend/internal/dashboard"
	"ricemill-backend/internal/inventory"
	"ricemill-backend/internal/milling"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/testdb"
)

func TestDashboardStats_EmptyDatabase(t *testing.T) {
	db := testdb.Connect(t)
	svc := dashboard.NewService(db)

	stats, err := svc.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats on empty db: %v", err)
	}

	if !stats.AvailableStockKg.IsZero() {
		t.Errorf("AvailableStockKg = %s, want 0", stats.AvailableStockKg)
	}
	if stats.TotalBatches != 0 {
		t.Errorf("TotalBatches = %d, want 0", stats.TotalBatches)
	}
	if !stats.TotalOutputKg.IsZero() {
		t.Errorf("TotalOutputKg = %s, want 0", stats.TotalOutputKg)
	}
	if stats.RecentBatches == nil || len(stats.RecentBatches) != 0 {
		t.Errorf("RecentBatches = %v, want empty slice", stats.RecentBatches)
	}
}

func TestDashboardStats_Aggregates(t *testing.T) {
	db := testdb.Connect(t)

	group := models.ProducerGroup{Name: "일반농가", CertType: models.CertTypeGeneral}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	farmer := models.Farmer{Name: "김철수", ProducerGroupID: group.ID}
	if err := db.Create(&farmer).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	variety := models.Variety{Name: "신동진"}
	if err := db.Create(&variety).Error; err != nil {
		t.Fatalf("seed variety: %v", err)
	}

	stocks := inventory.NewService(db)
	batches := milling.NewService(db)

	incoming, _ := time.Parse("2006-01-02", "2024-05-01")
	var ids []uint
	for _, kg := range []int64{300, 200, 150} {
		s, err := stocks.CreateStock(inventory.CreateStockInput{
			FarmerID: farmer.ID, VarietyID: variety.ID,
			WeightKg: decimal.NewFromInt(kg), IncomingDate: incoming,
		})
		if err != nil {
			t.Fatalf("CreateStock: %v", err)
		}
		ids = append(ids, s.ID)
	}

	// Consume the first two (500kg), leave 150kg available.
	batch, err := batches.CreateBatch(milling.CreateBatchInput{
		Date: incoming, MillingType: models.MillingWhite, StockIDs: ids[:2],
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := batches.AddOutputPackage(batch.ID, milling.AddOutputInput{
		Grade: "PREMIUM", PackageSpec: "10kg", TotalWeightKg: decimal.NewFromInt(450),
	}); err != nil {
		t.Fatalf("AddOutputPackage: %v", err)
	}

	stats, err := dashboard.NewService(db).DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if !stats.AvailableStockKg.Equal(decimal.NewFromInt(150)) {
		t.Errorf("AvailableStockKg = %s, want 150", stats.AvailableStockKg)
	}
	if stats.TotalBatches != 1 {
		t.Errorf("TotalBatches = %d, want 1", stats.TotalBatches)
	}
	if !stats.TotalOutputKg.Equal(decimal.NewFromInt(450)) {
		t.Errorf("TotalOutputKg = %s, want 450", stats.TotalOutputKg)
	}
	if len(stats.RecentBatches) != 1 {
		t.Fatalf("RecentBatches = %d rows, want 1", len(stats.RecentBatches))
	}
	if len(stats.RecentBatches[0].Outputs) != 1 {
		t.Errorf("recent batch outputs = %d, want 1", len(stats.RecentBatches[0].Outputs))
	}
}
