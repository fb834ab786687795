package handlers

import (
	"testing"

	"example.com/opscost-dashboard/backend/internal/ledger"
	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

// TestBuildExport проверяет сводку затрат для выгрузки.
func TestBuildExport(t *testing.T) {
	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	costs, err := ledger.NewCostLedger(store)
	if err != nil {
		t.Fatalf("init ledger: %v", err)
	}

	h := &CostsHandler{Costs: costs}
	export := h.buildExport()

	if len(export.Categories) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(export.Categories))
	}
	if export.GeneratedAt.IsZero() {
		t.Fatal("expected generated timestamp")
	}

	// Дефолтные значения: 2500+1800+1200+850+450+0.
	if export.TotalMonthly != 6800 {
		t.Fatalf("expected total monthly 6800, got %v", export.TotalMonthly)
	}
	if export.TotalAnnual != 6800*12 {
		t.Fatalf("expected total annual %v, got %v", 6800*12.0, export.TotalAnnual)
	}

	for _, item := range export.Categories {
		if item.AnnualCost != item.MonthlyCost*12 {
			t.Fatalf("category %s: expected annual %v, got %v", item.ID, item.MonthlyCost*12, item.AnnualCost)
		}
	}

	var found bool
	for _, item := range export.Categories {
		if item.ID == models.CostEmployeesPayroll && item.MonthlyCost == 2500 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected employees payroll category with default value")
	}
}

// TestFormatFloat проверяет формат денежных значений в CSV.
func TestFormatFloat(t *testing.T) {
	if got := formatFloat(1234.5); got != "1234.50" {
		t.Fatalf("expected 1234.50, got %s", got)
	}
	if got := formatFloat(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}
