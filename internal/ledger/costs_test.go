package ledger

import (
	"testing"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

func newTestStore(t *testing.T) *localstore.Store {
	t.Helper()

	store, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func findCost(t *testing.T, costs []models.CostCategory, id string) models.CostCategory {
	t.Helper()

	for _, cost := range costs {
		if cost.ID == id {
			return cost
		}
	}

	t.Fatalf("cost category %s not found", id)
	return models.CostCategory{}
}

// TestCostLedgerDefaults проверяет посев шести фиксированных категорий.
func TestCostLedgerDefaults(t *testing.T) {
	ledger, err := NewCostLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	costs := ledger.List()
	if len(costs) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(costs))
	}

	if got := findCost(t, costs, models.CostOfficeRent).MonthlyCost; got != 1800 {
		t.Fatalf("expected office rent 1800, got %f", got)
	}
}

// TestCostLedgerUpdate проверяет запись нового значения категории.
func TestCostLedgerUpdate(t *testing.T) {
	ledger, err := NewCostLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if err := ledger.Update(models.CostOfficeRent, 2100); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := findCost(t, ledger.List(), models.CostOfficeRent).MonthlyCost; got != 2100 {
		t.Fatalf("expected 2100, got %f", got)
	}
}

// TestCostLedgerUpdateUnknownID проверяет тихий no-op для неизвестной категории.
func TestCostLedgerUpdateUnknownID(t *testing.T) {
	ledger, err := NewCostLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if err := ledger.Update("unknown", 999); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}

	if got := ledger.TotalMonthly(); got != 2500+1800+1200+850+450 {
		t.Fatalf("expected total unchanged, got %f", got)
	}
}

// TestCostLedgerUpdateDerivedIgnored проверяет защиту производной категории.
func TestCostLedgerUpdateDerivedIgnored(t *testing.T) {
	ledger, err := NewCostLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if err := ledger.RecomputeDerived(65); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if err := ledger.Update(models.CostAppsSubscriptions, 500); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := findCost(t, ledger.List(), models.CostAppsSubscriptions).MonthlyCost; got != 65 {
		t.Fatalf("expected derived value 65 to survive direct update, got %f", got)
	}
}

// TestCostLedgerTotalMonthly проверяет сумму с учетом производной категории.
func TestCostLedgerTotalMonthly(t *testing.T) {
	ledger, err := NewCostLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if err := ledger.RecomputeDerived(65); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	want := 2500.0 + 1800 + 1200 + 850 + 450 + 65
	if got := ledger.TotalMonthly(); got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

// TestCostLedgerPersistence проверяет восстановление значений из хранилища.
func TestCostLedgerPersistence(t *testing.T) {
	store := newTestStore(t)

	ledger, err := NewCostLedger(store)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	if err := ledger.Update(models.CostOfficeSupplies, 777); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := NewCostLedger(store)
	if err != nil {
		t.Fatalf("reload ledger: %v", err)
	}

	if got := findCost(t, reloaded.List(), models.CostOfficeSupplies).MonthlyCost; got != 777 {
		t.Fatalf("expected persisted value 777, got %f", got)
	}
}
