package ledger

import (
	"errors"
	"testing"

	"example.com/opscost-dashboard/backend/internal/models"
)

// TestSubscriptionLedgerCRUD проверяет жизненный цикл подписки и пересчет суммы.
func TestSubscriptionLedgerCRUD(t *testing.T) {
	ledger, err := NewSubscriptionLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 65 {
		t.Fatalf("expected seeded total 65, got %f", got)
	}

	added, err := ledger.Add(models.Subscription{
		Name:         "Vercel Pro",
		MonthlyCost:  20,
		BillingCycle: models.BillingCycleMonthly,
		Category:     models.SubscriptionCategoryDevelopment,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated id")
	}

	if got := ledger.TotalMonthly(); got != 85 {
		t.Fatalf("expected total 85 after add, got %f", got)
	}

	newCost := 25.0
	updated, err := ledger.Update(added.ID, SubscriptionPatch{MonthlyCost: &newCost})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.MonthlyCost != 25 || updated.Name != "Vercel Pro" {
		t.Fatalf("expected partial merge, got %+v", updated)
	}

	if got := ledger.TotalMonthly(); got != 90 {
		t.Fatalf("expected total 90 after update, got %f", got)
	}

	if err := ledger.Delete(added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 65 {
		t.Fatalf("expected total 65 after delete, got %f", got)
	}

	for _, sub := range ledger.List() {
		if sub.ID == added.ID {
			t.Fatal("expected deleted subscription to be absent from list")
		}
	}
}

// TestSubscriptionLedgerUnknownID проверяет ошибку для неизвестного идентификатора.
func TestSubscriptionLedgerUnknownID(t *testing.T) {
	ledger, err := NewSubscriptionLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if _, err := ledger.Update("missing", SubscriptionPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := ledger.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestEmployeeLedgerTotal проверяет суммирование зарплат.
func TestEmployeeLedgerTotal(t *testing.T) {
	ledger, err := NewEmployeeLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 21500 {
		t.Fatalf("expected seeded payroll 21500, got %f", got)
	}

	if _, err := ledger.Add(models.Employee{Name: "New Hire", Salary: 5000, Status: models.EmployeeStatusActive}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 26500 {
		t.Fatalf("expected payroll 26500, got %f", got)
	}
}

// TestSupplyLedgerTotal проверяет расчет количества на цену единицы.
func TestSupplyLedgerTotal(t *testing.T) {
	ledger, err := NewSupplyLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	// 5*5 + 10*2 + 8*3
	if got := ledger.TotalMonthly(); got != 69 {
		t.Fatalf("expected seeded supplies total 69, got %f", got)
	}
}

// TestObligationLedgerTotal проверяет суммирование обязательств.
func TestObligationLedgerTotal(t *testing.T) {
	ledger, err := NewObligationLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 1200 {
		t.Fatalf("expected seeded obligations total 1200, got %f", got)
	}
}

// TestInsuranceLedgerTotal проверяет суммирование полисов.
func TestInsuranceLedgerTotal(t *testing.T) {
	ledger, err := NewInsuranceLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if got := ledger.TotalMonthly(); got != 850 {
		t.Fatalf("expected seeded insurance total 850, got %f", got)
	}
	if got := ledger.TotalDependents(); got != 3 {
		t.Fatalf("expected 3 dependents, got %d", got)
	}
}

// TestRentLedgerTotals проверяет годовую и месячную суммы аренды.
func TestRentLedgerTotals(t *testing.T) {
	ledger, err := NewRentLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	if got := ledger.TotalAnnual(); got != 34200 {
		t.Fatalf("expected seeded annual total 34200, got %f", got)
	}
	if got := ledger.TotalMonthly(); got != 2850 {
		t.Fatalf("expected monthly total 2850, got %f", got)
	}
}

// TestRentLedgerExpenseCRUD проверяет вложенный цикл расходов филиала.
func TestRentLedgerExpenseCRUD(t *testing.T) {
	ledger, err := NewRentLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	branch, err := ledger.AddBranch(models.Branch{Name: "Remote Hub", Location: "Uptown"})
	if err != nil {
		t.Fatalf("add branch: %v", err)
	}

	expense, err := ledger.AddExpense(branch.ID, models.RentExpense{
		Name:         "Annual Cleaning",
		AnnualAmount: 1200,
		Category:     models.RentCategoryMaintenance,
		Status:       models.RentStatusPending,
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if got := ledger.TotalAnnual(); got != 35400 {
		t.Fatalf("expected annual total 35400, got %f", got)
	}

	amount := 2400.0
	if _, err := ledger.UpdateExpense(branch.ID, expense.ID, RentExpensePatch{AnnualAmount: &amount}); err != nil {
		t.Fatalf("update expense: %v", err)
	}
	if got := ledger.TotalAnnual(); got != 36600 {
		t.Fatalf("expected annual total 36600, got %f", got)
	}

	if err := ledger.DeleteExpense(branch.ID, expense.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if err := ledger.DeleteBranch(branch.ID); err != nil {
		t.Fatalf("delete branch: %v", err)
	}

	if got := ledger.TotalAnnual(); got != 34200 {
		t.Fatalf("expected annual total restored to 34200, got %f", got)
	}

	if _, err := ledger.AddExpense("missing", models.RentExpense{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing branch, got %v", err)
	}
}

// TestRentLedgerListCopiesExpenses проверяет, что изменение выданного среза расходов
// не трогает состояние леджера.
func TestRentLedgerListCopiesExpenses(t *testing.T) {
	ledger, err := NewRentLedger(newTestStore(t))
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	branches := ledger.List()
	if len(branches) == 0 || len(branches[0].Expenses) == 0 {
		t.Fatalf("expected seeded branches with expenses, got %+v", branches)
	}

	before := ledger.TotalAnnual()
	branches[0].Expenses[0].AnnualAmount += 10000

	if got := ledger.TotalAnnual(); got != before {
		t.Fatalf("expected annual total %f unchanged after mutating copy, got %f", before, got)
	}
}

// TestPeriodCost проверяет пересчет годовой суммы по периодам оплаты.
func TestPeriodCost(t *testing.T) {
	if got := PeriodCost(1200, PeriodMonthly); got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}
	if got := PeriodCost(1200, PeriodQuarterly); got != 300 {
		t.Fatalf("expected 300, got %f", got)
	}
	if got := PeriodCost(1200, PeriodSemiAnnually); got != 600 {
		t.Fatalf("expected 600, got %f", got)
	}
	if got := PeriodCost(1200, PeriodAnnually); got != 1200 {
		t.Fatalf("expected 1200, got %f", got)
	}
}
