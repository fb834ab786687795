package ledger

import (
	"sync"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const costsStoreName = "costs-storage"

var defaultCosts = []models.CostCategory{
	{ID: models.CostEmployeesPayroll, Name: "Employees Payroll", MonthlyCost: 2500, Icon: models.CostIconUsers},
	{ID: models.CostOfficeRent, Name: "Office Rent", MonthlyCost: 1800, Icon: models.CostIconBuilding},
	{ID: models.CostGovernmentObligations, Name: "Government Obligations", MonthlyCost: 1200, Icon: models.CostIconScale},
	{ID: models.CostHealthInsurance, Name: "Health Insurance", MonthlyCost: 850, Icon: models.CostIconHeart},
	{ID: models.CostOfficeSupplies, Name: "Office Supplies & Bills", MonthlyCost: 450, Icon: models.CostIconPackage},
	{ID: models.CostAppsSubscriptions, Name: "Apps Subscriptions", MonthlyCost: 0, Icon: models.CostIconAppWindow},
}

// CostLedger хранит шесть фиксированных категорий операционных затрат.
// Значение категории appsSubscriptions не редактируется напрямую: оно
// перезаписывается из леджера подписок через RecomputeDerived.
type CostLedger struct {
	mu    sync.Mutex
	store *localstore.Store
	costs []models.CostCategory
}

// NewCostLedger загружает категории из локального хранилища или сеет дефолтные.
func NewCostLedger(store *localstore.Store) (*CostLedger, error) {
	ledger := &CostLedger{store: store}

	found, err := store.Load(costsStoreName, &ledger.costs)
	if err != nil {
		return nil, err
	}

	if !found || len(ledger.costs) == 0 {
		ledger.costs = make([]models.CostCategory, len(defaultCosts))
		copy(ledger.costs, defaultCosts)
		if err := store.Save(costsStoreName, ledger.costs); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает категории в стабильном порядке отображения.
func (l *CostLedger) List() []models.CostCategory {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.CostCategory, len(l.costs))
	copy(out, l.costs)
	return out
}

// Update записывает новое значение категории. Неизвестный идентификатор и
// производная категория подписок игнорируются без ошибки.
func (l *CostLedger) Update(id string, monthlyCost float64) error {
	if id == models.CostAppsSubscriptions {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setLocked(id, monthlyCost)
}

// SyncCategory перезаписывает категорию суммой, посчитанной профильным
// леджером. В отличие от Update применяется и к производной категории.
func (l *CostLedger) SyncCategory(id string, total float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setLocked(id, total)
}

// RecomputeDerived перезаписывает категорию подписок суммой из леджера подписок.
func (l *CostLedger) RecomputeDerived(subscriptionTotal float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setLocked(models.CostAppsSubscriptions, subscriptionTotal)
}

// TotalMonthly возвращает сумму всех шести категорий.
func (l *CostLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, cost := range l.costs {
		total += cost.MonthlyCost
	}
	return total
}

func (l *CostLedger) setLocked(id string, monthlyCost float64) error {
	for i := range l.costs {
		if l.costs[i].ID == id {
			l.costs[i].MonthlyCost = monthlyCost
			return l.store.Save(costsStoreName, l.costs)
		}
	}

	return nil
}
