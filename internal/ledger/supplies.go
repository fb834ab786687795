package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const suppliesStoreName = "supplies-storage"

var defaultSupplies = []models.Supply{
	{ID: "1", Name: "Printer Paper", MonthlyQuantity: 5, UnitCost: 5, Category: models.SupplyCategoryOffice, LastPurchased: "2025-02-15", ReorderPoint: 2, MonthlyBudget: 30},
	{ID: "2", Name: "Coffee Supplies", MonthlyQuantity: 10, UnitCost: 2, Category: models.SupplyCategoryKitchen, LastPurchased: "2025-02-20", ReorderPoint: 3, MonthlyBudget: 25},
	{ID: "3", Name: "Cleaning Supplies", MonthlyQuantity: 8, UnitCost: 3, Category: models.SupplyCategoryCleaning, LastPurchased: "2025-02-10", ReorderPoint: 2, MonthlyBudget: 30},
}

type SupplyPatch struct {
	Name            *string
	MonthlyQuantity *float64
	UnitCost        *float64
	Category        *models.SupplyCategory
	LastPurchased   *string
	ReorderPoint    *float64
	MonthlyBudget   *float64
}

type SupplyLedger struct {
	mu       sync.Mutex
	store    *localstore.Store
	supplies []models.Supply
}

// NewSupplyLedger загружает расходники из локального хранилища или сеет дефолтные.
func NewSupplyLedger(store *localstore.Store) (*SupplyLedger, error) {
	ledger := &SupplyLedger{store: store}

	found, err := store.Load(suppliesStoreName, &ledger.supplies)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.supplies = make([]models.Supply, len(defaultSupplies))
		copy(ledger.supplies, defaultSupplies)
		if err := store.Save(suppliesStoreName, ledger.supplies); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает все расходники.
func (l *SupplyLedger) List() []models.Supply {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Supply, len(l.supplies))
	copy(out, l.supplies)
	return out
}

// Add добавляет расходник, присваивая новый идентификатор.
func (l *SupplyLedger) Add(supply models.Supply) (models.Supply, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	supply.ID = uuid.NewString()
	l.supplies = append(l.supplies, supply)

	if err := l.store.Save(suppliesStoreName, l.supplies); err != nil {
		return models.Supply{}, err
	}

	return supply, nil
}

// Update вносит частичные изменения в расходник.
func (l *SupplyLedger) Update(id string, patch SupplyPatch) (models.Supply, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.supplies {
		if l.supplies[i].ID != id {
			continue
		}

		sup := &l.supplies[i]
		if patch.Name != nil {
			sup.Name = *patch.Name
		}
		if patch.MonthlyQuantity != nil {
			sup.MonthlyQuantity = *patch.MonthlyQuantity
		}
		if patch.UnitCost != nil {
			sup.UnitCost = *patch.UnitCost
		}
		if patch.Category != nil {
			sup.Category = *patch.Category
		}
		if patch.LastPurchased != nil {
			sup.LastPurchased = *patch.LastPurchased
		}
		if patch.ReorderPoint != nil {
			sup.ReorderPoint = *patch.ReorderPoint
		}
		if patch.MonthlyBudget != nil {
			sup.MonthlyBudget = *patch.MonthlyBudget
		}

		if err := l.store.Save(suppliesStoreName, l.supplies); err != nil {
			return models.Supply{}, err
		}

		return *sup, nil
	}

	return models.Supply{}, ErrNotFound
}

// Delete удаляет расходник по идентификатору.
func (l *SupplyLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.supplies {
		if l.supplies[i].ID == id {
			l.supplies = append(l.supplies[:i], l.supplies[i+1:]...)
			return l.store.Save(suppliesStoreName, l.supplies)
		}
	}

	return ErrNotFound
}

// TotalMonthly возвращает месячную стоимость расходников (количество на цену).
func (l *SupplyLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, sup := range l.supplies {
		total += sup.MonthlyQuantity * sup.UnitCost
	}
	return total
}

// TotalMonthlyBudget возвращает суммарный месячный бюджет на расходники.
func (l *SupplyLedger) TotalMonthlyBudget() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, sup := range l.supplies {
		total += sup.MonthlyBudget
	}
	return total
}
