package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const rentStoreName = "rent-storage"

type Period string

const (
	PeriodMonthly      Period = "monthly"
	PeriodQuarterly    Period = "quarterly"
	PeriodSemiAnnually Period = "semi-annually"
	PeriodAnnually     Period = "annually"
)

var defaultBranches = []models.Branch{
	{
		ID:       "1",
		Name:     "Main Office",
		Location: "Downtown",
		Expenses: []models.RentExpense{
			{ID: "1", Name: "Annual Office Rent", AnnualAmount: 18000, DueDate: "2025-03-01", Category: models.RentCategoryRent, Status: models.RentStatusPending, Notes: "Main office space annual rent"},
			{ID: "2", Name: "Annual Electricity", AnnualAmount: 2400, DueDate: "2025-03-05", Category: models.RentCategoryUtilities, Status: models.RentStatusPending, Notes: "Annual electricity charges"},
		},
	},
	{
		ID:       "2",
		Name:     "Branch Office",
		Location: "Suburb Area",
		Expenses: []models.RentExpense{
			{ID: "3", Name: "Annual Office Rent", AnnualAmount: 12000, DueDate: "2025-03-01", Category: models.RentCategoryRent, Status: models.RentStatusPending, Notes: "Branch office annual rent"},
			{ID: "4", Name: "Annual Utilities", AnnualAmount: 1800, DueDate: "2025-03-05", Category: models.RentCategoryUtilities, Status: models.RentStatusPending, Notes: "Branch utilities"},
		},
	},
}

type BranchPatch struct {
	Name     *string
	Location *string
}

type RentExpensePatch struct {
	Name         *string
	AnnualAmount *float64
	DueDate      *string
	Category     *models.RentCategory
	Status       *models.RentStatus
	Notes        *string
}

// RentLedger хранит филиалы офиса и их годовые расходы на аренду.
type RentLedger struct {
	mu       sync.Mutex
	store    *localstore.Store
	branches []models.Branch
}

// NewRentLedger загружает филиалы из локального хранилища или сеет дефолтные.
func NewRentLedger(store *localstore.Store) (*RentLedger, error) {
	ledger := &RentLedger{store: store}

	found, err := store.Load(rentStoreName, &ledger.branches)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.branches = make([]models.Branch, 0, len(defaultBranches))
		for _, branch := range defaultBranches {
			expenses := make([]models.RentExpense, len(branch.Expenses))
			copy(expenses, branch.Expenses)
			branch.Expenses = expenses
			ledger.branches = append(ledger.branches, branch)
		}
		if err := store.Save(rentStoreName, ledger.branches); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает все филиалы с расходами.
func (l *RentLedger) List() []models.Branch {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Branch, len(l.branches))
	for i, branch := range l.branches {
		branch.Expenses = append([]models.RentExpense(nil), branch.Expenses...)
		out[i] = branch
	}
	return out
}

// AddBranch добавляет филиал без расходов.
func (l *RentLedger) AddBranch(branch models.Branch) (models.Branch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	branch.ID = uuid.NewString()
	branch.Expenses = []models.RentExpense{}
	l.branches = append(l.branches, branch)

	if err := l.store.Save(rentStoreName, l.branches); err != nil {
		return models.Branch{}, err
	}

	return branch, nil
}

// UpdateBranch вносит частичные изменения в филиал.
func (l *RentLedger) UpdateBranch(id string, patch BranchPatch) (models.Branch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.branches {
		if l.branches[i].ID != id {
			continue
		}

		branch := &l.branches[i]
		if patch.Name != nil {
			branch.Name = *patch.Name
		}
		if patch.Location != nil {
			branch.Location = *patch.Location
		}

		if err := l.store.Save(rentStoreName, l.branches); err != nil {
			return models.Branch{}, err
		}

		out := *branch
		out.Expenses = append([]models.RentExpense(nil), branch.Expenses...)
		return out, nil
	}

	return models.Branch{}, ErrNotFound
}

// DeleteBranch удаляет филиал вместе с его расходами.
func (l *RentLedger) DeleteBranch(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.branches {
		if l.branches[i].ID == id {
			l.branches = append(l.branches[:i], l.branches[i+1:]...)
			return l.store.Save(rentStoreName, l.branches)
		}
	}

	return ErrNotFound
}

// AddExpense добавляет расход к филиалу.
func (l *RentLedger) AddExpense(branchID string, expense models.RentExpense) (models.RentExpense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.branches {
		if l.branches[i].ID != branchID {
			continue
		}

		expense.ID = uuid.NewString()
		l.branches[i].Expenses = append(l.branches[i].Expenses, expense)

		if err := l.store.Save(rentStoreName, l.branches); err != nil {
			return models.RentExpense{}, err
		}

		return expense, nil
	}

	return models.RentExpense{}, ErrNotFound
}

// UpdateExpense вносит частичные изменения в расход филиала.
func (l *RentLedger) UpdateExpense(branchID, expenseID string, patch RentExpensePatch) (models.RentExpense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.branches {
		if l.branches[i].ID != branchID {
			continue
		}

		for j := range l.branches[i].Expenses {
			if l.branches[i].Expenses[j].ID != expenseID {
				continue
			}

			expense := &l.branches[i].Expenses[j]
			if patch.Name != nil {
				expense.Name = *patch.Name
			}
			if patch.AnnualAmount != nil {
				expense.AnnualAmount = *patch.AnnualAmount
			}
			if patch.DueDate != nil {
				expense.DueDate = *patch.DueDate
			}
			if patch.Category != nil {
				expense.Category = *patch.Category
			}
			if patch.Status != nil {
				expense.Status = *patch.Status
			}
			if patch.Notes != nil {
				expense.Notes = *patch.Notes
			}

			if err := l.store.Save(rentStoreName, l.branches); err != nil {
				return models.RentExpense{}, err
			}

			return *expense, nil
		}

		return models.RentExpense{}, ErrNotFound
	}

	return models.RentExpense{}, ErrNotFound
}

// DeleteExpense удаляет расход филиала.
func (l *RentLedger) DeleteExpense(branchID, expenseID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.branches {
		if l.branches[i].ID != branchID {
			continue
		}

		expenses := l.branches[i].Expenses
		for j := range expenses {
			if expenses[j].ID == expenseID {
				l.branches[i].Expenses = append(expenses[:j], expenses[j+1:]...)
				return l.store.Save(rentStoreName, l.branches)
			}
		}

		return ErrNotFound
	}

	return ErrNotFound
}

// TotalAnnual возвращает суммарные годовые расходы по всем филиалам.
func (l *RentLedger) TotalAnnual() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, branch := range l.branches {
		for _, expense := range branch.Expenses {
			total += expense.AnnualAmount
		}
	}
	return total
}

// TotalMonthly возвращает месячную долю годовых расходов на аренду.
func (l *RentLedger) TotalMonthly() float64 {
	return l.TotalAnnual() / 12
}

// PeriodCost пересчитывает годовую сумму в выбранный период оплаты.
func PeriodCost(annualAmount float64, period Period) float64 {
	switch period {
	case PeriodMonthly:
		return annualAmount / 12
	case PeriodQuarterly:
		return annualAmount / 4
	case PeriodSemiAnnually:
		return annualAmount / 2
	case PeriodAnnually:
		return annualAmount
	default:
		return annualAmount / 12
	}
}
