package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const obligationsStoreName = "obligations-storage"

var defaultObligations = []models.Obligation{
	{ID: "1", Name: "Corporate Income Tax", Amount: 500, DueDate: "2025-03-15", Status: models.ObligationStatusPending, Category: models.ObligationCategoryTax},
	{ID: "2", Name: "Business License Renewal", Amount: 300, DueDate: "2025-04-01", Status: models.ObligationStatusPending, Category: models.ObligationCategoryLicense},
	{ID: "3", Name: "Workers Compensation", Amount: 400, DueDate: "2025-03-30", Status: models.ObligationStatusPaid, Category: models.ObligationCategoryInsurance},
}

type ObligationPatch struct {
	Name     *string
	Amount   *float64
	DueDate  *string
	Status   *models.ObligationStatus
	Category *models.ObligationCategory
}

type ObligationLedger struct {
	mu          sync.Mutex
	store       *localstore.Store
	obligations []models.Obligation
}

// NewObligationLedger загружает обязательства из локального хранилища или сеет дефолтные.
func NewObligationLedger(store *localstore.Store) (*ObligationLedger, error) {
	ledger := &ObligationLedger{store: store}

	found, err := store.Load(obligationsStoreName, &ledger.obligations)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.obligations = make([]models.Obligation, len(defaultObligations))
		copy(ledger.obligations, defaultObligations)
		if err := store.Save(obligationsStoreName, ledger.obligations); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает все обязательства.
func (l *ObligationLedger) List() []models.Obligation {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Obligation, len(l.obligations))
	copy(out, l.obligations)
	return out
}

// Add добавляет обязательство, присваивая новый идентификатор.
func (l *ObligationLedger) Add(obligation models.Obligation) (models.Obligation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	obligation.ID = uuid.NewString()
	l.obligations = append(l.obligations, obligation)

	if err := l.store.Save(obligationsStoreName, l.obligations); err != nil {
		return models.Obligation{}, err
	}

	return obligation, nil
}

// Update вносит частичные изменения в обязательство.
func (l *ObligationLedger) Update(id string, patch ObligationPatch) (models.Obligation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.obligations {
		if l.obligations[i].ID != id {
			continue
		}

		obl := &l.obligations[i]
		if patch.Name != nil {
			obl.Name = *patch.Name
		}
		if patch.Amount != nil {
			obl.Amount = *patch.Amount
		}
		if patch.DueDate != nil {
			obl.DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			obl.Status = *patch.Status
		}
		if patch.Category != nil {
			obl.Category = *patch.Category
		}

		if err := l.store.Save(obligationsStoreName, l.obligations); err != nil {
			return models.Obligation{}, err
		}

		return *obl, nil
	}

	return models.Obligation{}, ErrNotFound
}

// Delete удаляет обязательство по идентификатору.
func (l *ObligationLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.obligations {
		if l.obligations[i].ID == id {
			l.obligations = append(l.obligations[:i], l.obligations[i+1:]...)
			return l.store.Save(obligationsStoreName, l.obligations)
		}
	}

	return ErrNotFound
}

// TotalMonthly возвращает сумму всех обязательств за месяц.
func (l *ObligationLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, obl := range l.obligations {
		total += obl.Amount
	}
	return total
}
