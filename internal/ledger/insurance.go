package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const insuranceStoreName = "insurance-storage"

var defaultPolicies = []models.InsurancePolicy{
	{ID: "1", EmployeeName: "John Doe", PolicyNumber: "HI-2025-001", Provider: "Blue Cross", MonthlyCost: 350, Coverage: models.CoveragePremium, Status: models.PolicyStatusActive, StartDate: "2025-01-01", EndDate: "2025-12-31", Dependents: 2},
	{ID: "2", EmployeeName: "Jane Smith", PolicyNumber: "HI-2025-002", Provider: "Aetna", MonthlyCost: 300, Coverage: models.CoverageStandard, Status: models.PolicyStatusActive, StartDate: "2025-01-01", EndDate: "2025-12-31", Dependents: 1},
	{ID: "3", EmployeeName: "Mike Johnson", PolicyNumber: "HI-2025-003", Provider: "United Health", MonthlyCost: 200, Coverage: models.CoverageBasic, Status: models.PolicyStatusActive, StartDate: "2025-01-01", EndDate: "2025-12-31", Dependents: 0},
}

type PolicyPatch struct {
	EmployeeName *string
	PolicyNumber *string
	Provider     *string
	MonthlyCost  *float64
	Coverage     *models.Coverage
	Status       *models.PolicyStatus
	StartDate    *string
	EndDate      *string
	Dependents   *int
}

type InsuranceLedger struct {
	mu       sync.Mutex
	store    *localstore.Store
	policies []models.InsurancePolicy
}

// NewInsuranceLedger загружает полисы из локального хранилища или сеет дефолтные.
func NewInsuranceLedger(store *localstore.Store) (*InsuranceLedger, error) {
	ledger := &InsuranceLedger{store: store}

	found, err := store.Load(insuranceStoreName, &ledger.policies)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.policies = make([]models.InsurancePolicy, len(defaultPolicies))
		copy(ledger.policies, defaultPolicies)
		if err := store.Save(insuranceStoreName, ledger.policies); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает все страховые полисы.
func (l *InsuranceLedger) List() []models.InsurancePolicy {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.InsurancePolicy, len(l.policies))
	copy(out, l.policies)
	return out
}

// Add добавляет полис, присваивая новый идентификатор.
func (l *InsuranceLedger) Add(policy models.InsurancePolicy) (models.InsurancePolicy, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy.ID = uuid.NewString()
	l.policies = append(l.policies, policy)

	if err := l.store.Save(insuranceStoreName, l.policies); err != nil {
		return models.InsurancePolicy{}, err
	}

	return policy, nil
}

// Update вносит частичные изменения в полис.
func (l *InsuranceLedger) Update(id string, patch PolicyPatch) (models.InsurancePolicy, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.policies {
		if l.policies[i].ID != id {
			continue
		}

		policy := &l.policies[i]
		if patch.EmployeeName != nil {
			policy.EmployeeName = *patch.EmployeeName
		}
		if patch.PolicyNumber != nil {
			policy.PolicyNumber = *patch.PolicyNumber
		}
		if patch.Provider != nil {
			policy.Provider = *patch.Provider
		}
		if patch.MonthlyCost != nil {
			policy.MonthlyCost = *patch.MonthlyCost
		}
		if patch.Coverage != nil {
			policy.Coverage = *patch.Coverage
		}
		if patch.Status != nil {
			policy.Status = *patch.Status
		}
		if patch.StartDate != nil {
			policy.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			policy.EndDate = *patch.EndDate
		}
		if patch.Dependents != nil {
			policy.Dependents = *patch.Dependents
		}

		if err := l.store.Save(insuranceStoreName, l.policies); err != nil {
			return models.InsurancePolicy{}, err
		}

		return *policy, nil
	}

	return models.InsurancePolicy{}, ErrNotFound
}

// Delete удаляет полис по идентификатору.
func (l *InsuranceLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.policies {
		if l.policies[i].ID == id {
			l.policies = append(l.policies[:i], l.policies[i+1:]...)
			return l.store.Save(insuranceStoreName, l.policies)
		}
	}

	return ErrNotFound
}

// TotalMonthly возвращает суммарную месячную стоимость полисов.
func (l *InsuranceLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, policy := range l.policies {
		total += policy.MonthlyCost
	}
	return total
}

// TotalDependents возвращает суммарное число иждивенцев по полисам.
func (l *InsuranceLedger) TotalDependents() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int
	for _, policy := range l.policies {
		total += policy.Dependents
	}
	return total
}
