package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const employeesStoreName = "employees-storage"

var defaultEmployees = []models.Employee{
	{ID: "1", Name: "John Doe", Position: "Senior Developer", Department: "Engineering", Salary: 8000, StartDate: "2024-01-15", Status: models.EmployeeStatusActive},
	{ID: "2", Name: "Jane Smith", Position: "Product Manager", Department: "Product", Salary: 7500, StartDate: "2024-02-01", Status: models.EmployeeStatusActive},
	{ID: "3", Name: "Mike Johnson", Position: "UI Designer", Department: "Design", Salary: 6000, StartDate: "2024-01-20", Status: models.EmployeeStatusOnLeave},
}

type EmployeePatch struct {
	Name       *string
	Position   *string
	Department *string
	Salary     *float64
	StartDate  *string
	Status     *models.EmployeeStatus
}

type EmployeeLedger struct {
	mu        sync.Mutex
	store     *localstore.Store
	employees []models.Employee
}

// NewEmployeeLedger загружает сотрудников из локального хранилища или сеет дефолтных.
func NewEmployeeLedger(store *localstore.Store) (*EmployeeLedger, error) {
	ledger := &EmployeeLedger{store: store}

	found, err := store.Load(employeesStoreName, &ledger.employees)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.employees = make([]models.Employee, len(defaultEmployees))
		copy(ledger.employees, defaultEmployees)
		if err := store.Save(employeesStoreName, ledger.employees); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает всех сотрудников.
func (l *EmployeeLedger) List() []models.Employee {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Employee, len(l.employees))
	copy(out, l.employees)
	return out
}

// Add добавляет сотрудника, присваивая новый идентификатор.
func (l *EmployeeLedger) Add(employee models.Employee) (models.Employee, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	employee.ID = uuid.NewString()
	l.employees = append(l.employees, employee)

	if err := l.store.Save(employeesStoreName, l.employees); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// Update вносит частичные изменения в запись сотрудника.
func (l *EmployeeLedger) Update(id string, patch EmployeePatch) (models.Employee, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.employees {
		if l.employees[i].ID != id {
			continue
		}

		emp := &l.employees[i]
		if patch.Name != nil {
			emp.Name = *patch.Name
		}
		if patch.Position != nil {
			emp.Position = *patch.Position
		}
		if patch.Department != nil {
			emp.Department = *patch.Department
		}
		if patch.Salary != nil {
			emp.Salary = *patch.Salary
		}
		if patch.StartDate != nil {
			emp.StartDate = *patch.StartDate
		}
		if patch.Status != nil {
			emp.Status = *patch.Status
		}

		if err := l.store.Save(employeesStoreName, l.employees); err != nil {
			return models.Employee{}, err
		}

		return *emp, nil
	}

	return models.Employee{}, ErrNotFound
}

// Delete удаляет сотрудника по идентификатору.
func (l *EmployeeLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.employees {
		if l.employees[i].ID == id {
			l.employees = append(l.employees[:i], l.employees[i+1:]...)
			return l.store.Save(employeesStoreName, l.employees)
		}
	}

	return ErrNotFound
}

// TotalMonthly возвращает суммарный месячный фонд оплаты труда.
func (l *EmployeeLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, emp := range l.employees {
		total += emp.Salary
	}
	return total
}
