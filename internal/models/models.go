package models

import (
	"time"

	"github.com/google/uuid"
)

type CostIcon string

type BillingCycle string

type SubscriptionCategory string

type EmployeeStatus string

type ObligationStatus string

type ObligationCategory string

type SupplyCategory string

type Coverage string

type PolicyStatus string

type RentCategory string

type RentStatus string

type ProjectStatus string

const (
	CostIconUsers     CostIcon = "users"
	CostIconBuilding  CostIcon = "building2"
	CostIconScale     CostIcon = "scale"
	CostIconHeart     CostIcon = "heart"
	CostIconPackage   CostIcon = "package"
	CostIconAppWindow CostIcon = "appWindow"

	BillingCycleMonthly  BillingCycle = "monthly"
	BillingCycleAnnually BillingCycle = "annually"

	SubscriptionCategoryDevelopment  SubscriptionCategory = "development"
	SubscriptionCategoryDesign       SubscriptionCategory = "design"
	SubscriptionCategoryMarketing    SubscriptionCategory = "marketing"
	SubscriptionCategoryProductivity SubscriptionCategory = "productivity"
	SubscriptionCategoryOther        SubscriptionCategory = "other"

	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusOnLeave    EmployeeStatus = "on-leave"
	EmployeeStatusTerminated EmployeeStatus = "terminated"

	ObligationStatusPending ObligationStatus = "pending"
	ObligationStatusPaid    ObligationStatus = "paid"
	ObligationStatusOverdue ObligationStatus = "overdue"

	ObligationCategoryTax       ObligationCategory = "tax"
	ObligationCategoryLicense   ObligationCategory = "license"
	ObligationCategoryPermit    ObligationCategory = "permit"
	ObligationCategoryInsurance ObligationCategory = "insurance"
	ObligationCategoryOther     ObligationCategory = "other"

	SupplyCategoryOffice    SupplyCategory = "office"
	SupplyCategoryCleaning  SupplyCategory = "cleaning"
	SupplyCategoryKitchen   SupplyCategory = "kitchen"
	SupplyCategoryTech      SupplyCategory = "tech"
	SupplyCategoryFurniture SupplyCategory = "furniture"
	SupplyCategoryOther     SupplyCategory = "other"

	CoverageBasic    Coverage = "basic"
	CoverageStandard Coverage = "standard"
	CoveragePremium  Coverage = "premium"

	PolicyStatusActive  PolicyStatus = "active"
	PolicyStatusPending PolicyStatus = "pending"
	PolicyStatusExpired PolicyStatus = "expired"

	RentCategoryRent        RentCategory = "rent"
	RentCategoryUtilities   RentCategory = "utilities"
	RentCategoryMaintenance RentCategory = "maintenance"
	RentCategorySecurity    RentCategory = "security"
	RentCategoryOther       RentCategory = "other"

	RentStatusPaid    RentStatus = "paid"
	RentStatusPending RentStatus = "pending"
	RentStatusOverdue RentStatus = "overdue"

	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Идентификаторы шести фиксированных категорий затрат.
const (
	CostEmployeesPayroll      = "employeesPayroll"
	CostOfficeRent            = "officeRent"
	CostGovernmentObligations = "governmentObligations"
	CostHealthInsurance       = "healthInsurance"
	CostOfficeSupplies        = "officeSupplies"
	CostAppsSubscriptions     = "appsSubscriptions"
)

type CostCategory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MonthlyCost float64  `json:"monthly_cost"`
	Icon        CostIcon `json:"icon"`
}

type Subscription struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	MonthlyCost  float64              `json:"monthly_cost"`
	BillingCycle BillingCycle         `json:"billing_cycle"`
	Category     SubscriptionCategory `json:"category"`
	Website      string               `json:"website"`
	RenewalDate  string               `json:"renewal_date"`
}

type Employee struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Position   string         `json:"position"`
	Department string         `json:"department"`
	Salary     float64        `json:"salary"`
	StartDate  string         `json:"start_date"`
	Status     EmployeeStatus `json:"status"`
}

type Obligation struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Amount   float64            `json:"amount"`
	DueDate  string             `json:"due_date"`
	Status   ObligationStatus   `json:"status"`
	Category ObligationCategory `json:"category"`
}

type Supply struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	MonthlyQuantity float64        `json:"monthly_quantity"`
	UnitCost        float64        `json:"unit_cost"`
	Category        SupplyCategory `json:"category"`
	LastPurchased   string         `json:"last_purchased"`
	ReorderPoint    float64        `json:"reorder_point"`
	MonthlyBudget   float64        `json:"monthly_budget"`
}

type InsurancePolicy struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employee_name"`
	PolicyNumber string       `json:"policy_number"`
	Provider     string       `json:"provider"`
	MonthlyCost  float64      `json:"monthly_cost"`
	Coverage     Coverage     `json:"coverage"`
	Status       PolicyStatus `json:"status"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Dependents   int          `json:"dependents"`
}

type RentExpense struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	AnnualAmount float64      `json:"annual_amount"`
	DueDate      string       `json:"due_date"`
	Category     RentCategory `json:"category"`
	Status       RentStatus   `json:"status"`
	Notes        string       `json:"notes"`
}

type Branch struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Expenses []RentExpense `json:"expenses"`
}

type Project struct {
	ID                           uuid.UUID     `json:"id"`
	UserID                       uuid.UUID     `json:"user_id"`
	Name                         string        `json:"name"`
	Description                  string        `json:"description"`
	StartDate                    time.Time     `json:"start_date"`
	EndDate                      time.Time     `json:"end_date"`
	Status                       ProjectStatus `json:"status"`
	OverheadAllocationPercentage float64       `json:"overhead_allocation_percentage"`
	Price                        float64       `json:"price"`
	CreatedAt                    time.Time     `json:"created_at"`
	UpdatedAt                    time.Time     `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}
