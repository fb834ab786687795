package ledger

import (
	"sync"

	"github.com/google/uuid"

	"example.com/opscost-dashboard/backend/internal/localstore"
	"example.com/opscost-dashboard/backend/internal/models"
)

const subscriptionsStoreName = "subscriptions-storage"

var defaultSubscriptions = []models.Subscription{
	{
		ID:           "1",
		Name:         "GitHub Team",
		Description:  "Code hosting and collaboration platform",
		MonthlyCost:  40,
		BillingCycle: models.BillingCycleMonthly,
		Category:     models.SubscriptionCategoryDevelopment,
		Website:      "https://github.com",
		RenewalDate:  "2025-03-15",
	},
	{
		ID:           "2",
		Name:         "Figma Professional",
		Description:  "Design and prototyping tool",
		MonthlyCost:  15,
		BillingCycle: models.BillingCycleMonthly,
		Category:     models.SubscriptionCategoryDesign,
		Website:      "https://figma.com",
		RenewalDate:  "2025-03-20",
	},
	{
		ID:           "3",
		Name:         "Notion Team",
		Description:  "Team wiki and project management",
		MonthlyCost:  10,
		BillingCycle: models.BillingCycleMonthly,
		Category:     models.SubscriptionCategoryProductivity,
		Website:      "https://notion.so",
		RenewalDate:  "2025-03-25",
	},
}

type SubscriptionPatch struct {
	Name         *string
	Description  *string
	MonthlyCost  *float64
	BillingCycle *models.BillingCycle
	Category     *models.SubscriptionCategory
	Website      *string
	RenewalDate  *string
}

type SubscriptionLedger struct {
	mu            sync.Mutex
	store         *localstore.Store
	subscriptions []models.Subscription
}

// NewSubscriptionLedger загружает подписки из локального хранилища или сеет дефолтные.
func NewSubscriptionLedger(store *localstore.Store) (*SubscriptionLedger, error) {
	ledger := &SubscriptionLedger{store: store}

	found, err := store.Load(subscriptionsStoreName, &ledger.subscriptions)
	if err != nil {
		return nil, err
	}

	if !found {
		ledger.subscriptions = make([]models.Subscription, len(defaultSubscriptions))
		copy(ledger.subscriptions, defaultSubscriptions)
		if err := store.Save(subscriptionsStoreName, ledger.subscriptions); err != nil {
			return nil, err
		}
	}

	return ledger, nil
}

// List возвращает все подписки.
func (l *SubscriptionLedger) List() []models.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Subscription, len(l.subscriptions))
	copy(out, l.subscriptions)
	return out
}

// Add добавляет подписку, присваивая новый идентификатор.
func (l *SubscriptionLedger) Add(subscription models.Subscription) (models.Subscription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	subscription.ID = uuid.NewString()
	l.subscriptions = append(l.subscriptions, subscription)

	if err := l.store.Save(subscriptionsStoreName, l.subscriptions); err != nil {
		return models.Subscription{}, err
	}

	return subscription, nil
}

// Update вносит частичные изменения в подписку по идентификатору.
func (l *SubscriptionLedger) Update(id string, patch SubscriptionPatch) (models.Subscription, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.subscriptions {
		if l.subscriptions[i].ID != id {
			continue
		}

		sub := &l.subscriptions[i]
		if patch.Name != nil {
			sub.Name = *patch.Name
		}
		if patch.Description != nil {
			sub.Description = *patch.Description
		}
		if patch.MonthlyCost != nil {
			sub.MonthlyCost = *patch.MonthlyCost
		}
		if patch.BillingCycle != nil {
			sub.BillingCycle = *patch.BillingCycle
		}
		if patch.Category != nil {
			sub.Category = *patch.Category
		}
		if patch.Website != nil {
			sub.Website = *patch.Website
		}
		if patch.RenewalDate != nil {
			sub.RenewalDate = *patch.RenewalDate
		}

		if err := l.store.Save(subscriptionsStoreName, l.subscriptions); err != nil {
			return models.Subscription{}, err
		}

		return *sub, nil
	}

	return models.Subscription{}, ErrNotFound
}

// Delete удаляет подписку по идентификатору.
func (l *SubscriptionLedger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.subscriptions {
		if l.subscriptions[i].ID == id {
			l.subscriptions = append(l.subscriptions[:i], l.subscriptions[i+1:]...)
			return l.store.Save(subscriptionsStoreName, l.subscriptions)
		}
	}

	return ErrNotFound
}

// TotalMonthly возвращает суммарную месячную стоимость подписок.
func (l *SubscriptionLedger) TotalMonthly() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, sub := range l.subscriptions {
		total += sub.MonthlyCost
	}
	return total
}
