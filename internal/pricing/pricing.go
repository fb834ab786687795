package pricing

import (
	"math"
	"time"
)

const weekHours = 7 * 24

type DurationMetrics struct {
	DurationInWeeks int
	RemainingWeeks  int
}

// CalculateDurationMetrics считает длительность и остаток проекта в неделях.
func CalculateDurationMetrics(startDate, endDate, now time.Time) DurationMetrics {
	duration := int(math.Ceil(endDate.Sub(startDate).Hours() / weekHours))

	remaining := int(math.Ceil(endDate.Sub(now).Hours() / weekHours))
	if remaining < 0 {
		remaining = 0
	}

	return DurationMetrics{
		DurationInWeeks: duration,
		RemainingWeeks:  remaining,
	}
}

// ProfitMargin возвращает прибыль в процентах от себестоимости.
func ProfitMargin(price, cost float64) float64 {
	if cost == 0 {
		return 0
	}

	return (price - cost) / cost * 100
}

// WeeklyOverhead переводит месячные накладные расходы в недельные.
func WeeklyOverhead(monthlyOverhead float64) float64 {
	return monthlyOverhead * 12 / 52
}

// AllocatedOverhead считает долю накладных расходов, отнесенную на проект.
func AllocatedOverhead(weeklyOverhead float64, durationInWeeks int, allocationPercentage float64) float64 {
	return weeklyOverhead * float64(durationInWeeks) * allocationPercentage / 100
}

// ProjectPrice считает цену проекта из себестоимости и желаемой маржи.
func ProjectPrice(cost, profitMarginPercent float64) float64 {
	return cost * (1 + profitMarginPercent/100)
}

// AutoAllocationPercentage распределяет накладные расходы пропорционально
// оставшимся неделям проекта среди всех активных проектов, включая его самого.
// Если суммарный остаток равен нулю, проект получает 100%.
func AutoAllocationPercentage(remainingWeeks int, otherActiveRemaining []int) float64 {
	total := remainingWeeks
	for _, weeks := range otherActiveRemaining {
		total += weeks
	}

	if total <= 0 {
		return 100
	}

	return float64(remainingWeeks) / float64(total) * 100
}
