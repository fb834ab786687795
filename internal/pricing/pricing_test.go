package pricing

import (
	"math"
	"testing"
	"time"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

// TestCalculateDurationMetrics проверяет расчет недель по датам проекта.
func TestCalculateDurationMetrics(t *testing.T) {
	metrics := CalculateDurationMetrics(date("2025-01-01"), date("2025-01-15"), date("2025-01-01"))

	if metrics.DurationInWeeks != 2 {
		t.Fatalf("expected duration 2 weeks, got %d", metrics.DurationInWeeks)
	}
	if metrics.RemainingWeeks != 2 {
		t.Fatalf("expected 2 remaining weeks, got %d", metrics.RemainingWeeks)
	}
}

// TestCalculateDurationMetricsPartialWeek проверяет округление вверх.
func TestCalculateDurationMetricsPartialWeek(t *testing.T) {
	metrics := CalculateDurationMetrics(date("2025-01-01"), date("2025-01-09"), date("2025-01-01"))

	if metrics.DurationInWeeks != 2 {
		t.Fatalf("expected 8 days to round up to 2 weeks, got %d", metrics.DurationInWeeks)
	}
}

// TestCalculateDurationMetricsPastEnd проверяет обнуление остатка после дедлайна.
func TestCalculateDurationMetricsPastEnd(t *testing.T) {
	metrics := CalculateDurationMetrics(date("2025-01-01"), date("2025-01-15"), date("2025-02-01"))

	if metrics.RemainingWeeks != 0 {
		t.Fatalf("expected 0 remaining weeks, got %d", metrics.RemainingWeeks)
	}
	if metrics.DurationInWeeks != 2 {
		t.Fatalf("expected duration unaffected by now, got %d", metrics.DurationInWeeks)
	}
}

// TestProfitMargin проверяет расчет маржи относительно себестоимости.
func TestProfitMargin(t *testing.T) {
	if got := ProfitMargin(0, 0); got != 0 {
		t.Fatalf("expected 0 for zero cost, got %f", got)
	}

	if got := ProfitMargin(150, 100); got != 50 {
		t.Fatalf("expected 50, got %f", got)
	}

	if got := ProfitMargin(80, 100); got != -20 {
		t.Fatalf("expected -20, got %f", got)
	}
}

// TestWeeklyOverhead проверяет пересчет месячных расходов в недельные.
func TestWeeklyOverhead(t *testing.T) {
	got := WeeklyOverhead(1000)
	want := 1000.0 * 12 / 52

	if !almostEqual(got, want) {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

// TestAllocatedOverhead проверяет расчет доли накладных расходов проекта.
func TestAllocatedOverhead(t *testing.T) {
	got := AllocatedOverhead(230.77, 10, 40)

	if !almostEqual(got, 923.08) {
		t.Fatalf("expected ~923.08, got %f", got)
	}
}

// TestProjectPrice проверяет расчет цены с наценкой.
func TestProjectPrice(t *testing.T) {
	if got := ProjectPrice(1000, 20); !almostEqual(got, 1200) {
		t.Fatalf("expected 1200, got %f", got)
	}

	if got := ProjectPrice(1000, 0); !almostEqual(got, 1000) {
		t.Fatalf("expected 1000, got %f", got)
	}
}

// TestAutoAllocationPercentage проверяет пропорциональное распределение.
func TestAutoAllocationPercentage(t *testing.T) {
	if got := AutoAllocationPercentage(4, []int{6}); !almostEqual(got, 40) {
		t.Fatalf("expected 40, got %f", got)
	}

	if got := AutoAllocationPercentage(6, []int{4}); !almostEqual(got, 60) {
		t.Fatalf("expected 60, got %f", got)
	}
}

// TestAutoAllocationPercentageNoActive проверяет 100% без активных проектов.
func TestAutoAllocationPercentageNoActive(t *testing.T) {
	if got := AutoAllocationPercentage(0, nil); got != 100 {
		t.Fatalf("expected 100, got %f", got)
	}

	if got := AutoAllocationPercentage(5, nil); got != 100 {
		t.Fatalf("expected 100 for a single project, got %f", got)
	}
}
