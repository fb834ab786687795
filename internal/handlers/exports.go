package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/pricing"
)

// CostExport описывает выгружаемую сводку затрат.
type CostExport struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Categories     []CostExportItem `json:"categories"`
	TotalMonthly   float64          `json:"total_monthly"`
	TotalAnnual    float64          `json:"total_annual"`
	WeeklyOverhead float64          `json:"weekly_overhead"`
}

type CostExportItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MonthlyCost float64 `json:"monthly_cost"`
	AnnualCost  float64 `json:"annual_cost"`
}

func (h *CostsHandler) buildExport() CostExport {
	costs := h.Costs.List()
	total := h.Costs.TotalMonthly()

	items := make([]CostExportItem, 0, len(costs))
	for _, cost := range costs {
		items = append(items, CostExportItem{
			ID:          cost.ID,
			Name:        cost.Name,
			MonthlyCost: cost.MonthlyCost,
			AnnualCost:  cost.MonthlyCost * 12,
		})
	}

	return CostExport{
		GeneratedAt:    time.Now().UTC(),
		Categories:     items,
		TotalMonthly:   total,
		TotalAnnual:    total * 12,
		WeeklyOverhead: pricing.WeeklyOverhead(total),
	}
}

// ExportJSON выгружает сводку затрат в JSON-файл.
func (h *CostsHandler) ExportJSON(c echo.Context) error {
	export := h.buildExport()

	filename := "costs-" + export.GeneratedAt.Format(dateLayout) + ".json"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, export)
}

// ExportCSV выгружает сводку затрат в CSV-файл.
func (h *CostsHandler) ExportCSV(c echo.Context) error {
	export := h.buildExport()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"category_id", "category_name", "monthly_cost", "annual_cost"}
	if err := writer.Write(header); err != nil {
		return serverError(c)
	}

	for _, item := range export.Categories {
		record := []string{
			item.ID,
			item.Name,
			formatFloat(item.MonthlyCost),
			formatFloat(item.AnnualCost),
		}
		if err := writer.Write(record); err != nil {
			return serverError(c)
		}
	}

	totals := []string{"total", "", formatFloat(export.TotalMonthly), formatFloat(export.TotalAnnual)}
	if err := writer.Write(totals); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "costs-" + export.GeneratedAt.Format(dateLayout) + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
