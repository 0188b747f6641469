package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/snowva/business-hub/internal/application/reports"
)

// ReportHandler handles the aging report and the dashboard summary.
type ReportHandler struct {
	aging     *reports.AgingUseCase
	dashboard *reports.DashboardUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(aging *reports.AgingUseCase, dashboard *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{aging: aging, dashboard: dashboard}
}

// Aging GET /api/reports/aging?as_of=2025-03-31
func (h *ReportHandler) Aging(c *fiber.Ctx) error {
	report, err := h.aging.Report(c.Context(), c.Query("as_of"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

// Dashboard GET /api/reports/dashboard?from=...&to=...
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(summary)
}
