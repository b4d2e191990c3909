package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/analytics"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
)

// AnalyticsHandler handles reporting endpoints (protected).
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.SalesReportUseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(dashboard *analytics.DashboardUseCase, reports *analytics.SalesReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, reports: reports}
}

// Dashboard godoc
// @Summary      Today's and month-to-date sales summary
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "owner_id required"})
	}
	out, err := h.dashboard.GetSummary(c.UserContext(), ownerID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Sales report over a date range
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Start date (YYYY-MM-DD)"
// @Param        end    query  string  true  "End date (YYYY-MM-DD)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *AnalyticsHandler) SalesReport(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "owner_id required"})
	}
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end must be YYYY-MM-DD"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end must not be before start"})
	}
	out, err := h.reports.GetSalesReport(c.UserContext(), ownerID, start, end)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Products at or below their reorder level
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockDTO
// @Router       /api/reports/low-stock [get]
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "owner_id required"})
	}
	out, err := h.reports.GetLowStock(c.UserContext(), ownerID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
