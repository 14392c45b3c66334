package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve productos activos, stock total y cantidad de productos en o bajo el mínimo.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetAlerts devuelve los productos en o bajo su mínimo, ordenados por stock ascendente.
// GET /api/dashboard/alerts?limit=10
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", h.uc.Defaults().AlertLimit)
	if err != nil {
		return writeError(c, err)
	}
	alerts, err := h.uc.GetAlerts(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

// GetRecentMovements devuelve los últimos movimientos con fecha y cantidad formateadas.
// GET /api/dashboard/movements?limit=10
func (h *DashboardHandler) GetRecentMovements(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", h.uc.Defaults().RecentLimit)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.GetRecentMovements(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetChart devuelve la serie diaria de entradas/salidas/ajustes.
// GET /api/dashboard/chart?days=30
func (h *DashboardHandler) GetChart(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", h.uc.Defaults().ChartDays)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetChart(c.UserContext(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
