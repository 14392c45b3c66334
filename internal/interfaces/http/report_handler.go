package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro-api/internal/application/report"
)

// defaultReportDays ventana por defecto de la planilla de movimientos.
const defaultReportDays = 30

// ReportHandler descarga de reportes.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockPDF godoc
// @Summary      Reporte de stock (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.StockPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", filename, b)
}

// MovementsXLSX godoc
// @Summary      Planilla de movimientos (XLSX)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements.xlsx [get]
func (h *ReportHandler) MovementsXLSX(c *fiber.Ctx) error {
	days, err := queryInt(c, "days", defaultReportDays)
	if err != nil {
		return writeError(c, err)
	}
	b, filename, err := h.uc.MovementsXLSX(c.UserContext(), days)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, b)
}

func sendFile(c *fiber.Ctx, contentType, filename string, b []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(b)
}
