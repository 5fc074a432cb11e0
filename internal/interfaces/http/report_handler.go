package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/application/reports"
	"github.com/jhoicas/Consumibles-api/internal/domain"
)

// ReportHandler reportes PDF de la tienda.
type ReportHandler struct {
	lowStockUC *reports.LowStockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(lowStockUC *reports.LowStockReportUseCase) *ReportHandler {
	return &ReportHandler{lowStockUC: lowStockUC}
}

// LowStock godoc
// @Summary      Reporte PDF de productos en o bajo su umbral de alerta
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	pdf, err := h.lowStockUC.Generate(context.Background(), GetStoreID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
