package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Consumibles-api/internal/application/depletion"
	"github.com/jhoicas/Consumibles-api/internal/application/dto"
	"github.com/jhoicas/Consumibles-api/internal/domain"
)

// UsageHandler expone el motor de agotamiento: registro de uso y consulta del
// historial.
type UsageHandler struct {
	recordUC  *depletion.RecordUsageUseCase
	historyUC *depletion.UsageHistoryUseCase
}

// NewUsageHandler construye el handler.
func NewUsageHandler(recordUC *depletion.RecordUsageUseCase, historyUC *depletion.UsageHistoryUseCase) *UsageHandler {
	return &UsageHandler{recordUC: recordUC, historyUC: historyUC}
}

// RecordUsage godoc
// @Summary      Registrar el uso de una unidad del producto
// @Description  Descuenta una unidad, registra el evento y recalcula promedio
// @Description  mensual, días restantes y estado de alerta, todo en una sola
// @Description  transacción.
// @Tags         usage
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordUsageRequest  true  "product_id y nota opcional"
// @Success      201   {object}  dto.RecordUsageResponse
// @Failure      400   {object}  dto.ErrorResponse  "sin stock o body inválido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/usage [post]
func (h *UsageHandler) RecordUsage(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.recordUC.RecordUsage(context.Background(), depletion.RecordUsageInput{
		StoreID:   GetStoreID(c),
		ProductID: in.ProductID,
		Note:      in.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrOutOfStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: "el producto no tiene unidades disponibles"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de usos de un producto (más reciente primero)
// @Tags         usage
// @Produce      json
// @Security     BearerAuth
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "límite (default 20)"
// @Param        offset  query  int     false  "offset"
// @Success      200  {object}  dto.UsageHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/usage [get]
func (h *UsageHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.historyUC.ListByProduct(context.Background(), GetStoreID(c), c.Params("id"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
