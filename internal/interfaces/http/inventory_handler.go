package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// defaultMovementPage filas por defecto de los listados del libro.
const defaultMovementPage = 50

// InventoryHandler maneja el libro de movimientos y las consultas de stock.
type InventoryHandler struct {
	register  *inventory.RegisterMovementUseCase
	movements *inventory.MovementQueryUseCase
	balances  inventory.StockReader
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	movements *inventory.MovementQueryUseCase,
	balances inventory.StockReader,
) *InventoryHandler {
	return &InventoryHandler{register: register, movements: movements, balances: balances}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  INBOUND/OUTBOUND con cantidad >= 0; ADJUSTMENT admite signo. occurred_at opcional (default: ahora).
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string                       false  "Usuario que registra"
// @Param        body       body    dto.RegisterMovementRequest  true   "product_id, type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetUserID(c)
	}
	mov, err := h.register.RegisterMovementFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListRecent godoc
// @Summary      Últimos movimientos
// @Tags         inventory
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (default 50, máx 500)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListRecent(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", defaultMovementPage)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.movements.ListRecent(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Máximo de filas (default 50, máx 500)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit", defaultMovementPage)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.movements.ListByProduct(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// GetStock godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	id := c.Params("id")
	stock, err := h.balances.CurrentStock(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: id, CurrentStock: stock})
}

// GetStockBatch godoc
// @Summary      Stock actual de varios productos
// @Description  Una sola lectura agregada del libro. IDs sin movimientos devuelven 0.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchStockRequest  true  "product_ids"
// @Success      200   {object}  dto.BatchStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/batch [post]
func (h *InventoryHandler) GetStockBatch(c *fiber.Ctx) error {
	var in dto.BatchStockRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	stocks, err := h.balances.CurrentStockBatch(c.UserContext(), in.ProductIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BatchStockResponse{Stocks: stocks})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductSKU:  m.ProductSKU,
		ProductName: m.ProductName,
		OccurredAt:  m.OccurredAt,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Source:      m.Source,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}
