package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/dto"
	"github.com/Patel-Pritam/mahadev-trader-suite/internal/application/inventory"
)

// InventoryHandler handles stock movements and ledger queries (protected).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	queries  *inventory.StockQueryUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, queries *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, queries: queries}
}

// RegisterMovement godoc
// @Summary      Register a stock movement (IN, OUT, ADJUSTMENT)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movement data; unit_cost required for IN"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "owner_id required"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.register.RegisterMovementFromRequest(c.UserContext(), ownerID, GetUserID(c), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// GetStock godoc
// @Summary      Current quantity on hand for one product
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "Product ID"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId is required"})
	}
	out, err := h.queries.GetStock(GetOwnerID(c), productID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListStock godoc
// @Summary      Quantities on hand across the account
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	out, err := h.queries.ListStock(GetOwnerID(c), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movement history of one product
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Product ID"
// @Param        from       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to         query  string  false  "End date (YYYY-MM-DD)"
// @Param        limit      query  int     false  "Limit"   default(50)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId is required"})
	}
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be YYYY-MM-DD"})
	}
	out, err := h.queries.ListMovements(GetOwnerID(c), productID, from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
