package handlers

import (
	"errors"
	"log"

	"umkami/internal/cart"
	"umkami/internal/models"
	"umkami/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the per-user cart and checkout.
type CartHandler struct {
	carts        *cart.Store
	orderService *services.OrderService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Store, orderService *services.OrderService) *CartHandler {
	return &CartHandler{
		carts:        carts,
		orderService: orderService,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// cartView is the response shape for every cart read: the raw lines plus the
// derived total and per-business grouping, all recomputed from the same
// snapshot.
type cartView struct {
	Lines  []models.CartLine `json:"lines"`
	Total  int64             `json:"total"`
	Groups []cart.Group      `json:"groups"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Lines:  c.Lines(),
		Total:  c.Total(),
		Groups: c.GroupedByUmkm(),
	}
}

// HandleGetCart returns the caller's current cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	return c.JSON(viewOf(h.carts.ForUser(userID)))
}

// CartItemRequest represents an add/remove cart mutation.
type CartItemRequest struct {
	Item     models.MenuItem `json:"item"`
	UmkmName string          `json:"umkm_name"`
}

// HandleAddItem puts one unit of the item into the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Item.Name == "" || req.Item.UmkmID == "" || req.Item.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item name, umkm_id and a positive price are required.",
		})
	}

	userCart := h.carts.ForUser(userID)
	userCart.AddLine(req.Item, req.UmkmName)
	return c.JSON(viewOf(userCart))
}

// HandleRemoveItem takes one unit of the item out of the caller's cart.
// Removing an item that is not in the cart is a no-op.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userCart := h.carts.ForUser(userID)
	userCart.RemoveLine(req.Item)
	return c.JSON(viewOf(userCart))
}

// HandleCheckout settles the caller's cart. On any failure the response
// carries the cart as it now stands, because earlier partitions may already
// have committed; clients must render from that, not assume a rollback.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	userCart := h.carts.ForUser(userID)

	err := h.orderService.Settle(c.UserContext(), userID, userCart)
	if err == nil {
		return c.JSON(fiber.Map{
			"message": "Order placed successfully",
			"cart":    viewOf(userCart),
		})
	}

	log.Printf("Checkout failed for user %s: %v", userID, err)

	var insufficient *services.InsufficientBalanceError
	var partial *services.PartialCommitError
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cart is empty.",
		})
	case errors.Is(err, services.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Not authenticated.",
		})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"message": "Insufficient balance.",
			"umkm_id": insufficient.UmkmID,
			"needed":  insufficient.Needed,
			"cart":    viewOf(userCart),
		})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Order partially failed after payment; please contact support.",
			"umkm_id": partial.UmkmID,
			"step":    partial.Step,
			"cart":    viewOf(userCart),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
			"cart":    viewOf(userCart),
		})
	}
}
