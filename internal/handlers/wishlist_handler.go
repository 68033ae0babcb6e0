package handlers

import (
	"log"

	"umkami/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for saved businesses.
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleList)
	wishlistRoutes.Get("/:umkmId", h.HandleContains)
	wishlistRoutes.Post("/:umkmId", h.HandleAdd)
	wishlistRoutes.Delete("/:umkmId", h.HandleRemove)
}

// HandleList returns the caller's saved businesses, resolved to full records.
func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	list, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		log.Printf("Error listing wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(list)
}

// HandleContains reports whether the caller has saved the business.
func (h *WishlistHandler) HandleContains(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	umkmID := c.Params("umkmId")

	wishlisted, err := h.service.IsWishlisted(c.UserContext(), userID, umkmID)
	if err != nil {
		log.Printf("Error checking wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not check wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"umkm_id":    umkmID,
		"wishlisted": wishlisted,
	})
}

// HandleAdd saves a business to the caller's wishlist.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	umkmID := c.Params("umkmId")

	if err := h.service.Add(c.UserContext(), userID, umkmID); err != nil {
		log.Printf("Error adding umkm %s to wishlist of user %s: %v", umkmID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to wishlist",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Added to wishlist",
	})
}

// HandleRemove unsaves a business.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	umkmID := c.Params("umkmId")

	if err := h.service.Remove(c.UserContext(), userID, umkmID); err != nil {
		log.Printf("Error removing umkm %s from wishlist of user %s: %v", umkmID, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Removed from wishlist",
	})
}
