package handlers

import (
	"log"
	"strings"

	"umkami/internal/models"
	"umkami/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UmkmHandler handles HTTP requests for the business directory: catalog
// browsing, menus, services, reviews, and the owner dashboard.
type UmkmHandler struct {
	umkmService   *services.UmkmService
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewUmkmHandler creates a new UmkmHandler.
func NewUmkmHandler(umkmService *services.UmkmService, reviewService *services.ReviewService) *UmkmHandler {
	return &UmkmHandler{
		umkmService:   umkmService,
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the directory routes with the Fiber app.
func (h *UmkmHandler) RegisterRoutes(router fiber.Router) {
	umkmRoutes := router.Group("/umkm")
	umkmRoutes.Get("/", h.HandleListUmkm)
	umkmRoutes.Get("/:id", h.HandleGetUmkmByID)
	umkmRoutes.Get("/:id/menu", h.HandleGetMenu)
	umkmRoutes.Get("/:id/services", h.HandleGetServices)
	umkmRoutes.Get("/:id/reviews", h.HandleGetReviews)
	umkmRoutes.Post("/:id/reviews", h.HandleAddReview)

	ownerRoutes := router.Group("/owner")
	ownerRoutes.Put("/umkm", h.HandleSaveProfile)
}

// HandleListUmkm lists the directory, optionally filtered by ?q= (name
// substring) and ?category=.
func (h *UmkmHandler) HandleListUmkm(c *fiber.Ctx) error {
	query := c.Query("q")
	category := c.Query("category")

	var (
		list []models.Umkm
		err  error
	)
	if query == "" && category == "" {
		list, err = h.umkmService.GetAllUmkm(c.UserContext())
	} else {
		list, err = h.umkmService.SearchUmkm(c.UserContext(), query, category)
	}
	if err != nil {
		log.Printf("Error listing umkm: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve umkm list",
			"error":   err.Error(),
		})
	}
	return c.JSON(list)
}

// HandleGetUmkmByID retrieves a single business.
func (h *UmkmHandler) HandleGetUmkmByID(c *fiber.Ctx) error {
	umkmID := c.Params("id")
	umkm, err := h.umkmService.GetUmkmByID(c.UserContext(), umkmID)
	if err != nil {
		log.Printf("Error getting umkm by ID %s: %v", umkmID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Umkm not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve umkm",
			"error":   err.Error(),
		})
	}
	return c.JSON(umkm)
}

// HandleGetMenu retrieves a business's menu.
func (h *UmkmHandler) HandleGetMenu(c *fiber.Ctx) error {
	umkmID := c.Params("id")
	menu, err := h.umkmService.GetMenu(c.UserContext(), umkmID)
	if err != nil {
		log.Printf("Error getting menu for umkm %s: %v", umkmID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve menu",
			"error":   err.Error(),
		})
	}
	return c.JSON(menu)
}

// HandleGetServices retrieves a business's service offerings.
func (h *UmkmHandler) HandleGetServices(c *fiber.Ctx) error {
	umkmID := c.Params("id")
	servicesList, err := h.umkmService.GetServices(c.UserContext(), umkmID)
	if err != nil {
		log.Printf("Error getting services for umkm %s: %v", umkmID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve services",
			"error":   err.Error(),
		})
	}
	return c.JSON(servicesList)
}

// HandleGetReviews retrieves a business's reviews in normalized form.
func (h *UmkmHandler) HandleGetReviews(c *fiber.Ctx) error {
	umkmID := c.Params("id")
	reviews, err := h.reviewService.GetReviews(c.UserContext(), umkmID)
	if err != nil {
		log.Printf("Error getting reviews for umkm %s: %v", umkmID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// HandleAddReview submits a new review. The body may be either a structured
// review object or a legacy bare comment string; both decode into the same
// Review shape.
func (h *UmkmHandler) HandleAddReview(c *fiber.Ctx) error {
	umkmID := c.Params("id")

	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.reviewService.AddReview(c.UserContext(), umkmID, &review); err != nil {
		log.Printf("Error adding review for umkm %s: %v", umkmID, err)
		if strings.Contains(err.Error(), "must") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid review",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add review",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review added successfully",
		"review":  review,
	})
}

// SaveProfileRequest represents the owner dashboard submission: the listing
// itself plus full replacements for its menu and service lists.
type SaveProfileRequest struct {
	Umkm     models.Umkm          `json:"umkm"`
	Menu     []models.MenuItem    `json:"menu"`
	Services []models.ServiceItem `json:"services"`
}

// HandleSaveProfile creates or updates the caller's business listing.
// Owner accounts only.
func (h *UmkmHandler) HandleSaveProfile(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != models.RoleOwner {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only owner accounts can edit a business profile.",
		})
	}
	userID, _ := c.Locals("user_id").(string)

	var req SaveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req.Umkm); err != nil {
		return validationErrorResponse(c, err)
	}

	req.Umkm.OwnerID = userID
	umkmID, err := h.umkmService.SaveProfile(c.UserContext(), &req.Umkm, req.Menu, req.Services)
	if err != nil {
		log.Printf("Error saving umkm profile for owner %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save business profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Business profile saved successfully",
		"umkm_id": umkmID,
	})
}
