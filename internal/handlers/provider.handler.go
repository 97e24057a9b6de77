package handlers

import (
	"errors"

	"server/internal/app"
	providerController "server/internal/controllers/providers"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProviderHandler struct {
	Handler
	controller providerController.ProviderController
}

func NewProviderHandler(app app.App, router fiber.Router) *ProviderHandler {
	log := logger.New("handlers").File("provider_handler")
	return &ProviderHandler{
		controller: *app.ProviderController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ProviderHandler) Register() {
	providers := h.router.Group("/providers", h.middleware.RequireAuth, h.middleware.RequireProvider)

	providers.Get("/me", h.overview)
	providers.Get("/:id/patients", h.patients)
	providers.Get("/:id/appointments", h.appointments)
	providers.Get("/:id/risk-summary", h.riskSummary)
	providers.Get("/:id/activity", h.activity)
	providers.Delete("/:id/patients/:patientId", h.discharge)
}

func (h *ProviderHandler) overview(c *fiber.Ctx) error {
	log := h.log.Function("overview")

	user := c.Locals("user").(User)
	overview, err := h.controller.Overview(c.Context(), &user)
	if err != nil {
		log.Er("failed to build provider overview", err, "providerID", user.ID)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to load provider overview"})
	}

	return c.JSON(fiber.Map{"message": "success", "provider": overview})
}

func (h *ProviderHandler) patients(c *fiber.Ctx) error {
	log := h.log.Function("patients")

	providerID := c.Params("id")
	patients, err := h.controller.Patients(c.Context(), providerID)
	if err != nil {
		log.Er("failed to list patients", err, "providerID", providerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "provider not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list patients"})
	}

	return c.JSON(fiber.Map{"message": "success", "patients": patients})
}

func (h *ProviderHandler) appointments(c *fiber.Ctx) error {
	log := h.log.Function("appointments")

	providerID := c.Params("id")
	appointments, err := h.controller.Appointments(c.Context(), providerID)
	if err != nil {
		log.Er("failed to list appointments", err, "providerID", providerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "provider not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list appointments"})
	}

	return c.JSON(fiber.Map{"message": "success", "appointments": appointments})
}

func (h *ProviderHandler) riskSummary(c *fiber.Ctx) error {
	log := h.log.Function("riskSummary")

	providerID := c.Params("id")
	summary, err := h.controller.RiskSummary(c.Context(), providerID)
	if err != nil {
		log.Er("failed to build risk summary", err, "providerID", providerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "provider not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to build risk summary"})
	}

	return c.JSON(fiber.Map{"message": "success", "summary": summary})
}

func (h *ProviderHandler) activity(c *fiber.Ctx) error {
	log := h.log.Function("activity")

	providerID := c.Params("id")
	activities, err := h.controller.Activity(c.Context(), providerID)
	if err != nil {
		log.Er("failed to build activity feed", err, "providerID", providerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "provider not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to build activity feed"})
	}

	return c.JSON(fiber.Map{"message": "success", "activity": activities})
}

func (h *ProviderHandler) discharge(c *fiber.Ctx) error {
	log := h.log.Function("discharge")

	providerID := c.Params("id")
	patientID := c.Params("patientId")

	user := c.Locals("user").(User)
	if err := h.controller.Discharge(c.Context(), &user, providerID, patientID); err != nil {
		log.Er("failed to discharge patient", err,
			"providerID", providerID, "patientID", patientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient not found"})
		}
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "not authorized to remove this patient"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
