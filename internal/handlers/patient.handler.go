package handlers

import (
	"errors"

	"server/internal/app"
	patientController "server/internal/controllers/patients"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PatientHandler struct {
	Handler
	controller patientController.PatientController
}

func NewPatientHandler(app app.App, router fiber.Router) *PatientHandler {
	log := logger.New("handlers").File("patient_handler")
	return &PatientHandler{
		controller: *app.PatientController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PatientHandler) Register() {
	patients := h.router.Group("/patients", h.middleware.RequireAuth)

	patients.Get("/me", h.middleware.RequirePatient, h.dashboard)
	patients.Patch("/update-static-info", h.middleware.RequirePatient, h.updateStaticInfo)
	patients.Get("/:patientId/latest-risk", h.latestRisk)
}

func (h *PatientHandler) dashboard(c *fiber.Ctx) error {
	log := h.log.Function("dashboard")

	user := c.Locals("user").(User)
	dashboard, err := h.controller.Dashboard(c.Context(), &user)
	if err != nil {
		log.Er("failed to build dashboard", err, "userID", user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to load dashboard"})
	}

	return c.JSON(fiber.Map{"message": "success", "dashboard": dashboard})
}

func (h *PatientHandler) updateStaticInfo(c *fiber.Ctx) error {
	log := h.log.Function("updateStaticInfo")

	var request UpdateStaticInfoRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse static info request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	user := c.Locals("user").(User)
	patient, err := h.controller.UpdateStaticInfo(c.Context(), &user, &request)
	if err != nil {
		log.Er("failed to update static info", err, "userID", user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to update patient info"})
	}

	return c.JSON(fiber.Map{"message": "success", "patient": patient})
}

func (h *PatientHandler) latestRisk(c *fiber.Ctx) error {
	log := h.log.Function("latestRisk")

	patientID := c.Params("patientId")
	if patientID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "patient ID is required"})
	}

	// Patients can only read their own record; providers can read any.
	user := c.Locals("user").(User)
	if !user.IsProvider {
		patient, err := h.controller.ProfileForUser(c.Context(), user.ID)
		if err != nil || patient.ID != patientID {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": "not authorized to view this record"})
		}
	}

	latest, err := h.controller.LatestRisk(c.Context(), patientID)
	if err != nil {
		log.Er("failed to load latest risk", err, "patientID", patientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to load latest risk"})
	}
	if latest == nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "no assessments recorded for patient"})
	}

	return c.JSON(fiber.Map{"message": "success", "latest": latest})
}
