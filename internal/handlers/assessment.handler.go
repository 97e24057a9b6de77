package handlers

import (
	"errors"

	"server/internal/app"
	assessmentController "server/internal/controllers/assessment"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/risk"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssessmentHandler struct {
	Handler
	controller assessmentController.AssessmentController
}

func NewAssessmentHandler(app app.App, router fiber.Router) *AssessmentHandler {
	log := logger.New("handlers").File("assessment_handler")
	return &AssessmentHandler{
		controller: *app.AssessmentController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AssessmentHandler) Register() {
	assess := h.router.Group("/assess-risk", h.middleware.RequireAuth)
	assess.Post("/", h.middleware.RequirePatient, h.assessRisk)
	assess.Get("/patient/:patientId", h.history)
}

// assessRisk accepts the raw submission as an open JSON object. Unknown or
// malformed fields are absorbed by the sanitizer rather than rejected here.
func (h *AssessmentHandler) assessRisk(c *fiber.Ctx) error {
	log := h.log.Function("assessRisk")

	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		log.Er("failed to parse assessment submission", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse assessment submission"})
	}

	user := c.Locals("user").(User)
	record, err := h.controller.AssessAndRecord(c.Context(), &user, raw)
	if err != nil {
		log.Er("assessment failed", err, "userID", user.ID)

		if errors.Is(err, risk.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "invalid assessment submission"})
		}
		var scoringErr *risk.ScoringError
		if errors.As(err, &scoringErr) {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "risk scoring failed"})
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient profile not found"})
		}

		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to record assessment"})
	}

	return c.JSON(fiber.Map{"message": "success", "assessment": record})
}

func (h *AssessmentHandler) history(c *fiber.Ctx) error {
	log := h.log.Function("history")

	patientID := c.Params("patientId")
	if patientID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "patient ID is required"})
	}

	// Patients can only read their own history; providers can read any.
	user := c.Locals("user").(User)
	if !user.IsProvider {
		patient, err := h.controller.PatientForUser(c.Context(), user.ID)
		if err != nil || patient.ID != patientID {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": "not authorized to view this history"})
		}
	}

	entries, err := h.controller.History(c.Context(), patientID)
	if err != nil {
		log.Er("failed to load risk history", err, "patientID", patientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to load risk history"})
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "no assessments recorded for patient"})
	}

	return c.JSON(fiber.Map{"message": "success", "history": entries})
}
