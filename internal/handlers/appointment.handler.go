package handlers

import (
	"errors"

	"server/internal/app"
	appointmentController "server/internal/controllers/appointments"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	Handler
	controller appointmentController.AppointmentController
}

func NewAppointmentHandler(app app.App, router fiber.Router) *AppointmentHandler {
	log := logger.New("handlers").File("appointment_handler")
	return &AppointmentHandler{
		controller: *app.AppointmentController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AppointmentHandler) Register() {
	appointments := h.router.Group("/appointments", h.middleware.RequireAuth)

	appointments.Post("/book", h.book)
	appointments.Get("/provider/:email", h.byProvider)
	appointments.Get("/patient/:email", h.byPatient)
	appointments.Put("/:id/status", h.updateStatus)
}

func (h *AppointmentHandler) book(c *fiber.Ctx) error {
	log := h.log.Function("book")

	var request BookAppointmentRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse booking request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse booking request"})
	}

	appointment, err := h.controller.Book(c.Context(), &request)
	if err != nil {
		log.Er("failed to book appointment", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to book appointment", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "appointment": appointment})
}

func (h *AppointmentHandler) byProvider(c *fiber.Ctx) error {
	log := h.log.Function("byProvider")

	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "provider email is required"})
	}

	appointments, err := h.controller.ByProviderEmail(c.Context(), email)
	if err != nil {
		log.Er("failed to list provider appointments", err, "email", email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "provider not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list appointments"})
	}

	return c.JSON(fiber.Map{"message": "success", "appointments": appointments})
}

func (h *AppointmentHandler) byPatient(c *fiber.Ctx) error {
	log := h.log.Function("byPatient")

	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "patient email is required"})
	}

	appointments, err := h.controller.ByPatientEmail(c.Context(), email)
	if err != nil {
		log.Er("failed to list patient appointments", err, "email", email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list appointments"})
	}

	return c.JSON(fiber.Map{"message": "success", "appointments": appointments})
}

func (h *AppointmentHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.Function("updateStatus")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "appointment ID is required"})
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse status update", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse status update"})
	}

	appointment, err := h.controller.UpdateStatus(c.Context(), id, request.Status)
	if err != nil {
		log.Er("failed to update appointment status", err, "appointmentID", id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "appointment not found"})
		}
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to update appointment", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "appointment": appointment})
}
