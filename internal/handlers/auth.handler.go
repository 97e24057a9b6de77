package handlers

import (
	"server/internal/app"
	authController "server/internal/controllers/auth"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthController
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: *app.AuthController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/signup/provider", h.signupProvider)
	auth.Post("/signup/patient", h.signupPatient)
	auth.Post("/login", h.login)
}

func (h *AuthHandler) signupProvider(c *fiber.Ctx) error {
	log := h.log.Function("signupProvider")

	var request SignupProviderRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse provider signup request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse signup request"})
	}

	user, err := h.controller.SignupProvider(c.Context(), &request)
	if err != nil {
		log.Er("provider signup rejected", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "signup failed", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "user": user})
}

func (h *AuthHandler) signupPatient(c *fiber.Ctx) error {
	log := h.log.Function("signupPatient")

	var request SignupPatientRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse patient signup request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse signup request"})
	}

	user, patient, err := h.controller.SignupPatient(c.Context(), &request)
	if err != nil {
		log.Er("patient signup rejected", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "signup failed", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "user": user, "patient": patient})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	response, err := h.controller.Login(c.Context(), &request)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid email or password"})
	}

	return c.JSON(response)
}
