package middleware

import (
	"strings"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	db           database.DB
	config       config.Config
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	log          logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	userRepo repositories.UserRepository,
	tokenService *services.TokenService,
) Middleware {
	return Middleware{
		db:           db,
		config:       config,
		userRepo:     userRepo,
		tokenService: tokenService,
		log:          logger.New("middleware"),
	}
}

// RequireAuth resolves the bearer token to a user and stores it in locals.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	log := m.log.Function("RequireAuth")

	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "missing bearer token"})
	}

	userID, err := m.tokenService.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid or expired token"})
	}

	user, err := m.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		log.Er("token subject has no user", err, "userID", userID)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid or expired token"})
	}

	c.Locals("user", *user)
	return c.Next()
}

// RequireProvider gates routes to provider accounts. Must run after
// RequireAuth.
func (m Middleware) RequireProvider(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(User)
	if !ok || !user.IsProvider {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "provider account required"})
	}
	return c.Next()
}

// RequirePatient gates routes to patient accounts. Must run after
// RequireAuth.
func (m Middleware) RequirePatient(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(User)
	if !ok || user.IsProvider {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "patient account required"})
	}
	return c.Next()
}

// WebSocketAuth authenticates the upgrade request from a token query
// parameter and stashes the provider ID for the connection handler.
func (m Middleware) WebSocketAuth(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		token = bearerToken(c)
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "missing token"})
	}

	userID, err := m.tokenService.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid or expired token"})
	}

	user, err := m.userRepo.GetByID(c.Context(), userID)
	if err != nil || !user.IsProvider {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "provider account required"})
	}

	c.Locals("providerID", user.ID)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
