package handlers

import (
	"server/internal/app"
	userController "server/internal/controllers/users"
	"server/internal/logger"
	. "server/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller      *userController.UserController
	sessionDuration time.Duration
	secureCookies   bool
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller:      app.UserController,
		sessionDuration: app.Config.SessionDuration,
		secureCookies:   app.Config.Environment == "production",
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	h.router.Post("/signup", h.signup)
	h.router.Post("/login", h.login)
	h.router.Post("/logout", h.logout)

	users := h.router.Group("/users")
	users.Get("/:id", h.getUser)
}

func (h *UserHandler) signup(c *fiber.Ctx) error {
	log := h.log.Function("signup")

	var request SignupRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse signup request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse signup request"})
	}

	user, token, err := h.controller.Signup(c.Context(), &request)
	if err != nil {
		return errorResponse(c, err)
	}

	h.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "user": user, "token": token})
}

func (h *UserHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, token, err := h.controller.Login(c.Context(), &request)
	if err != nil {
		return errorResponse(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"message": "success", "user": user, "token": token})
}

func (h *UserHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	if token := h.middleware.TokenFromRequest(c); token != "" {
		if err := h.middleware.RevokeSession(c.Context(), token); err != nil {
			log.Warn("failed to revoke session token", "error", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.secureCookies,
	})
	return c.JSON(fiber.Map{"message": "success"})
}

// getUser returns the caller's own sanitized profile. Requests for any
// other user's profile answer not found.
func (h *UserHandler) getUser(c *fiber.Ctx) error {
	requesterID, _ := c.Locals("userID").(string)
	if requesterID == "" || requesterID != c.Params("id") {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "user not found"})
	}

	user, err := h.controller.GetProfile(c.Context(), requesterID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.sessionDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}
