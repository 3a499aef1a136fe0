package middleware

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/repositories"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Paths the session guard never touches.
var publicPaths = map[string]bool{
	"/api/signup": true,
	"/api/login":  true,
	"/api/logout": true,
	"/api/health": true,
}

type Middleware struct {
	db       database.DB
	config   config.Config
	userRepo repositories.UserRepository
	log      logger.Logger
}

func New(db database.DB, config config.Config, userRepo repositories.UserRepository) Middleware {
	return Middleware{
		db:       db,
		config:   config,
		userRepo: userRepo,
		log:      logger.New("middleware"),
	}
}

// SessionGuard verifies the session token ahead of every protected
// request. No data access happens before the signature and expiry check
// out. Unauthenticated API calls get 401 JSON; protected page prefixes
// redirect to the login page.
func (m Middleware) SessionGuard() fiber.Handler {
	log := m.log.Function("SessionGuard")

	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !m.isProtected(path) {
			return c.Next()
		}

		token := m.TokenFromRequest(c)
		if token == "" {
			return m.reject(c)
		}

		subject, err := m.verifyToken(token)
		if err != nil {
			log.Warn("rejected session token", "path", path, "error", err)
			return m.reject(c)
		}

		if m.isSessionRevoked(c.Context(), token) {
			log.Warn("rejected revoked session token", "path", path, "userID", subject)
			return m.reject(c)
		}

		user, err := m.userRepo.GetByID(c.Context(), subject)
		if err != nil {
			log.Warn("session subject no longer resolves to a user", "userID", subject)
			return m.reject(c)
		}

		c.Locals("userID", subject)
		c.Locals("user", *user)
		return c.Next()
	}
}

func (m Middleware) isProtected(path string) bool {
	if publicPaths[path] {
		return false
	}
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/ws") {
		return true
	}
	for _, prefix := range m.config.PagePrefixes() {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (m Middleware) reject(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "Unauthorized"})
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// verifyToken checks the HS256 signature and expiry and returns the
// subject. Any other signing algorithm is rejected outright.
func (m Middleware) verifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(m.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}

// TokenFromRequest reads the session token from the cookie, falling
// back to an Authorization bearer header.
func (m Middleware) TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies("token"); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// RevokeSession blacklists a token in the session cache until its
// natural expiry, so logout takes effect server-side and not just in
// the browser.
func (m Middleware) RevokeSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return database.NewCacheBuilder(m.db.Cache.Session, revokedKey(token)).
		WithStruct(true).
		WithTTL(m.config.SessionDuration).
		WithContext(ctx).
		Set()
}

// Without a session cache client the lookup misses, so revocation is
// best-effort and cookie expiry remains the backstop.
func (m Middleware) isSessionRevoked(ctx context.Context, token string) bool {
	var revoked bool
	found, err := database.NewCacheBuilder(m.db.Cache.Session, revokedKey(token)).
		WithContext(ctx).
		Get(&revoked)
	return err == nil && found
}

func revokedKey(token string) string {
	return "revoked:" + token
}
