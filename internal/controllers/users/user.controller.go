package userController

import (
	"context"
	"regexp"
	"server/config"
	"server/internal/errs"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

type UserController struct {
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

func New(userRepo repositories.UserRepository, config config.Config) *UserController {
	return &UserController{
		userRepo: userRepo,
		config:   config,
		log:      logger.New("UserController"),
	}
}

// Signup registers a new user and returns a session token so the client
// is logged in immediately. Duplicate emails surface as an auth error.
func (uc *UserController) Signup(ctx context.Context, request *SignupRequest) (*User, string, error) {
	log := uc.log.Function("Signup")

	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if !emailPattern.MatchString(email) {
		fields["email"] = "a valid email address is required"
	}
	if len(request.Password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}
	if strings.TrimSpace(request.FirstName) == "" {
		fields["firstName"] = "first name is required"
	}
	if strings.TrimSpace(request.LastName) == "" {
		fields["lastName"] = "last name is required"
	}
	if len(fields) > 0 {
		return nil, "", errs.Validation(fields)
	}

	user := &User{
		FirstName: strings.TrimSpace(request.FirstName),
		LastName:  strings.TrimSpace(request.LastName),
		Email:     email,
		Password:  request.Password,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, "", log.Err("failed to issue session token", err, "userID", user.ID)
	}

	log.Info("user registered", "userID", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns a session token. Unknown email
// and wrong password produce the same error.
func (uc *UserController) Login(ctx context.Context, request *LoginRequest) (*User, string, error) {
	log := uc.log.Function("Login")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		return nil, "", errs.Auth("email and password are required")
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, "", errs.Auth("invalid credentials")
		}
		return nil, "", err
	}

	if !user.CheckPassword(request.Password) {
		return nil, "", errs.Auth("invalid credentials")
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, "", log.Err("failed to issue session token", err, "userID", user.ID)
	}

	return user, token, nil
}

// GetProfile returns the sanitized profile. The User JSON shape never
// includes credential material.
func (uc *UserController) GetProfile(ctx context.Context, userID string) (*User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserController) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.config.SessionDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.config.JWTSecret))
}
