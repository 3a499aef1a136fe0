package userController

import (
	"context"
	"server/config"
	"server/internal/errs"
	. "server/internal/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return errs.Auth("email is already registered")
	}
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errs.NotFound("user not found")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, errs.NotFound("user not found")
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		SessionDuration: 24 * time.Hour,
	}
}

func validSignup() *SignupRequest {
	return &SignupRequest{
		Email:     "dana@example.com",
		Password:  "longenoughpassword",
		FirstName: "Dana",
		LastName:  "Whitfield",
	}
}

func TestSignup_Success(t *testing.T) {
	controller := New(newFakeUserRepo(), testConfig())

	user, token, err := controller.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, token)
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupRequest)
		field  string
	}{
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *SignupRequest) { r.Password = "short" }, "password"},
		{"missing first name", func(r *SignupRequest) { r.FirstName = "  " }, "firstName"},
		{"missing last name", func(r *SignupRequest) { r.LastName = "" }, "lastName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := New(newFakeUserRepo(), testConfig())

			request := validSignup()
			tt.mutate(request)

			_, _, err := controller.Signup(context.Background(), request)
			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))

			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Contains(t, e.Fields, tt.field)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	controller := New(repo, testConfig())

	_, _, err := controller.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, _, err = controller.Signup(context.Background(), validSignup())
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
}

func TestSignup_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	controller := New(repo, testConfig())

	request := validSignup()
	request.Email = "  Dana@Example.COM "

	user, _, err := controller.Signup(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	controller := New(repo, testConfig())

	_, _, err := controller.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	user, token, err := controller.Login(context.Background(), &LoginRequest{
		Email:    "dana@example.com",
		Password: "longenoughpassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.NotEmpty(t, token)
}

func TestLogin_SameErrorForUnknownEmailAndBadPassword(t *testing.T) {
	repo := newFakeUserRepo()
	controller := New(repo, testConfig())

	_, _, err := controller.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, _, unknownErr := controller.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "longenoughpassword",
	})
	_, _, badPassErr := controller.Login(context.Background(), &LoginRequest{
		Email:    "dana@example.com",
		Password: "wrongpassword",
	})

	require.Error(t, unknownErr)
	require.Error(t, badPassErr)
	assert.Equal(t, errs.KindAuth, errs.KindOf(unknownErr))
	assert.Equal(t, errs.KindAuth, errs.KindOf(badPassErr))
	assert.Equal(t, unknownErr.Error(), badPassErr.Error(),
		"responses must not reveal which credential was wrong")
}

func TestIssuedToken_Claims(t *testing.T) {
	repo := newFakeUserRepo()
	controller := New(repo, testConfig())

	user, token, err := controller.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, user.ID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, 24*time.Hour, remaining, float64(time.Minute),
		"session lifetime is 24 hours")
}
