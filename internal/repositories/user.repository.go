package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/errs"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
	"time"

	"gorm.io/gorm"
)

const USER_CACHE_EXPIRY = 1 * time.Hour

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUser(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Auth("email is already registered")
		}
		return errs.Storage("failed to create user", log.Err("failed to create user", err, "email", user.Email))
	}

	if err := r.addUserToCache(ctx, user); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found, err := database.NewCacheBuilder(r.db.Cache.User, id).
		WithContext(ctx).Get(&user); err == nil && found {
		return &user, nil
	}

	if err := r.getDB(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Storage("failed to get user", log.Err("failed to get user by id", err, "id", id))
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.getDB(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Storage("failed to get user", log.Err("failed to get user by email", err))
	}

	return &user, nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
