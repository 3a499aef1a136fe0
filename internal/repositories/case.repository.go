package repositories

import (
	"context"
	"errors"
	"server/internal/database"
	"server/internal/errs"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CASE_CACHE_EXPIRY      = 1 * time.Hour
	CASE_LIST_CACHE_EXPIRY = 5 * time.Minute
)

type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id string) (*Case, error)
	GetAllForUser(ctx context.Context, ownerID string) ([]*Case, error)
	Update(ctx context.Context, c *Case) error
	Delete(ctx context.Context, id, ownerID string) error
}

type caseRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCase(db database.DB) CaseRepository {
	return &caseRepository{
		db:  db,
		log: logger.New("caseRepository"),
	}
}

func (r *caseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Create enforces the adapter's own required-field contract before the
// write, so callers that bypass the intake controller still cannot
// persist an incomplete case.
func (r *caseRepository) Create(ctx context.Context, c *Case) error {
	log := r.log.Function("Create")

	if fields := requiredFieldErrors(c); len(fields) > 0 {
		return errs.Validation(fields)
	}

	if err := r.getDB(ctx).Create(c).Error; err != nil {
		return errs.Storage("failed to create case", log.Err("failed to create case", err, "ownerID", c.OwnerID))
	}

	if err := r.addCaseToCache(ctx, c); err != nil {
		log.Warn("failed to add case to cache", "caseID", c.ID, "error", err)
	}
	r.dropListCache(ctx, c.OwnerID)

	return nil
}

func requiredFieldErrors(c *Case) map[string]string {
	required := []struct{ name, value string }{
		{"userId", c.OwnerID},
		{"issueDescription", c.IssueDescription},
		{"partiesInvolved", c.PartiesInvolved},
		{"incidentDate", c.IncidentDate},
		{"zipCode", c.ZipCode},
		{"desiredResolution", c.DesiredResolution},
	}

	fields := make(map[string]string)
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			fields[field.name] = field.name + " is required"
		}
	}
	return fields
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*Case, error) {
	log := r.log.Function("GetByID")

	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.NotFound("case not found")
	}

	var c Case
	if found, err := database.NewCacheBuilder(r.db.Cache.Case, id).
		WithContext(ctx).Get(&c); err == nil && found {
		return &c, nil
	}

	if err := r.getDB(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("case not found")
		}
		return nil, errs.Storage("failed to get case", log.Err("failed to get case by id", err, "id", id))
	}

	if err := r.addCaseToCache(ctx, &c); err != nil {
		log.Warn("failed to add case to cache", "caseID", id, "error", err)
	}

	return &c, nil
}

func (r *caseRepository) GetAllForUser(ctx context.Context, ownerID string) ([]*Case, error) {
	log := r.log.Function("GetAllForUser")

	var cases []*Case
	listKey := "list:" + ownerID
	if found, err := database.NewCacheBuilder(r.db.Cache.Case, listKey).
		WithContext(ctx).Get(&cases); err == nil && found {
		return cases, nil
	}

	if err := r.getDB(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return nil, errs.Storage("failed to list cases", log.Err("failed to list cases", err, "ownerID", ownerID))
	}

	if err := database.NewCacheBuilder(r.db.Cache.Case, listKey).
		WithStruct(cases).
		WithTTL(CASE_LIST_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache case list", "ownerID", ownerID, "error", err)
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *Case) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(c).Error; err != nil {
		return errs.Storage("failed to update case", log.Err("failed to update case", err, "caseID", c.ID))
	}

	if err := r.addCaseToCache(ctx, c); err != nil {
		log.Warn("failed to update case in cache", "caseID", c.ID, "error", err)
	}
	r.dropListCache(ctx, c.OwnerID)

	return nil
}

// Delete soft-deletes a case. The owner predicate is part of the delete
// itself so a non-owner request falls through to NotFound.
func (r *caseRepository) Delete(ctx context.Context, id, ownerID string) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Where("owner_id = ?", ownerID).Delete(&Case{}, "id = ?", id)
	if result.Error != nil {
		return errs.Storage("failed to delete case", log.Err("failed to delete case", result.Error, "caseID", id))
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("case not found")
	}

	if err := database.NewCacheBuilder(r.db.Cache.Case, id).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to remove case from cache", "caseID", id, "error", err)
	}
	r.dropListCache(ctx, ownerID)

	return nil
}

func (r *caseRepository) addCaseToCache(ctx context.Context, c *Case) error {
	return database.NewCacheBuilder(r.db.Cache.Case, c.ID).
		WithStruct(c).
		WithTTL(CASE_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *caseRepository) dropListCache(ctx context.Context, ownerID string) {
	if err := database.NewCacheBuilder(r.db.Cache.Case, "list:"+ownerID).
		WithContext(ctx).Delete(); err != nil {
		r.log.Function("dropListCache").
			Warn("failed to drop case list cache", "ownerID", ownerID, "error", err)
	}
}
