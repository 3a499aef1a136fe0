package caseController

import (
	"context"
	"regexp"
	"server/internal/errs"
	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/utils"
	"strings"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

const (
	minIssueDescriptionLength  = 10
	minPartiesInvolvedLength   = 5
	minDesiredResolutionLength = 10
)

type CaseController struct {
	caseRepo                 repositories.CaseRepository
	cacheInvalidationService *services.CacheInvalidationService
	dateValidator            *utils.DateValidator
	log                      logger.Logger
}

func New(
	caseRepo repositories.CaseRepository,
	cacheInvalidationService *services.CacheInvalidationService,
) *CaseController {
	return &CaseController{
		caseRepo:                 caseRepo,
		cacheInvalidationService: cacheInvalidationService,
		dateValidator:            utils.NewDateValidator(),
		log:                      logger.New("CaseController"),
	}
}

// CreateCase validates the intake submission and persists it under the
// authenticated owner. Validation runs in full before any repository
// call, and the owner always comes from the verified session, never the
// request body.
func (cc *CaseController) CreateCase(ctx context.Context, ownerID string, request *CreateCaseRequest) (*Case, error) {
	log := cc.log.Function("CreateCase")

	if ownerID == "" {
		return nil, errs.Auth("missing authenticated user")
	}

	dateResult := cc.dateValidator.ValidateAndConvert(request.IncidentDate)
	if fields := cc.validate(request, dateResult); len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	newCase := &Case{
		OwnerID:           ownerID,
		IssueDescription:  strings.TrimSpace(request.IssueDescription),
		PartiesInvolved:   strings.TrimSpace(request.PartiesInvolved),
		IncidentDate:      dateResult.StandardFormat,
		ZipCode:           request.ZipCode,
		IssueImpact:       request.IssueImpact,
		OtherImpact:       strings.TrimSpace(request.OtherImpact),
		DesiredResolution: strings.TrimSpace(request.DesiredResolution),
		Documents:         StringList{},
	}

	if err := cc.caseRepo.Create(ctx, newCase); err != nil {
		return nil, err
	}

	if err := cc.cacheInvalidationService.InvalidateUserCases(ctx, ownerID,
		events.TypeCaseCreated, map[string]any{"caseId": newCase.ID}); err != nil {
		log.Warn("failed to invalidate case caches after create",
			"ownerID", ownerID, "error", err)
	}

	log.Info("case created", "caseID", newCase.ID, "ownerID", ownerID)
	return newCase, nil
}

func (cc *CaseController) validate(request *CreateCaseRequest, dateResult utils.ValidationResult) map[string]string {
	fields := map[string]string{}

	if len(strings.TrimSpace(request.IssueDescription)) < minIssueDescriptionLength {
		fields["issueDescription"] = "issue description must be at least 10 characters"
	}
	if len(strings.TrimSpace(request.PartiesInvolved)) < minPartiesInvolvedLength {
		fields["partiesInvolved"] = "parties involved must be at least 5 characters"
	}
	if !dateResult.IsValid {
		fields["incidentDate"] = "incident date must be a valid date"
	}
	if !zipPattern.MatchString(request.ZipCode) {
		fields["zipCode"] = "zip code must be exactly 5 digits"
	}
	if len(strings.TrimSpace(request.DesiredResolution)) < minDesiredResolutionLength {
		fields["desiredResolution"] = "desired resolution must be at least 10 characters"
	}

	return fields
}

// ListCases returns the owner's cases, newest first.
func (cc *CaseController) ListCases(ctx context.Context, ownerID string) ([]*Case, error) {
	return cc.caseRepo.GetAllForUser(ctx, ownerID)
}

// GetCase fetches one case and enforces ownership. A mismatched owner
// gets the same not-found answer as a missing record so case IDs do not
// leak existence.
func (cc *CaseController) GetCase(ctx context.Context, caseID, requesterID string) (*Case, error) {
	c, err := cc.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c.OwnerID != requesterID {
		return nil, errs.NotFound("case not found")
	}

	return c, nil
}

func (cc *CaseController) DeleteCase(ctx context.Context, caseID, requesterID string) error {
	log := cc.log.Function("DeleteCase")

	if err := cc.caseRepo.Delete(ctx, caseID, requesterID); err != nil {
		return err
	}

	if err := cc.cacheInvalidationService.InvalidateUserCases(ctx, requesterID,
		events.TypeCaseDeleted, map[string]any{"caseId": caseID}); err != nil {
		log.Warn("failed to invalidate case caches after delete",
			"caseID", caseID, "error", err)
	}

	return nil
}
