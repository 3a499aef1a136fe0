package analysisController

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"server/internal/ai"
	"server/internal/errs"
	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"strings"
	"time"
)

type AnalysisController struct {
	caseRepo                 repositories.CaseRepository
	aiClient                 ai.Client
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	timeout                  time.Duration
	log                      logger.Logger
}

func New(
	caseRepo repositories.CaseRepository,
	aiClient ai.Client,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
	timeout time.Duration,
) *AnalysisController {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnalysisController{
		caseRepo:                 caseRepo,
		aiClient:                 aiClient,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		timeout:                  timeout,
		log:                      logger.New("AnalysisController"),
	}
}

// Analyze fetches the case, sends the analysis prompt upstream, and
// parses the structured result. It does not persist anything; callers
// that want durability follow up with Persist.
//
// Upstream failures (transport errors, empty candidate lists) and parse
// failures (malformed model output) are kept distinct: the former may be
// worth retrying, the latter will keep failing until the prompt changes.
func (ac *AnalysisController) Analyze(ctx context.Context, caseID string) (*Analysis, error) {
	log := ac.log.Function("Analyze")

	c, err := ac.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(c.IssueDescription) == "" {
		return nil, errs.ValidationMsg("issueDescription", "case has no issue description to analyze")
	}

	prompt := buildPrompt(c)

	genCtx, cancel := context.WithTimeout(ctx, ac.timeout)
	defer cancel()

	text, err := ac.aiClient.GenerateText(genCtx, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrNoCandidates) {
			return nil, errs.Upstream("analysis service returned an empty response", err)
		}
		return nil, errs.Upstream("analysis service request failed",
			log.Err("generation request failed", err, "caseID", caseID))
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		// The raw model output goes to the log only, never to the caller.
		log.Er("failed to parse analysis response", err, "caseID", caseID, "rawResponse", text)
		return nil, errs.Parse("analysis response was not valid JSON", err)
	}

	return analysis, nil
}

// Persist writes the analysis fields back onto the case and notifies the
// owner's connected clients.
func (ac *AnalysisController) Persist(ctx context.Context, caseID string, analysis *Analysis) error {
	log := ac.log.Function("Persist")

	var ownerID string
	err := ac.transactionService.Execute(ctx, func(txCtx context.Context) error {
		c, err := ac.caseRepo.GetByID(txCtx, caseID)
		if err != nil {
			return err
		}

		analysis.Apply(c)
		ownerID = c.OwnerID

		return ac.caseRepo.Update(txCtx, c)
	})
	if err != nil {
		return err
	}

	if err := ac.cacheInvalidationService.InvalidateUserCases(ctx, ownerID,
		events.TypeCaseAnalyzed, map[string]any{"caseId": caseID}); err != nil {
		log.Warn("failed to invalidate case caches after analysis",
			"caseID", caseID, "error", err)
	}

	log.Info("analysis persisted", "caseID", caseID)
	return nil
}

func buildPrompt(c *Case) string {
	impact := strings.Join(c.IssueImpact, ", ")
	if c.OtherImpact != "" {
		if impact != "" {
			impact += ", "
		}
		impact += c.OtherImpact
	}

	var b strings.Builder
	b.WriteString("Analyze the following legal case and provide a comprehensive analysis:\n\n")
	fmt.Fprintf(&b, "Issue Description: %s\n", c.IssueDescription)
	fmt.Fprintf(&b, "Parties Involved: %s\n", c.PartiesInvolved)
	fmt.Fprintf(&b, "Incident Date: %s\n", c.IncidentDate)
	fmt.Fprintf(&b, "Zip Code: %s\n", c.ZipCode)
	fmt.Fprintf(&b, "Issue Impact: %s\n", impact)
	fmt.Fprintf(&b, "Desired Resolution: %s\n", c.DesiredResolution)
	b.WriteString("\nRespond with a single JSON object using exactly these keys: ")
	b.WriteString("caseClassification (string), relevantLaws (array of strings), ")
	b.WriteString("jurisdiction (string), recommendations (array of strings), ")
	b.WriteString("deadlines (array of strings), strengthIndicators (string), ")
	b.WriteString("supportingDocumentation (array of strings), draftedCommunication (string). ")
	b.WriteString("Set any field you cannot determine to null rather than omitting it. ")
	b.WriteString("Do not wrap the object in markdown.")

	return b.String()
}

func parseAnalysis(text string) (*Analysis, error) {
	text = stripCodeFence(text)

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// stripCodeFence tolerates models that wrap JSON in ```json fences
// despite being told not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
