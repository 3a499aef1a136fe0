package handlers

import (
	"server/internal/app"
	analysisController "server/internal/controllers/analysis"
	caseController "server/internal/controllers/cases"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CaseHandler struct {
	Handler
	controller *caseController.CaseController
	analysis   *analysisController.AnalysisController
}

func NewCaseHandler(app app.App, router fiber.Router) *CaseHandler {
	log := logger.New("handlers").File("case_handler")
	return &CaseHandler{
		controller: app.CaseController,
		analysis:   app.AnalysisController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CaseHandler) Register() {
	cases := h.router.Group("/cases")
	cases.Post("/", h.createCase)
	cases.Get("/", h.listCases)
	cases.Get("/:id", h.getCase)
	cases.Delete("/:id", h.deleteCase)

	h.router.Get("/case/analyze/:id", h.analyzeCase)
}

func (h *CaseHandler) createCase(c *fiber.Ctx) error {
	log := h.log.Function("createCase")

	var request CreateCaseRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse case intake request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse case intake request"})
	}

	userID, _ := c.Locals("userID").(string)
	created, err := h.controller.CreateCase(c.Context(), userID, &request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "case": created})
}

func (h *CaseHandler) listCases(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	cases, err := h.controller.ListCases(c.Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(cases)
}

func (h *CaseHandler) getCase(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	found, err := h.controller.GetCase(c.Context(), c.Params("id"), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "case": found})
}

func (h *CaseHandler) deleteCase(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	if err := h.controller.DeleteCase(c.Context(), c.Params("id"), userID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// analyzeCase runs the analysis and then persists it onto the case. A
// persistence failure after a successful analysis is logged, not
// surfaced; the client still gets the result.
func (h *CaseHandler) analyzeCase(c *fiber.Ctx) error {
	log := h.log.Function("analyzeCase")

	userID, _ := c.Locals("userID").(string)
	caseID := c.Params("id")

	// Ownership gate before any upstream spend.
	if _, err := h.controller.GetCase(c.Context(), caseID, userID); err != nil {
		return errorResponse(c, err)
	}

	analysis, err := h.analysis.Analyze(c.Context(), caseID)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.analysis.Persist(c.Context(), caseID, analysis); err != nil {
		log.Er("failed to persist analysis", err, "caseID", caseID)
	}

	return c.JSON(fiber.Map{"message": "success", "analysis": analysis})
}
