package app

import (
	"net/http"

	"learning_platform_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RecommendHandler definition recommendation REST handler
type RecommendHandler struct {
	Usecase RecommendUseCase
}

// NewRecommendHandler create RecommendHandler
func NewRecommendHandler(uc RecommendUseCase) *RecommendHandler {
	return &RecommendHandler{Usecase: uc}
}

// GetRecommendations rank the catalog for the authenticated learner
func (h *RecommendHandler) GetRecommendations(c *fiber.Ctx) error {
	memberID, ok := c.Locals(middlewares.TokenMemberID).(string)
	if !ok || memberID == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing member id"})
	}

	recs, err := h.Usecase.GetRecommendations(c.Context(), memberID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load recommendations"})
	}
	return c.JSON(fiber.Map{"recommendations": recs})
}

// GetSimilar list up to ten items sharing tags with the given content
func (h *RecommendHandler) GetSimilar(c *fiber.Ctx) error {
	contentID := c.Params("id")
	if contentID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing content id"})
	}

	similar, err := h.Usecase.GetSimilar(c.Context(), contentID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load similar contents"})
	}
	return c.JSON(fiber.Map{"similar": similar})
}

// Watch return a presigned playback URL and count the view
func (h *RecommendHandler) Watch(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)
	contentID := c.Params("id")
	if contentID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing content id"})
	}

	res, err := h.Usecase.Watch(c.Context(), memberID, contentID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open content"})
	}
	return c.JSON(res)
}

// ListSubjectContents list the catalog slice of one subject
func (h *RecommendHandler) ListSubjectContents(c *fiber.Ctx) error {
	subjectID := c.Params("id")
	if subjectID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing subject id"})
	}

	items, err := h.Usecase.ListSubjectContents(c.Context(), subjectID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list subject contents"})
	}
	return c.JSON(fiber.Map{"contents": items})
}
