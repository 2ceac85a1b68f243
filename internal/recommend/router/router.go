package router

import (
	"learning_platform_service/internal/recommend/app"
	"learning_platform_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register recommendation routes
func RegisterRoutes(r *fiber.App, h *app.RecommendHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/recommendations", h.GetRecommendations)
	r.Get("/contents/:id/similar", h.GetSimilar)
	r.Post("/contents/:id/watch", h.Watch)
	r.Get("/subjects/:id/contents", h.ListSubjectContents)
}
