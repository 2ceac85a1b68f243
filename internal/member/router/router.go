package router

import (
	"learning_platform_service/internal/member/app"
	"learning_platform_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes register member routes
func RegisterRoutes(r *fiber.App, h *app.MemberHandler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	auth := r.Group("", middlewares.JWTMiddleware())
	auth.Get("/members/:id", h.FindMember)
}
