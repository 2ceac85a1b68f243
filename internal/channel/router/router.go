package router

import (
	"context"

	"learning_platform_service/internal/channel/app"
	"learning_platform_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register channel routes
func RegisterRoutes(r *fiber.App, channelWebsocket *app.ChannelWebsocketHandler) {
	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		channelWebsocket.HandleConnection(context.Background(), c)
	}))
}
