package app

import (
	"net/http"

	"learning_platform_service/internal/member/domain"
	"learning_platform_service/pkg/logger"
	"learning_platform_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RegisterReq register request body
type RegisterReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// LoginReq login request body
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MemberHandler definition member REST handler
type MemberHandler struct {
	Usecase MemberUseCase
}

// NewMemberHandler create MemberHandler
func NewMemberHandler(uc MemberUseCase) *MemberHandler {
	return &MemberHandler{Usecase: uc}
}

// Register create a member account
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	logger.Log.Debug("Register Req", zap.String("email", req.Email), zap.String("role", req.Role))
	if err := h.Usecase.Register(c.Context(), req.Email, req.Password, req.DisplayName, req.Role); err != nil {
		logger.Log.Error("Register Err", zap.String("email", req.Email), zap.String("Err :", err.Error()))
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "create success",
	})
}

// Login issue a token and set the auth cookie
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	logger.Log.Debug("Login :", zap.String("email", req.Email))
	t, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		logger.Log.Error("Login Err", zap.String("email", req.Email), zap.String("Err :", err.Error()))
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieToken,
		Value:    t,
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   t,
		"message": "login success",
	})
}

// Logout close the session of the presented token
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	t := c.Cookies(middlewares.CookieToken)
	if t == "" {
		t = c.Query(middlewares.QueryToken)
	}

	logger.Log.Info("logout", zap.String("token", t))
	if err := h.Usecase.Logout(c.Context(), t); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logout success",
	})
}

// FindMember look up one member profile by member id
func (h *MemberHandler) FindMember(c *fiber.Ctx) error {
	memberID := c.Params("id")
	if memberID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing member id"})
	}

	member, err := h.Usecase.FindMember(c.Context(), &domain.MemberQuery{MemberID: &memberID})
	if err != nil {
		logger.Log.Error("FindMember Err", zap.String("member_id", memberID), zap.String("Err :", err.Error()))
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"info": fiber.Map{
			"member_id":    member.MemberID,
			"email":        member.Email,
			"display_name": member.DisplayName,
			"role":         member.Role,
		},
	})
}
