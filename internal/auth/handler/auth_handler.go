package handler

import (
	"errors"
	"strings"

	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/jwt-auth-service/internal/errors"
	"github.com/AnthoniusHendriyanto/jwt-auth-service/internal/logger"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "internal server error"

type AuthHandler struct {
	userService *service.UserService
	logger      *logger.Logger
}

func NewAuthHandler(userService *service.UserService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, logger: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrInvalidInput)
	}

	tokens, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))

	tokens, err := h.userService.Refresh(c.UserContext(), token)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// bearerToken returns the token segment of a "Bearer <token>" header, or ""
// when the header is absent or malformed.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = internalErrorMessage
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, autherror.ErrInvalidInput),
		errors.Is(err, autherror.ErrMissingCredentials),
		errors.Is(err, autherror.ErrIncorrectPassword),
		errors.Is(err, autherror.ErrTokenRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, autherror.ErrTokenInvalid),
		errors.Is(err, autherror.ErrRefreshTokenInvalid):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
