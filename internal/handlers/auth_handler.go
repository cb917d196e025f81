package handlers

import (
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Signup godoc
// @Summary Sign up with email and username
// @Description Idempotently registers the (email, username) pair and emails a confirmation code. The code is never returned in the response.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body SignupRequest true "Signup request"
// @Success 200 {object} utils.StandardResponse "Validated input echoed back"
// @Failure 400 {object} utils.StandardResponse "Invalid or conflicting input"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.Signup(c.Context(), req.Email, req.Username); err != nil {
		return respondServiceError(c, h.logger, err)
	}

	// Echo the validated input, never the confirmation code.
	return utils.SuccessResponse(c, fiber.StatusOK, "Confirmation code sent", req)
}

// Token godoc
// @Summary Exchange a confirmation code for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body TokenRequest true "Token request"
// @Success 200 {object} utils.StandardResponse "Access token"
// @Failure 400 {object} utils.StandardResponse "Invalid confirmation code"
// @Failure 404 {object} utils.StandardResponse "Unknown username"
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.ConfirmationCode == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "username and confirmation_code are required")
	}

	token, err := h.service.ExchangeToken(c.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token issued", TokenResponse{Token: token})
}
