package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service services.UserService
	logger  *logrus.Logger
}

func NewUserHandler(service services.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by username"
// @Success 200 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	users, total, err := h.service.List(c.Context(), page, limit, c.Query("search"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Users retrieved successfully", newUserResponses(users), meta)
}

// Get godoc
// @Summary Get a user by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users/{username} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", newUserResponse(user))
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.UserInput true "User"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Create(c.Context(), input)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "User created successfully", newUserResponse(user))
}

// Update godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param user body services.UserInput true "Fields to update"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users/{username} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.Update(c.Context(), c.Params("username"), input)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "User updated successfully", newUserResponse(user))
}

// Delete godoc
// @Summary Delete a user
// @Description The user's reviews and comments are removed with them.
// @Tags users
// @Param username path string true "Username"
// @Success 204 "No Content"
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users/{username} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("username")); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary Get the requester's own profile
// @Tags users
// @Produce json
// @Success 200 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", newUserResponse(middleware.CurrentUser(c)))
}

// UpdateMe godoc
// @Summary Partially update the requester's own profile
// @Description The role field is pinned: whatever the payload says, the stored role is unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.UserInput true "Fields to update"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.UpdateProfile(c.Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", newUserResponse(user))
}
