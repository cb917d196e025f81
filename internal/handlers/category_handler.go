package handlers

import (
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewCategoryHandler(service services.CatalogService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} utils.StandardResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	categories, total, err := h.service.ListCategories(c.Context(), page, limit, c.Query("search"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Categories retrieved successfully", newCategoryResponses(categories), meta)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body ClassificationRequest true "Category"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req ClassificationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	category, err := h.service.CreateCategory(c.Context(), req.Name, req.Slug)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", newCategoryResponse(category))
}

// Delete godoc
// @Summary Delete a category by slug
// @Description Titles referencing the category keep existing with a null category.
// @Tags categories
// @Param slug path string true "Category slug"
// @Success 204 "No Content"
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /categories/{slug} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Context(), c.Params("slug")); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
