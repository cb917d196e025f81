package handlers

import (
	"strconv"

	"review-backend/internal/repository"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TitleHandler struct {
	service services.TitleService
	logger  *logrus.Logger
}

func NewTitleHandler(service services.TitleService, logger *logrus.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List titles
// @Description Filters combine with logical AND. The read representation nests category/genre objects and the average review score.
// @Tags titles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param name query string false "Substring match on name"
// @Param genre query string false "Exact genre slug"
// @Param category query string false "Exact category slug"
// @Param year query int false "Exact year"
// @Success 200 {object} utils.StandardResponse
// @Router /titles [get]
func (h *TitleHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	filter := repository.TitleFilter{
		Name:         c.Query("name"),
		GenreSlug:    c.Query("genre"),
		CategorySlug: c.Query("category"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid year filter")
		}
		filter.Year = &year
	}

	titles, total, err := h.service.List(c.Context(), filter, page, limit)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Titles retrieved successfully", newTitleResponses(titles), meta)
}

// Get godoc
// @Summary Get a title by ID
// @Tags titles
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /titles/{id} [get]
func (h *TitleHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid title ID")
	}

	title, err := h.service.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Title retrieved successfully", newTitleResponse(title))
}

// Create godoc
// @Summary Create a title
// @Description Accepts category and genre by slug; the response nests the resolved objects.
// @Tags titles
// @Accept json
// @Produce json
// @Param title body TitleRequest true "Title"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles [post]
func (h *TitleHandler) Create(c *fiber.Ctx) error {
	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	title, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Title created successfully", newTitleResponse(title))
}

// Update godoc
// @Summary Partially update a title
// @Tags titles
// @Accept json
// @Produce json
// @Param id path int true "Title ID"
// @Param title body TitleRequest true "Fields to update"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{id} [patch]
func (h *TitleHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid title ID")
	}

	var req TitleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	title, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Title updated successfully", newTitleResponse(title))
}

// Delete godoc
// @Summary Delete a title
// @Description Deleting a title removes its reviews and their comments.
// @Tags titles
// @Param id path int true "Title ID"
// @Success 204 "No Content"
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{id} [delete]
func (h *TitleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid title ID")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
