package handlers

import (
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.CatalogService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} utils.StandardResponse
// @Router /genres [get]
func (h *GenreHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	genres, total, err := h.service.ListGenres(c.Context(), page, limit, c.Query("search"))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Genres retrieved successfully", newGenreResponses(genres), meta)
}

// Create godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body ClassificationRequest true "Genre"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /genres [post]
func (h *GenreHandler) Create(c *fiber.Ctx) error {
	var req ClassificationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	genre, err := h.service.CreateGenre(c.Context(), req.Name, req.Slug)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Genre created successfully", newGenreResponse(genre))
}

// Delete godoc
// @Summary Delete a genre by slug
// @Description Titles tagged with the genre are untouched; only the link is removed.
// @Tags genres
// @Param slug path string true "Genre slug"
// @Success 204 "No Content"
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /genres/{slug} [delete]
func (h *GenreHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteGenre(c.Context(), c.Params("slug")); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
