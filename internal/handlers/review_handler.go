package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/permissions"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewReviewHandler(service services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List reviews for a title
// @Tags reviews
// @Produce json
// @Param titleID path int true "Title ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /titles/{titleID}/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	titleID, err := parseIDParam(c, "titleID")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid title ID")
	}
	page, limit := parsePagination(c)

	reviews, total, err := h.service.ListReviews(c.Context(), titleID, page, limit)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Reviews retrieved successfully", newReviewResponses(reviews), meta)
}

// Get godoc
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /titles/{titleID}/reviews/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	review, err := h.service.GetReview(c.Context(), titleID, reviewID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Review retrieved successfully", newReviewResponse(review))
}

// Create godoc
// @Summary Review a title
// @Description One review per user per title; a second attempt is rejected.
// @Tags reviews
// @Accept json
// @Produce json
// @Param titleID path int true "Title ID"
// @Param review body ReviewRequest true "Review"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	titleID, err := parseIDParam(c, "titleID")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid title ID")
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}
	score := 0
	if req.Score != nil {
		score = *req.Score
	}

	review, err := h.service.CreateReview(c.Context(), middleware.CurrentUser(c), titleID, text, score)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Review created successfully", newReviewResponse(review))
}

// Update godoc
// @Summary Update a review
// @Description Only the author, a moderator or an admin may modify a review.
// @Tags reviews
// @Accept json
// @Produce json
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Param review body ReviewRequest true "Fields to update"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews/{id} [patch]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	review, err := h.service.GetReview(c.Context(), titleID, reviewID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	user := middleware.CurrentUser(c)
	if !permissions.AuthorModeratorAdminOrReadOnly(user, c.Method(), review.AuthorID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission to modify this review")
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	review, err = h.service.UpdateReview(c.Context(), review, req.Text, req.Score)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Review updated successfully", newReviewResponse(review))
}

// Delete godoc
// @Summary Delete a review
// @Description Only the author, a moderator or an admin may delete a review. Its comments are removed with it.
// @Tags reviews
// @Param titleID path int true "Title ID"
// @Param id path int true "Review ID"
// @Success 204 "No Content"
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	titleID, reviewID, err := reviewPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	review, err := h.service.GetReview(c.Context(), titleID, reviewID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	user := middleware.CurrentUser(c)
	if !permissions.AuthorModeratorAdminOrReadOnly(user, c.Method(), review.AuthorID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission to delete this review")
	}

	if err := h.service.DeleteReview(c.Context(), review); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func reviewPath(c *fiber.Ctx) (uint, uint, error) {
	titleID, err := parseIDParam(c, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
