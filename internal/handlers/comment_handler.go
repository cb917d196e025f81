package handlers

import (
	"review-backend/internal/middleware"
	"review-backend/internal/permissions"
	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewCommentHandler(service services.ReviewService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary List comments on a review
// @Tags comments
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /titles/{titleID}/reviews/{reviewID}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	titleID, reviewID, err := commentParentPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}
	page, limit := parsePagination(c)

	comments, total, err := h.service.ListComments(c.Context(), titleID, reviewID, page, limit)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Comments retrieved successfully", newCommentResponses(comments), meta)
}

// Get godoc
// @Summary Get a comment
// @Description The comment must belong to the review and the review to the title, or the request is treated as not found.
// @Tags comments
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [get]
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	comment, err := h.service.GetComment(c.Context(), titleID, reviewID, commentID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Comment retrieved successfully", newCommentResponse(comment))
}

// Create godoc
// @Summary Comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews/{reviewID}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	titleID, reviewID, err := commentParentPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}

	comment, err := h.service.CreateComment(c.Context(), middleware.CurrentUser(c), titleID, reviewID, text)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Comment created successfully", newCommentResponse(comment))
}

// Update godoc
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Param comment body CommentRequest true "Fields to update"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [patch]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	comment, err := h.service.GetComment(c.Context(), titleID, reviewID, commentID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	user := middleware.CurrentUser(c)
	if !permissions.AuthorModeratorAdminOrReadOnly(user, c.Method(), comment.AuthorID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission to modify this comment")
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}

	comment, err = h.service.UpdateComment(c.Context(), comment, text)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Comment updated successfully", newCommentResponse(comment))
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Param titleID path int true "Title ID"
// @Param reviewID path int true "Review ID"
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Security BearerAuth
// @Router /titles/{titleID}/reviews/{reviewID}/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	titleID, reviewID, commentID, err := commentPath(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ID in path")
	}

	comment, err := h.service.GetComment(c.Context(), titleID, reviewID, commentID)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}

	user := middleware.CurrentUser(c)
	if !permissions.AuthorModeratorAdminOrReadOnly(user, c.Method(), comment.AuthorID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission to delete this comment")
	}

	if err := h.service.DeleteComment(c.Context(), comment); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func commentParentPath(c *fiber.Ctx) (uint, uint, error) {
	titleID, err := parseIDParam(c, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := parseIDParam(c, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func commentPath(c *fiber.Ctx) (uint, uint, uint, error) {
	titleID, reviewID, err := commentParentPath(c)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
