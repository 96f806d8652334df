package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/models"
)

const (
	maxNameLen    = 100
	maxCommentLen = 1000
)

type CommentHandler struct {
	DB *gorm.DB
}

// ListComments returns a project's approved comments oldest first.
// Pending comments stay invisible until moderation.
func (h *CommentHandler) ListComments(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	var comments []models.ProjectComment
	if err := h.DB.
		Where("project_id = ? AND is_approved = ?", projectID, true).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name     string `json:"name"`
		Comment  string `json:"comment"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Comment = strings.TrimSpace(req.Comment)

	if req.Name == "" || req.Comment == "" {
		return apperr.Validation("name and comment are required")
	}
	if utf8.RuneCountInString(req.Name) > maxNameLen {
		return apperr.Validation("name is too long")
	}
	if utf8.RuneCountInString(req.Comment) > maxCommentLen {
		return apperr.Validation("comment must be under 1000 characters")
	}

	var project models.Project
	if err := h.DB.First(&project, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("project not found")
		}
		return apperr.Backend(err)
	}

	comment := models.ProjectComment{
		ProjectID:  projectID,
		ParentID:   req.ParentID,
		Name:       req.Name,
		Comment:    req.Comment,
		IsApproved: false,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ApproveComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var comment models.ProjectComment
	if err := h.DB.First(&comment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("comment not found")
		}
		return apperr.Backend(err)
	}

	comment.IsApproved = true
	if err := h.DB.Save(&comment).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.ProjectComment{}, id).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplyToComment posts an admin reply under an existing comment. Replies
// skip moderation: they are approved on insert.
func (h *CommentHandler) ReplyToComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name    string `json:"name"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return apperr.Validation("comment is required")
	}
	if utf8.RuneCountInString(req.Comment) > maxCommentLen {
		return apperr.Validation("comment must be under 1000 characters")
	}
	if req.Name == "" {
		req.Name = "Admin"
	}

	var parent models.ProjectComment
	if err := h.DB.First(&parent, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("comment not found")
		}
		return apperr.Backend(err)
	}

	reply := models.ProjectComment{
		ProjectID:    parent.ProjectID,
		ParentID:     &parent.ID,
		Name:         req.Name,
		Comment:      req.Comment,
		IsAdminReply: true,
		IsApproved:   true,
	}
	if err := h.DB.Create(&reply).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusCreated, reply)
}
