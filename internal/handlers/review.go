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

type ReviewHandler struct {
	DB *gorm.DB
}

// ListReviews exposes only approved reviews, newest first.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	var reviews []models.Review
	if err := h.DB.
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Comment string `json:"comment"`
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

	review := models.Review{
		Name:       req.Name,
		Comment:    req.Comment,
		IsApproved: false,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ApproveReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var review models.Review
	if err := h.DB.First(&review, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("review not found")
		}
		return apperr.Backend(err)
	}

	review.IsApproved = true
	if err := h.DB.Save(&review).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Review{}, id).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.NoContent(http.StatusNoContent)
}
