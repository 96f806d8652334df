package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/models"
)

type ProjectHandler struct {
	DB *gorm.DB
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	var projects []models.Project
	if err := h.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.JSON(http.StatusOK, projects)
}

type projectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (in *projectInput) validate() error {
	if in.Title == "" || in.Description == "" || in.URL == "" {
		return apperr.Validation("all fields are required")
	}
	return nil
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req projectInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	if err := req.validate(); err != nil {
		return err
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req projectInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	if err := req.validate(); err != nil {
		return err
	}

	var project models.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("project not found")
		}
		return apperr.Backend(err)
	}

	project.Title = req.Title
	project.Description = req.Description
	project.URL = req.URL
	if err := h.DB.Save(&project).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Project{}, id).Error; err != nil {
		return apperr.Backend(err)
	}
	return c.NoContent(http.StatusNoContent)
}
