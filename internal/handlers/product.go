package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/es"
	"github.com/zarascrunch/storefront/internal/events"
	"github.com/zarascrunch/storefront/internal/logging"
	"github.com/zarascrunch/storefront/internal/models"
	"github.com/zarascrunch/storefront/internal/service/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
}

// GetProducts serves the public menu: available products newest first,
// optionally filtered by category. An empty or failing table falls back
// to the static catalog so the storefront never renders blank.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	q := h.DB.Where("is_available = ?", true).Order("created_at DESC")
	if category := c.QueryParam("category"); category != "" {
		if !models.ValidCategory(category) {
			return apperr.Validation("unknown category")
		}
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil || len(products) == 0 {
		if err != nil {
			logging.FromContext(c.Request().Context()).Warn("product query failed, serving fallback", "error", err)
		}
		return c.JSON(http.StatusOK, h.fallback(c.QueryParam("category")))
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) fallback(category string) []models.Product {
	if category == "" {
		return fallbackProducts
	}
	out := make([]models.Product, 0, len(fallbackProducts))
	for _, p := range fallbackProducts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("product not found")
		}
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusOK, product)
}

type productInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsAvailable *bool  `json:"is_available"`
}

func (in *productInput) validate() error {
	if in.Name == "" || in.Description == "" {
		return apperr.Validation("name and description are required")
	}
	if in.Price <= 0 {
		return apperr.Validation("price must be positive")
	}
	if !models.ValidCategory(in.Category) {
		return apperr.Validation("unknown category")
	}
	return nil
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	if err := req.validate(); err != nil {
		return err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsAvailable: available,
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return apperr.Backend(err)
	}

	h.index(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, itoa(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("product not found")
		}
		return apperr.Backend(err)
	}

	var req productInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}

	if req.Name != "" {
		prod.Name = req.Name
	}
	if req.Description != "" {
		prod.Description = req.Description
	}
	if req.Price > 0 {
		prod.Price = req.Price
	}
	if req.ImageURL != "" {
		prod.ImageURL = req.ImageURL
	}
	if req.Category != "" {
		if !models.ValidCategory(req.Category) {
			return apperr.Validation("unknown category")
		}
		prod.Category = req.Category
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return apperr.Backend(err)
	}

	h.index(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, itoa(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return apperr.Backend(err)
	}

	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, es.ProductIndex, id); err != nil {
			logging.FromContext(c.Request().Context()).Warn("search index delete failed", "error", err)
		}
	}
	publish(c, h.Producer, events.TopicProductEvents, itoa(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) index(c echo.Context, p models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, es.ProductIndex, p); err != nil {
		logging.FromContext(c.Request().Context()).Warn("search index update failed", "error", err)
	}
}
