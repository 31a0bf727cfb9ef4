package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/models"
	"github.com/avolkov/webshop/internal/mykafka"
	"github.com/avolkov/webshop/internal/util"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func publish(c echo.Context, p *mykafka.Producer, topic string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key, _ := event["type"].(string)
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// Index is the catalog listing.
func (h *ProductHandler) Index(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var items []models.Product
	if err := h.DB.Model(&models.Product{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("invalid id"))
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, errors.New("product not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, product)
}

// CreateForm describes the create-product fields. It exists so the create
// page is a tracked GET like the rest of the catalog.
func (h *ProductHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"fields": []string{"name", "category", "price", "photo"},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		Name     string  `json:"name"     form:"name"`
		Category string  `json:"category" form:"category"`
		Price    float64 `json:"price"    form:"price"`
		Photo    string  `json:"photo"    form:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, errors.New("name is required"))
	}
	if req.Price < 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("price must be non-negative"))
	}

	prod := models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Photo:    req.Photo,
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}
