package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/basket"
	"github.com/avolkov/webshop/internal/checkout"
	"github.com/avolkov/webshop/internal/mykafka"
	"github.com/avolkov/webshop/internal/session"
)

type BasketHandler struct {
	DB       *gorm.DB
	Store    *session.Store
	Checkout *checkout.Service
	Producer *mykafka.Producer
}

// Change adds or removes one unit of product pk and redirects to next.
// "add" appends; anything else removes the first occurrence, a no-op when
// the id is absent. The product's existence is not checked here.
func (h *BasketHandler) Change(c echo.Context) error {
	pk := c.QueryParam("pk")
	if pk == "" {
		return errorResponse(c, http.StatusBadRequest, errors.New("pk is required"))
	}
	action := c.QueryParam("action")
	next := c.QueryParam("next")
	if next == "" {
		next = "/"
	}

	sid := session.SID(c)
	state, err := h.Store.Update(sid, func(s *session.State) {
		if action == "add" {
			s.AddProduct(pk)
		} else {
			s.RemoveProduct(pk)
		}
	})
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "basket_events", map[string]any{
		"type":      "basket_changed",
		"sessionID": sid,
		"productID": pk,
		"action":    action,
		"count":     state.ProductsCount,
	})

	return c.Redirect(http.StatusFound, next)
}

// GetBasket renders the aggregated basket: one line per distinct product
// with quantity and line total, plus the grand total.
func (h *BasketHandler) GetBasket(c echo.Context) error {
	state, err := h.Store.Load(session.SID(c))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	lines, total, err := basket.Build(h.DB, state.Products)
	if err != nil {
		if errors.Is(err, basket.ErrProductNotFound) {
			return errorResponse(c, http.StatusConflict, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"basket":         lines,
		"basket_total":   total,
		"products_count": state.ProductsCount,
	})
}

// SubmitOrder validates the checkout form and places the order. Field
// errors and the empty-basket rule come back as 400 with a per-field map;
// a basket id that left the catalog is a 409.
func (h *BasketHandler) SubmitOrder(c echo.Context) error {
	var form checkout.OrderForm
	if err := c.Bind(&form); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
	}

	sid := session.SID(c)
	result, err := h.Checkout.PlaceOrder(sid, &form)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyBasket) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"errors": map[string]string{checkout.NonFieldErrors: err.Error()},
			})
		}
		if errors.Is(err, basket.ErrProductNotFound) {
			return errorResponse(c, http.StatusConflict, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", map[string]any{
		"type":      "order_created",
		"sessionID": sid,
		"orderID":   result.Order.ID,
		"total":     result.Total,
		"items":     result.Items,
	})

	return c.JSON(http.StatusCreated, result)
}
