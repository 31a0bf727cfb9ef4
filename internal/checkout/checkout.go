package checkout

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/basket"
	"github.com/avolkov/webshop/internal/models"
	"github.com/avolkov/webshop/internal/session"
)

// ErrEmptyBasket rejects a checkout whose session basket holds nothing,
// even when the form itself validates.
var ErrEmptyBasket = errors.New("basket has no products")

type Service struct {
	DB    *gorm.DB
	Store *session.Store
}

type Result struct {
	Order models.Order          `json:"order"`
	Items []models.OrderProduct `json:"items"`
	Total float64               `json:"total"`
}

// PlaceOrder persists the order plus one OrderProduct per distinct basket
// product, then clears the basket. The basket is re-read from the live
// session under its lock, and the session is only saved when the DB
// transaction commits, so a crash cannot leave an order without lines or
// an emptied basket without an order.
func (svc *Service) PlaceOrder(sid string, form *OrderForm) (*Result, error) {
	var result Result

	_, err := svc.Store.Mutate(sid, func(state *session.State) error {
		if len(state.Products) == 0 {
			return ErrEmptyBasket
		}

		err := svc.DB.Transaction(func(tx *gorm.DB) error {
			lines, total, err := basket.Build(tx, state.Products)
			if err != nil {
				return err
			}

			order := models.Order{
				FirstName: form.FirstName,
				LastName:  form.LastName,
				Phone:     form.Phone,
				Email:     form.Email,
				CreatedAt: time.Now().Unix(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			items := make([]models.OrderProduct, 0, len(lines))
			for _, line := range lines {
				item := models.OrderProduct{
					OrderID:   order.ID,
					ProductID: line.Product.ID,
					Amount:    line.Quantity,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				items = append(items, item)
			}

			result = Result{Order: order, Items: items, Total: total}
			return nil
		})
		if err != nil {
			return err
		}

		state.ClearBasket()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
