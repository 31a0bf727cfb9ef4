package visits

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/webshop/internal/session"
)

// Tracked page names, also the keys reported by the stats endpoint.
const (
	PageIndex         = "index"
	PageDetail        = "detail"
	PageCreateProduct = "create_product"
	PageBasket        = "basket"
)

// Pages lists every tracked page in display order.
var Pages = []string{PageIndex, PageDetail, PageCreateProduct, PageBasket}

// Track bumps the page's per-session visit counter on GET requests before
// the handler runs. One middleware per route replaces the original
// mixin-per-view approach.
func Track(store *session.Store, page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodGet {
				sid := session.SID(c)
				if _, err := store.Update(sid, func(state *session.State) {
					state.RecordVisit(page, time.Now())
				}); err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
				}
			}
			return next(c)
		}
	}
}
