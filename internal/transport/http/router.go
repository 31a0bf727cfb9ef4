package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/handlers"
	"github.com/avolkov/webshop/internal/metrics"
	"github.com/avolkov/webshop/internal/session"
	"github.com/avolkov/webshop/internal/visits"
)

type Deps struct {
	DB             *gorm.DB
	Store          *session.Store
	SessionSecret  []byte
	ProductHandler *handlers.ProductHandler
	BasketHandler  *handlers.BasketHandler
	StatsHandler   *handlers.StatsHandler
	SearchHandler  *handlers.SearchHandler
	Metrics        *metrics.ServerMetrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	e.Use(session.Middleware(d.SessionSecret))

	track := func(page string) echo.MiddlewareFunc {
		return visits.Track(d.Store, page)
	}

	e.GET("/", d.ProductHandler.Index, track(visits.PageIndex))
	e.GET("/products/:id", d.ProductHandler.GetProduct, track(visits.PageDetail))

	e.GET("/product/create", d.ProductHandler.CreateForm, track(visits.PageCreateProduct))
	e.POST("/product/create", d.ProductHandler.CreateProduct)

	e.GET("/basket/change", d.BasketHandler.Change)
	e.GET("/basket", d.BasketHandler.GetBasket, track(visits.PageBasket))
	e.POST("/basket", d.BasketHandler.SubmitOrder)

	e.GET("/session_stats", d.StatsHandler.SessionStats)

	e.GET("/search", d.SearchHandler.Search)
}
