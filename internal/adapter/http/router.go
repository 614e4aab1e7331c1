package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juhyeon1114/jpashop/internal/adapter/http/middleware"
	"github.com/juhyeon1114/jpashop/internal/logging"
)

type Handlers struct {
	Orders       *OrderHandler
	SimpleOrders *SimpleOrderHandler
	Members      *MemberHandler
	Items        *ItemHandler
	Token        *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Token.IssueToken)

	v1 := r.Group("/v1")
	{
		v1.POST("/members", authz.Require("members.write"), h.Members.Register)
		v1.GET("/members/:id", authz.Require("members.read"), h.Members.GetMemberByID)

		v1.POST("/items", authz.Require("items.write"), h.Items.CreateItem)
		v1.POST("/items/:id/stock", authz.Require("items.write"), h.Items.AddStock)
		v1.GET("/items/:id", authz.Require("items.read"), h.Items.GetItemByID)

		v1.POST("/orders", authz.Require("orders.write"), h.Orders.PlaceOrder)
		v1.POST("/orders/:id/cancel", authz.Require("orders.write"), h.Orders.CancelOrder)
		v1.GET("/orders", authz.Require("orders.read"), h.Orders.SearchOrders)
		v1.GET("/orders/:id", authz.Require("orders.read"), h.Orders.GetOrderByID)

		v1.GET("/simple-orders", authz.Require("orders.read"), h.SimpleOrders.List)
		v1.GET("/simple-orders/projection", authz.Require("orders.read"), h.SimpleOrders.ListProjected)
	}

	return r
}
