package httpsvc

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Router собирает gin-роутер с обработчиками API.
func (s *Service) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(requestLogger(s.logger))

	api := engine.Group("/api/v1")

	customers := api.Group("/customers")
	customers.GET("", s.listCustomers)
	customers.POST("", s.createCustomer)
	customers.GET("/:id", s.getCustomer)
	customers.PATCH("/:id", s.updateCustomer)
	customers.DELETE("/:id", s.deleteCustomer)

	orders := api.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	// Производные выборки регистрируются до :id, чтобы не конфликтовать
	// с параметрическим маршрутом.
	orders.GET("/due-today", s.ordersDueToday)
	orders.GET("/due-soon", s.ordersDueSoon)
	orders.GET("/:id", s.getOrder)
	orders.PATCH("/:id", s.updateOrder)
	orders.DELETE("/:id", s.deleteOrder)

	api.GET("/dashboard", s.dashboard)

	return engine
}

// requestLogger логирует запросы в стиле access-лога.
func requestLogger(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("http request")
	}
}
