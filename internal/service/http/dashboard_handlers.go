package httpsvc

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

const recentOrdersLimit = 5

// dashboardStats — счётчики главной страницы.
type dashboardStats struct {
	TotalOrders    int `json:"totalOrders"`
	DueToday       int `json:"dueToday"`
	InProgress     int `json:"inProgress"`
	TotalCustomers int `json:"totalCustomers"`
}

// dashboardResponse — модель главной страницы: счётчики, последние заказы
// и срочные (сдача сегодня-завтра) заказы.
type dashboardResponse struct {
	Stats        dashboardStats `json:"stats"`
	RecentOrders []domain.Order `json:"recentOrders"`
	UrgentOrders []domain.Order `json:"urgentOrders"`
}

// dashboard обрабатывает GET /api/v1/dashboard.
func (s *Service) dashboard(c *gin.Context) {
	orders, err := s.orders.List()
	if err != nil {
		s.logger.WithError(err).Warn("serving dashboard despite orders read error")
	}
	customers, err := s.customers.List()
	if err != nil {
		s.logger.WithError(err).Warn("serving dashboard despite customers read error")
	}
	dueToday, err := s.orders.DueToday()
	if err != nil {
		s.logger.WithError(err).Warn("serving dashboard despite due-today read error")
	}
	urgent, err := s.orders.DueSoon()
	if err != nil {
		s.logger.WithError(err).Warn("serving dashboard despite due-soon read error")
	}

	inProgress := 0
	for _, order := range orders {
		if order.Status == domain.OrderStatusInProgress {
			inProgress++
		}
	}

	recent := make([]domain.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}

	c.JSON(http.StatusOK, dashboardResponse{
		Stats: dashboardStats{
			TotalOrders:    len(orders),
			DueToday:       len(dueToday),
			InProgress:     inProgress,
			TotalCustomers: len(customers),
		},
		RecentOrders: recent,
		UrgentOrders: urgent,
	})
}
