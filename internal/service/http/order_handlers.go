package httpsvc

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// orderPayload — тело POST /orders.
type orderPayload struct {
	CustomerID    string   `json:"customerId"`
	CustomerName  string   `json:"customerName"`
	ContactNumber string   `json:"contactNumber"`
	ItemDetails   string   `json:"itemDetails"`
	DueDate       string   `json:"dueDate"`
	Status        string   `json:"status"`
	Images        []string `json:"images"`
}

// orderPatchPayload — тело PATCH /orders/:id.
type orderPatchPayload struct {
	CustomerID    *string   `json:"customerId"`
	CustomerName  *string   `json:"customerName"`
	ContactNumber *string   `json:"contactNumber"`
	ItemDetails   *string   `json:"itemDetails"`
	DueDate       *string   `json:"dueDate"`
	Status        *string   `json:"status"`
	Images        *[]string `json:"images"`
}

// orderView — заказ в списочном представлении вместе с презентационными
// предикатами, пересчитываемыми на каждый запрос.
type orderView struct {
	domain.Order
	Overdue bool `json:"overdue"`
	DueSoon bool `json:"dueSoon"`
}

// listOrders обрабатывает GET /api/v1/orders.
// Параметры: q — подстрока по имени/телефону/описанию, status — точное
// совпадение статуса, due — точная дата сдачи. Результат отсортирован
// по возрастанию даты сдачи.
func (s *Service) listOrders(c *gin.Context) {
	orders, err := s.orders.List()
	if err != nil {
		s.logger.WithError(err).Warn("serving orders despite read error")
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	statusFilter := strings.TrimSpace(c.Query("status"))
	dueFilter := strings.TrimSpace(c.Query("due"))

	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if q != "" &&
			!strings.Contains(strings.ToLower(order.CustomerName), q) &&
			!strings.Contains(strings.ToLower(order.ItemDetails), q) &&
			!strings.Contains(strings.ToLower(order.ContactNumber), q) {
			continue
		}
		if statusFilter != "" && order.Status != domain.OrderStatus(statusFilter) {
			continue
		}
		if dueFilter != "" && order.DueDate != dueFilter {
			continue
		}
		filtered = append(filtered, order)
	}

	// Ближайшие сдачи — первыми. Формат YYYY-MM-DD сортируется лексикографически.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DueDate < filtered[j].DueDate
	})

	today := s.clock()
	views := make([]orderView, 0, len(filtered))
	for _, order := range filtered {
		views = append(views, orderView{
			Order:   order,
			Overdue: isOverdue(order, today),
			DueSoon: isDueSoonPresentation(order, today),
		})
	}

	c.JSON(http.StatusOK, views)
}

// createOrder обрабатывает POST /api/v1/orders.
func (s *Service) createOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order := domain.Order{
		CustomerID:    payload.CustomerID,
		CustomerName:  strings.TrimSpace(payload.CustomerName),
		ContactNumber: strings.TrimSpace(payload.ContactNumber),
		ItemDetails:   strings.TrimSpace(payload.ItemDetails),
		DueDate:       strings.TrimSpace(payload.DueDate),
		Status:        domain.OrderStatus(payload.Status),
		Images:        payload.Images,
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": joinErrors(errs)})
		return
	}

	created, err := s.orders.Create(order)
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist order"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// getOrder обрабатывает GET /api/v1/orders/:id.
func (s *Service) getOrder(c *gin.Context) {
	order, err := s.orders.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// updateOrder обрабатывает PATCH /api/v1/orders/:id. Единственный механизм
// смены статуса; пары (старый, новый) не проверяются.
func (s *Service) updateOrder(c *gin.Context) {
	var payload orderPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := domain.OrderPatch{
		CustomerID:    payload.CustomerID,
		CustomerName:  payload.CustomerName,
		ContactNumber: payload.ContactNumber,
		ItemDetails:   payload.ItemDetails,
		DueDate:       payload.DueDate,
		Images:        payload.Images,
	}

	if payload.Status != nil {
		status := domain.OrderStatus(*payload.Status)
		if !domain.KnownOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrOrderStatusInvalid.Error()})
			return
		}
		patch.Status = &status
	}
	if payload.DueDate != nil {
		if _, err := time.Parse(domain.DueDateLayout, *payload.DueDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrOrderDueDateInvalid.Error()})
			return
		}
	}
	if payload.CustomerName != nil && strings.TrimSpace(*payload.CustomerName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrOrderCustomerNameRequired.Error()})
		return
	}

	updated, err := s.orders.Update(c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		s.logger.WithError(err).Error("failed to update order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist order"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteOrder обрабатывает DELETE /api/v1/orders/:id.
func (s *Service) deleteOrder(c *gin.Context) {
	removed, err := s.orders.Delete(c.Param("id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to delete order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist orders"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ordersDueToday обрабатывает GET /api/v1/orders/due-today.
func (s *Service) ordersDueToday(c *gin.Context) {
	orders, err := s.orders.DueToday()
	if err != nil {
		s.logger.WithError(err).Warn("serving due-today despite read error")
	}
	c.JSON(http.StatusOK, orders)
}

// ordersDueSoon обрабатывает GET /api/v1/orders/due-soon.
// Читатель значка уведомлений опрашивает длину этого списка.
func (s *Service) ordersDueSoon(c *gin.Context) {
	orders, err := s.orders.DueSoon()
	if err != nil {
		s.logger.WithError(err).Warn("serving due-soon despite read error")
	}
	c.JSON(http.StatusOK, orders)
}

// isOverdue: дата сдачи в прошлом и заказ не завершён.
func isOverdue(order domain.Order, now time.Time) bool {
	if order.Status == domain.OrderStatusCompleted {
		return false
	}
	return order.DueDate < now.Format(domain.DueDateLayout)
}

// isDueSoonPresentation: до сдачи 0..2 календарных дня и заказ не завершён.
// Это презентационный предикат списка, более широкий, чем двухдневное окно
// запроса DueSoon.
func isDueSoonPresentation(order domain.Order, now time.Time) bool {
	if order.Status == domain.OrderStatusCompleted {
		return false
	}
	due, err := time.Parse(domain.DueDateLayout, order.DueDate)
	if err != nil {
		return false
	}
	today, _ := time.Parse(domain.DueDateLayout, now.Format(domain.DueDateLayout))
	days := int(due.Sub(today).Hours() / 24)
	return days >= 0 && days <= 2
}
