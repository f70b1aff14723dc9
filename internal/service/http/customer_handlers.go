package httpsvc

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// customerPayload — тело POST /customers.
type customerPayload struct {
	Name         string              `json:"name"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	Address      string              `json:"address"`
	Measurements domain.Measurements `json:"measurements"`
}

// customerPatchPayload — тело PATCH /customers/:id. nil-поле не трогается.
type customerPatchPayload struct {
	Name         *string              `json:"name"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email"`
	Address      *string              `json:"address"`
	Measurements *domain.Measurements `json:"measurements"`
}

// listCustomers обрабатывает GET /api/v1/customers.
// Параметр q фильтрует по подстроке имени или телефона.
func (s *Service) listCustomers(c *gin.Context) {
	customers, err := s.customers.List()
	if err != nil {
		// Повреждённые данные уже свёрнуты в пустой список.
		s.logger.WithError(err).Warn("serving customers despite read error")
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := make([]domain.Customer, 0, len(customers))
		for _, customer := range customers {
			if strings.Contains(strings.ToLower(customer.Name), q) ||
				strings.Contains(strings.ToLower(customer.Phone), q) {
				filtered = append(filtered, customer)
			}
		}
		customers = filtered
	}

	c.JSON(http.StatusOK, customers)
}

// createCustomer обрабатывает POST /api/v1/customers.
func (s *Service) createCustomer(c *gin.Context) {
	var payload customerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer := domain.Customer{
		Name:         strings.TrimSpace(payload.Name),
		Phone:        strings.TrimSpace(payload.Phone),
		Email:        payload.Email,
		Address:      payload.Address,
		Measurements: payload.Measurements,
	}
	// Форма исходного приложения по умолчанию работает в дюймах.
	if customer.Measurements.Unit == "" {
		customer.Measurements.Unit = domain.MeasurementUnitInch
	}

	if errs := customer.ValidateInvariants(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": joinErrors(errs)})
		return
	}

	created, err := s.customers.Create(customer)
	if err != nil {
		s.logger.WithError(err).Error("failed to create customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist customer"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// getCustomer обрабатывает GET /api/v1/customers/:id.
func (s *Service) getCustomer(c *gin.Context) {
	customer, err := s.customers.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// updateCustomer обрабатывает PATCH /api/v1/customers/:id.
func (s *Service) updateCustomer(c *gin.Context) {
	var payload customerPatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrCustomerNameRequired.Error()})
		return
	}
	if payload.Measurements != nil && !knownUnit(payload.Measurements.Unit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMeasurementUnitInvalid.Error()})
		return
	}

	updated, err := s.customers.Update(c.Param("id"), domain.CustomerPatch{
		Name:         payload.Name,
		Phone:        payload.Phone,
		Email:        payload.Email,
		Address:      payload.Address,
		Measurements: payload.Measurements,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		s.logger.WithError(err).Error("failed to update customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist customer"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteCustomer обрабатывает DELETE /api/v1/customers/:id.
func (s *Service) deleteCustomer(c *gin.Context) {
	removed, err := s.customers.Delete(c.Param("id"))
	if err != nil {
		s.logger.WithError(err).Error("failed to delete customer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist customers"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func knownUnit(unit domain.MeasurementUnit) bool {
	return unit == domain.MeasurementUnitInch || unit == domain.MeasurementUnitCM
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
