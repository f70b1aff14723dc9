package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

// helper для создания валидного заказа.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:            "order-1",
		CustomerID:    "customer-1",
		CustomerName:  "Jane Doe",
		ContactNumber: "5551234567",
		ItemDetails:   "Blue gown",
		DueDate:       "2025-06-01",
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer name",
			mut:  func(o *domain.Order) { o.CustomerName = "" },
			want: domain.ErrOrderCustomerNameRequired,
		},
		{
			name: "no item details",
			mut:  func(o *domain.Order) { o.ItemDetails = "" },
			want: domain.ErrOrderItemDetailsRequired,
		},
		{
			name: "due date with time component",
			mut:  func(o *domain.Order) { o.DueDate = "2025-06-01T10:00:00Z" },
			want: domain.ErrOrderDueDateInvalid,
		},
		{
			name: "empty due date",
			mut:  func(o *domain.Order) { o.DueDate = "" },
			want: domain.ErrOrderDueDateInvalid,
		},
		{
			name: "unknown status",
			mut:  func(o *domain.Order) { o.Status = "shipped" },
			want: domain.ErrOrderStatusInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}

func TestKnownOrderStatus(t *testing.T) {
	for _, s := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusInProgress,
		domain.OrderStatusCompleted,
	} {
		if !domain.KnownOrderStatus(s) {
			t.Fatalf("status %q should be known", s)
		}
	}

	if domain.KnownOrderStatus("canceled") {
		t.Fatal("status canceled should not be known")
	}
}
