package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/atelier/internal/domain"
)

func makeCustomer() domain.Customer {
	now := time.Now().UTC()
	return domain.Customer{
		ID:    "customer-1",
		Name:  "Jane Doe",
		Phone: "5551234567",
		Measurements: domain.Measurements{
			Unit:  domain.MeasurementUnitInch,
			Bust:  "34",
			Waist: "28",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCustomerValidateInvariants_Ok(t *testing.T) {
	customer := makeCustomer()
	if errs := customer.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestCustomerValidateInvariants_NameRequired(t *testing.T) {
	customer := makeCustomer()
	customer.Name = ""

	errs := customer.ValidateInvariants()
	if len(errs) != 1 || !errors.Is(errs[0], domain.ErrCustomerNameRequired) {
		t.Fatalf("expected ErrCustomerNameRequired, got %v", errs)
	}
}

func TestCustomerValidateInvariants_UnitRequired(t *testing.T) {
	customer := makeCustomer()
	customer.Measurements.Unit = "meters"

	errs := customer.ValidateInvariants()
	if len(errs) != 1 || !errors.Is(errs[0], domain.ErrMeasurementUnitInvalid) {
		t.Fatalf("expected ErrMeasurementUnitInvalid, got %v", errs)
	}
}

func TestIsCorruptData(t *testing.T) {
	if !domain.IsCorruptData(domain.ErrCorruptData) {
		t.Fatal("ErrCorruptData should be recognized")
	}
	if !domain.IsCorruptData(fmt.Errorf("read customers: %w", domain.ErrCorruptData)) {
		t.Fatal("wrapped ErrCorruptData should be recognized")
	}
	if domain.IsCorruptData(errors.New("boom")) {
		t.Fatal("unrelated error should not be recognized")
	}
}
