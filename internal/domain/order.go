package domain

import "time"

// OrderStatus описывает жизненный цикл заказа на пошив.
type OrderStatus string

const (
	// OrderStatusPending — заказ принят, работа ещё не началась.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusInProgress — заказ в работе.
	OrderStatusInProgress OrderStatus = "in-progress"
	// OrderStatusCompleted — заказ готов. Статус не терминальный:
	// оператор может вернуть готовый заказ в работу.
	OrderStatusCompleted OrderStatus = "completed"
)

// KnownOrderStatus сообщает, входит ли статус в известный набор.
func KnownOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted:
		return true
	}
	return false
}

// DueDateLayout — формат календарной даты сдачи заказа (без времени суток).
const DueDateLayout = "2006-01-02"

// Order — заказ на пошив. CustomerName и ContactNumber денормализованы:
// они вводятся в заказе заново и не обязаны совпадать с карточкой клиента.
// CustomerID — необязательная мягкая ссылка на Customer.ID, целостность
// которой ничем не гарантируется.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName"`
	ContactNumber string      `json:"contactNumber"`
	ItemDetails   string      `json:"itemDetails"`
	DueDate       string      `json:"dueDate"`
	Status        OrderStatus `json:"status"`
	// Images зарезервировано под эскизы; операции хранилища поле не читают.
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateInvariants проверяет базовые инварианты заказа
// и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerName == "" {
		errs = append(errs, ErrOrderCustomerNameRequired)
	}
	if o.ItemDetails == "" {
		errs = append(errs, ErrOrderItemDetailsRequired)
	}
	if _, err := time.Parse(DueDateLayout, o.DueDate); err != nil {
		errs = append(errs, ErrOrderDueDateInvalid)
	}
	if !KnownOrderStatus(o.Status) {
		errs = append(errs, ErrOrderStatusInvalid)
	}

	return errs
}

// OrderPatch описывает частичное обновление заказа. Переходы статуса
// намеренно не ограничены: любой статус можно сменить на любой.
type OrderPatch struct {
	CustomerID    *string
	CustomerName  *string
	ContactNumber *string
	ItemDetails   *string
	DueDate       *string
	Status        *OrderStatus
	Images        *[]string
}
