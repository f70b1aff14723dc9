package domain

import "errors"

var (
	// Ошибка пустого имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка неизвестной единицы измерения мерок.
	ErrMeasurementUnitInvalid = errors.New("measurement unit must be inch or cm")
	// Ошибка пустого имени клиента в заказе.
	ErrOrderCustomerNameRequired = errors.New("order customer name is required")
	// Ошибка пустого описания изделия.
	ErrOrderItemDetailsRequired = errors.New("order item details are required")
	// Ошибка даты сдачи вне формата YYYY-MM-DD.
	ErrOrderDueDateInvalid = errors.New("order due date must be in YYYY-MM-DD format")
	// Ошибка неизвестного статуса заказа.
	ErrOrderStatusInvalid = errors.New("order status is unknown")
	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCorruptData сигнализирует, что сохранённая коллекция не разобралась.
	// Чтение при этом отдаёт пустой список: ошибка информационная,
	// путь чтения не падает.
	ErrCorruptData = errors.New("persisted collection is corrupt")
)

// IsCorruptData проверяет, является ли ошибка повреждением данных.
func IsCorruptData(err error) bool {
	return errors.Is(err, ErrCorruptData)
}
