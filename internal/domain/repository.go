package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// List возвращает всех клиентов в порядке добавления. При отсутствии
	// данных — пустой список; при повреждённых данных — пустой список
	// вместе с ErrCorruptData.
	List() ([]Customer, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// Create присваивает id и таймстемпы, сохраняет и возвращает запись.
	Create(customer Customer) (Customer, error)
	// Update накладывает patch на существующую запись, обновляет updatedAt
	// и возвращает результат. ErrCustomerNotFound — без побочных эффектов.
	Update(id string, patch CustomerPatch) (Customer, error)
	// Delete удаляет запись. false — если записи не было (без побочных эффектов).
	Delete(id string) (bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	List() ([]Order, error)
	Get(id string) (Order, error)
	Create(order Order) (Order, error)
	Update(id string, patch OrderPatch) (Order, error)
	Delete(id string) (bool, error)

	// DueToday возвращает незавершённые заказы со сдачей сегодня.
	// Сравнение только по календарной дате.
	DueToday() ([]Order, error)
	// DueSoon возвращает незавершённые заказы со сдачей сегодня или завтра.
	DueSoon() ([]Order, error)
}
