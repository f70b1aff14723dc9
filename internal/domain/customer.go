package domain

import "time"

// MeasurementUnit — единица измерения мерок клиента.
type MeasurementUnit string

const (
	// MeasurementUnitInch — мерки в дюймах.
	MeasurementUnitInch MeasurementUnit = "inch"
	// MeasurementUnitCM — мерки в сантиметрах.
	MeasurementUnitCM MeasurementUnit = "cm"
)

// Measurements хранит мерки клиента. Значения — непрозрачные строки:
// магазин вводит их вручную, хранилище не валидирует числа и не
// конвертирует единицы.
type Measurements struct {
	Unit MeasurementUnit `json:"unit"`

	// Верх
	Shoulder      string `json:"shoulder,omitempty"`
	Bust          string `json:"bust,omitempty"`
	Waist         string `json:"waist,omitempty"`
	Chest         string `json:"chest,omitempty"`
	ArmHole       string `json:"armHole,omitempty"`
	SleeveLength  string `json:"sleeveLength,omitempty"`
	Bicep         string `json:"bicep,omitempty"`
	Wrist         string `json:"wrist,omitempty"`
	NeckDeepFront string `json:"neckDeepFront,omitempty"`
	NeckDeepBack  string `json:"neckDeepBack,omitempty"`

	// Низ
	Hips        string `json:"hips,omitempty"`
	Inseam      string `json:"inseam,omitempty"`
	WaistToKnee string `json:"waistToKnee,omitempty"`
	Ankle       string `json:"ankle,omitempty"`
	FullLength  string `json:"fullLength,omitempty"`

	// Длины региональных изделий
	KameezLength   string `json:"kameezLength,omitempty"`
	SalwarLength   string `json:"salwarLength,omitempty"`
	ChuridarLength string `json:"churidarLength,omitempty"`
	SkirtLength    string `json:"skirtLength,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Customer — профиль клиента ателье вместе с мерками.
type Customer struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email,omitempty"`
	Address      string       `json:"address,omitempty"`
	Measurements Measurements `json:"measurements"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ValidateInvariants проверяет базовые инварианты профиля
// и возвращает список замечаний.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	switch c.Measurements.Unit {
	case MeasurementUnitInch, MeasurementUnitCM:
	default:
		errs = append(errs, ErrMeasurementUnitInvalid)
	}

	return errs
}

// CustomerPatch описывает частичное обновление профиля.
// Изменяемы только перечисленные поля: id и createdAt защищены
// от перезаписи по построению. nil-поле означает "не трогать".
type CustomerPatch struct {
	Name         *string
	Phone        *string
	Email        *string
	Address      *string
	Measurements *Measurements
}
