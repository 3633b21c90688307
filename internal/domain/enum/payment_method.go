package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a sale was settled.
// Wire codes: 1 = cash, 2 = card, 3 = credit, 4 = foc, 5 = cash-on-delivery.
type PaymentMethod int

const (
	PaymentMethodCash           PaymentMethod = 1
	PaymentMethodCard           PaymentMethod = 2
	PaymentMethodCredit         PaymentMethod = 3
	PaymentMethodFOC            PaymentMethod = 4
	PaymentMethodCashOnDelivery PaymentMethod = 5
)

// IsValid reports whether the code is one of the known payment methods
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodCashOnDelivery
}

func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodCredit:
		return "Credit"
	case PaymentMethodFOC:
		return "FOC"
	case PaymentMethodCashOnDelivery:
		return "CashOnDelivery"
	}
	return "Unknown"
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		switch str {
		case "Cash":
			*m = PaymentMethodCash
		case "Card":
			*m = PaymentMethodCard
		case "Credit":
			*m = PaymentMethodCredit
		case "FOC":
			*m = PaymentMethodFOC
		case "CashOnDelivery":
			*m = PaymentMethodCashOnDelivery
		}
		return nil
	}
	*m = PaymentMethod(i)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
