package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType represents how an order is fulfilled.
// Wire codes: 1 = dine-in, 2 = takeaway, 3 = delivery.
type OrderType int

const (
	OrderTypeDineIn   OrderType = 1
	OrderTypeTakeaway OrderType = 2
	OrderTypeDelivery OrderType = 3
)

// IsValid reports whether the code is one of the known order types
func (t OrderType) IsValid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway || t == OrderTypeDelivery
}

// RequiresKitchen reports whether sales of this type enter the kitchen queue.
// Takeaway orders are assembled at the counter and bypass the kitchen board.
func (t OrderType) RequiresKitchen() bool {
	return t == OrderTypeDineIn || t == OrderTypeDelivery
}

func (t OrderType) String() string {
	switch t {
	case OrderTypeDineIn:
		return "DineIn"
	case OrderTypeTakeaway:
		return "Takeaway"
	case OrderTypeDelivery:
		return "Delivery"
	}
	return "Unknown"
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		switch str {
		case "DineIn":
			*t = OrderTypeDineIn
		case "Takeaway":
			*t = OrderTypeTakeaway
		case "Delivery":
			*t = OrderTypeDelivery
		}
		return nil
	}
	*t = OrderType(i)
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeDineIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
