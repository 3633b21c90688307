package entity

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Addons    float64 `json:"addons,omitempty"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing the data a receipt printer consumes.
// It is not a database entity: it is composed from a committed sale at
// request time, and formatting and printing are external concerns.
type Receipt struct {
	ReceiptNo      string        `json:"receipt_number"`
	OrderNo        string        `json:"order_number"`
	Date           string        `json:"date"`
	Cashier        string        `json:"cashier,omitempty"`
	OrderType      string        `json:"order_type"`
	TableNumber    string        `json:"table_number,omitempty"`
	CustomerName   string        `json:"customer_name,omitempty"`
	Items          []ReceiptItem `json:"items"`
	SubTotal       float64       `json:"subtotal"`
	Discount       float64       `json:"discount"`
	DeliveryFee    float64       `json:"delivery_fee,omitempty"`
	Total          float64       `json:"total"`
	PaymentMethod  string        `json:"payment_method"`
	AmountReceived float64       `json:"amount_received,omitempty"`
	ChangeGiven    float64       `json:"change_given,omitempty"`
	FocReason      string        `json:"foc_reason,omitempty"`
}

// NewReceipt composes receipt data from a committed sale
func NewReceipt(sale *Sale, cashierName string) *Receipt {
	r := &Receipt{
		ReceiptNo:     sale.ReceiptNo,
		OrderNo:       sale.OrderNo,
		Date:          sale.CreatedAt.Format("2006-01-02 15:04:05"),
		Cashier:       cashierName,
		OrderType:     sale.OrderType.String(),
		SubTotal:      float64(sale.SubTotal) / 100,
		Discount:      float64(sale.Discount) / 100,
		DeliveryFee:   float64(sale.DeliveryFee) / 100,
		Total:         float64(sale.Total) / 100,
		PaymentMethod: sale.PaymentMethod.String(),
	}
	if sale.TableNumber != nil {
		r.TableNumber = *sale.TableNumber
	}
	if sale.CustomerName != nil {
		r.CustomerName = *sale.CustomerName
	}
	if sale.AmountReceived != nil {
		r.AmountReceived = float64(*sale.AmountReceived) / 100
	}
	if sale.ChangeGiven != nil {
		r.ChangeGiven = float64(*sale.ChangeGiven) / 100
	}
	if sale.FocReason != nil {
		r.FocReason = *sale.FocReason
	}
	for i := range sale.Items {
		item := &sale.Items[i]
		r.Items = append(r.Items, ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Addons:    float64(item.Addons.Sum()) / 100,
			Total:     float64(item.LineTotal()) / 100,
		})
	}
	return r
}
