package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift represents a cashier's bounded working session: an opening cash
// float, per-method running sales totals, and a closing reconciliation.
// The partial unique index enforces at most one open shift per staff member
// at the database level, so two near-simultaneous open requests cannot both
// succeed.
type Shift struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StaffID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:udx_shifts_staff_open,where:is_closed = false" json:"staff_id"`
	OpenedAt            time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
	OpeningBalance      int64      `gorm:"not null;default:0" json:"-"` // cents
	PhysicalCashCounted *int64     `json:"-"`                           // cents, set at close
	CashSalesTotal      int64      `gorm:"not null;default:0" json:"-"` // cents
	CardSalesTotal      int64      `gorm:"not null;default:0" json:"-"` // cents
	CreditSalesTotal    int64      `gorm:"not null;default:0" json:"-"` // cents
	FocSalesTotal       int64      `gorm:"not null;default:0" json:"-"` // cents
	IsClosed            bool       `gorm:"not null;default:false" json:"is_closed"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Relationships
	Staff Staff  `gorm:"foreignKey:StaffID" json:"-"`
	Sales []Sale `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// ExpectedCash is the cash the drawer should hold: opening float plus cash sales
func (s *Shift) ExpectedCash() int64 {
	return s.OpeningBalance + s.CashSalesTotal
}

// Variance is counted physical cash minus expected cash. Positive means
// overage, negative means shortage. Only meaningful once the shift is closed.
func (s *Shift) Variance() int64 {
	if s.PhysicalCashCounted == nil {
		return 0
	}
	return *s.PhysicalCashCounted - s.ExpectedCash()
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Shift) MarshalJSON() ([]byte, error) {
	type Alias Shift
	out := &struct {
		Alias
		OpeningBalance      float64  `json:"opening_balance"`
		PhysicalCashCounted *float64 `json:"physical_cash_counted,omitempty"`
		CashSalesTotal      float64  `json:"cash_sales_total"`
		CardSalesTotal      float64  `json:"card_sales_total"`
		CreditSalesTotal    float64  `json:"credit_sales_total"`
		FocSalesTotal       float64  `json:"foc_sales_total"`
		ExpectedCash        float64  `json:"expected_cash"`
	}{
		Alias:            Alias(s),
		OpeningBalance:   float64(s.OpeningBalance) / 100,
		CashSalesTotal:   float64(s.CashSalesTotal) / 100,
		CardSalesTotal:   float64(s.CardSalesTotal) / 100,
		CreditSalesTotal: float64(s.CreditSalesTotal) / 100,
		FocSalesTotal:    float64(s.FocSalesTotal) / 100,
		ExpectedCash:     float64(s.ExpectedCash()) / 100,
	}
	if s.PhysicalCashCounted != nil {
		counted := float64(*s.PhysicalCashCounted) / 100
		out.PhysicalCashCounted = &counted
	}
	return json.Marshal(out)
}

// ShiftSummary is returned when a shift is closed
type ShiftSummary struct {
	ShiftID             uuid.UUID `json:"shift_id"`
	StaffID             uuid.UUID `json:"staff_id"`
	OpenedAt            time.Time `json:"opened_at"`
	ClosedAt            time.Time `json:"closed_at"`
	OpeningBalance      float64   `json:"opening_balance"`
	CashSalesTotal      float64   `json:"cash_sales_total"`
	CardSalesTotal      float64   `json:"card_sales_total"`
	CreditSalesTotal    float64   `json:"credit_sales_total"`
	FocSalesTotal       float64   `json:"foc_sales_total"`
	ExpectedCash        float64   `json:"expected_cash"`
	PhysicalCashCounted float64   `json:"physical_cash_counted"`
	Variance            float64   `json:"variance"`
	OpenTicketWarning   bool      `json:"open_ticket_warning"`
}

// NewShiftSummary builds the reconciliation summary from a closed shift
func NewShiftSummary(s *Shift, openTickets bool) *ShiftSummary {
	closedAt := time.Time{}
	if s.ClosedAt != nil {
		closedAt = *s.ClosedAt
	}
	counted := int64(0)
	if s.PhysicalCashCounted != nil {
		counted = *s.PhysicalCashCounted
	}
	return &ShiftSummary{
		ShiftID:             s.ID,
		StaffID:             s.StaffID,
		OpenedAt:            s.OpenedAt,
		ClosedAt:            closedAt,
		OpeningBalance:      float64(s.OpeningBalance) / 100,
		CashSalesTotal:      float64(s.CashSalesTotal) / 100,
		CardSalesTotal:      float64(s.CardSalesTotal) / 100,
		CreditSalesTotal:    float64(s.CreditSalesTotal) / 100,
		FocSalesTotal:       float64(s.FocSalesTotal) / 100,
		ExpectedCash:        float64(s.ExpectedCash()) / 100,
		PhysicalCashCounted: float64(counted) / 100,
		Variance:            float64(s.Variance()) / 100,
		OpenTicketWarning:   openTickets,
	}
}
