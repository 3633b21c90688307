package entity

// SequenceCounter backs order serials and receipt numbers. Each scope (the
// "receipt" scope, or one per calendar day for order serials) holds a single
// row whose value is advanced with an atomic upsert-increment inside the sale
// commit transaction. Deriving the next number by counting existing rows is a
// race under concurrent terminals; the counter row is not.
type SequenceCounter struct {
	Scope string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for SequenceCounter
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
