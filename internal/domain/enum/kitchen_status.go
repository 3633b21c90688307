package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// KitchenStatus represents the fulfillment state of a committed sale as seen
// by kitchen staff. The status is a first-class typed column, never encoded
// in free-text notes.
type KitchenStatus int

const (
	KitchenStatusPending   KitchenStatus = 0
	KitchenStatusPreparing KitchenStatus = 1
	KitchenStatusReady     KitchenStatus = 2
	KitchenStatusCompleted KitchenStatus = 3
)

// IsValid reports whether the code is one of the known kitchen states
func (s KitchenStatus) IsValid() bool {
	return s >= KitchenStatusPending && s <= KitchenStatusCompleted
}

// IsActive reports whether a ticket in this state still needs kitchen attention
func (s KitchenStatus) IsActive() bool {
	return s == KitchenStatusPending || s == KitchenStatusPreparing
}

// CanTransitionTo reports whether the target state is reachable in one step.
// The graph is pending -> preparing -> ready -> completed, with a single
// allowed undo: preparing -> pending. Setting the same state again is treated
// as idempotent by callers, not as a transition.
func (s KitchenStatus) CanTransitionTo(target KitchenStatus) bool {
	switch s {
	case KitchenStatusPending:
		return target == KitchenStatusPreparing
	case KitchenStatusPreparing:
		return target == KitchenStatusReady || target == KitchenStatusPending
	case KitchenStatusReady:
		return target == KitchenStatusCompleted
	case KitchenStatusCompleted:
		return false
	}
	return false
}

func (s KitchenStatus) String() string {
	switch s {
	case KitchenStatusPending:
		return "Pending"
	case KitchenStatusPreparing:
		return "Preparing"
	case KitchenStatusReady:
		return "Ready"
	case KitchenStatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// ParseKitchenStatus resolves a status name, case-insensitively
func ParseKitchenStatus(str string) (KitchenStatus, bool) {
	switch strings.ToLower(str) {
	case "pending":
		return KitchenStatusPending, true
	case "preparing":
		return KitchenStatusPreparing, true
	case "ready":
		return KitchenStatusReady, true
	case "completed":
		return KitchenStatusCompleted, true
	}
	return KitchenStatusPending, false
}

func (s KitchenStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *KitchenStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = KitchenStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = KitchenStatusPending
	case "Preparing":
		*s = KitchenStatusPreparing
	case "Ready":
		*s = KitchenStatusReady
	case "Completed":
		*s = KitchenStatusCompleted
	}
	return nil
}

func (s KitchenStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *KitchenStatus) Scan(value interface{}) error {
	if value == nil {
		*s = KitchenStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = KitchenStatus(v)
	case int:
		*s = KitchenStatus(v)
	}
	return nil
}
