package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents how a transaction is paid. The status is an
// explicit user choice and is never inferred from the amounts.
type PaymentStatus int

const (
	PaymentStatusPaid     PaymentStatus = 0
	PaymentStatusDeferred PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	names := [...]string{"Paid", "Deferred"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Paid"
	}
	return names[s]
}

// Valid reports whether the value is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusDeferred
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Paid":
		*s = PaymentStatusPaid
	case "Deferred":
		*s = PaymentStatusDeferred
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
