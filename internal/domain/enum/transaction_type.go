package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType int

const (
	TransactionTypeIncome  TransactionType = 0
	TransactionTypeExpense TransactionType = 1
)

func (t TransactionType) String() string {
	names := [...]string{"Income", "Expense"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Income"
	}
	return names[t]
}

// Valid reports whether the value is one of the known types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TransactionType(i)
		return nil
	}
	switch str {
	case "Income":
		*t = TransactionTypeIncome
	case "Expense":
		*t = TransactionTypeExpense
	}
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypeIncome
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
