package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// WithholdingPreset names the PPh withholding schemes the calculator knows.
// The percentage each preset maps to lives in the finance package; Custom
// takes the caller-supplied percentage.
type WithholdingPreset int

const (
	WithholdingNone   WithholdingPreset = 0
	WithholdingFinal  WithholdingPreset = 1
	WithholdingPPh22  WithholdingPreset = 2
	WithholdingPPh23  WithholdingPreset = 3
	WithholdingCustom WithholdingPreset = 4
)

func (p WithholdingPreset) String() string {
	names := [...]string{"None", "Final", "PPh22", "PPh23", "Custom"}
	if int(p) < 0 || int(p) >= len(names) {
		return "None"
	}
	return names[p]
}

// Valid reports whether the value is one of the known presets.
func (p WithholdingPreset) Valid() bool {
	return p >= WithholdingNone && p <= WithholdingCustom
}

func (p WithholdingPreset) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *WithholdingPreset) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = WithholdingPreset(i)
		return nil
	}
	switch str {
	case "None":
		*p = WithholdingNone
	case "Final":
		*p = WithholdingFinal
	case "PPh22":
		*p = WithholdingPPh22
	case "PPh23":
		*p = WithholdingPPh23
	case "Custom":
		*p = WithholdingCustom
	}
	return nil
}

func (p WithholdingPreset) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *WithholdingPreset) Scan(value interface{}) error {
	if value == nil {
		*p = WithholdingNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = WithholdingPreset(v)
	case int:
		*p = WithholdingPreset(v)
	}
	return nil
}
