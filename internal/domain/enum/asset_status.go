package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AssetStatus represents the availability of a physical asset (servizio fisico)
type AssetStatus string

const (
	AssetStatusAvailable   AssetStatus = "Disponibile"
	AssetStatusOccupied    AssetStatus = "Occupato"
	AssetStatusMaintenance AssetStatus = "In Manutenzione"
)

func (s AssetStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is part of the status vocabulary
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusOccupied, AssetStatusMaintenance:
		return true
	}
	return false
}

func (s AssetStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *AssetStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AssetStatus(str)
	return nil
}

func (s AssetStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AssetStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AssetStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AssetStatus(v)
	case []byte:
		*s = AssetStatus(string(v))
	}
	return nil
}
