package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MemberStatus represents the membership status of an associato
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "Attivo"
	MemberStatusSuspended MemberStatus = "Sospeso"
	MemberStatusCeased    MemberStatus = "Cessato"
)

func (s MemberStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is part of the status vocabulary
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusSuspended, MemberStatusCeased:
		return true
	}
	return false
}

func (s MemberStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *MemberStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = MemberStatus(str)
	return nil
}

func (s MemberStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *MemberStatus) Scan(value interface{}) error {
	if value == nil {
		*s = MemberStatusActive
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = MemberStatus(v)
	case []byte:
		*s = MemberStatus(string(v))
	}
	return nil
}
