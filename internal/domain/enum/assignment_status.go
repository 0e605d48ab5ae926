package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AssignmentStatus represents the lifecycle of an asset assignment.
// Assignments are never hard-deleted; they move through these states.
type AssignmentStatus string

const (
	AssignmentStatusActive     AssignmentStatus = "Attivo"
	AssignmentStatusSuspended  AssignmentStatus = "Sospeso"
	AssignmentStatusTerminated AssignmentStatus = "Terminato"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

func (s AssignmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *AssignmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AssignmentStatus(str)
	return nil
}

func (s AssignmentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AssignmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AssignmentStatusActive
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AssignmentStatus(v)
	case []byte:
		*s = AssignmentStatus(string(v))
	}
	return nil
}
